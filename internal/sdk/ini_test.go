package sdk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdkerrors "github.com/xcom-modding/xcom-devtools/internal/errors"
)

func TestEnsureLine(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected string
		changed  bool
	}{
		{"empty", "", "ActiveMods=Foo", true},
		{"trailing newline", "[Engine.XComModOptions]\n", "[Engine.XComModOptions]\nActiveMods=Foo", true},
		{"no trailing newline", "[Engine.XComModOptions]", "[Engine.XComModOptions]\nActiveMods=Foo", true},
		{"present", "[Engine.XComModOptions]\nActiveMods=Foo\n", "[Engine.XComModOptions]\nActiveMods=Foo\n", false},
		{"present crlf", "[Engine.XComModOptions]\r\nActiveMods=Foo\r\n", "[Engine.XComModOptions]\r\nActiveMods=Foo\r\n", false},
		{"prefix is not a match", "ActiveMods=FooBar\n", "ActiveMods=FooBar\nActiveMods=Foo", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, changed := EnsureLine(tc.text, "ActiveMods=Foo")
			assert.Equal(t, tc.expected, got)
			assert.Equal(t, tc.changed, changed)
		})
	}
}

func TestEnsureActiveMod(t *testing.T) {
	path := filepath.Join(t.TempDir(), "DefaultModOptions.ini")
	require.NoError(t, os.WriteFile(path, []byte("[Engine.XComModOptions]\n"), 0644))

	changed, err := EnsureActiveMod(path, "Foo")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = EnsureActiveMod(path, "Foo")
	require.NoError(t, err)
	assert.False(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[Engine.XComModOptions]\nActiveMods=Foo", string(data))
}

func TestEnsureActiveModMissingFile(t *testing.T) {
	_, err := EnsureActiveMod(filepath.Join(t.TempDir(), "missing.ini"), "Foo")
	assert.True(t, sdkerrors.HasKind(err, sdkerrors.KindIO))
}

func TestSetKey(t *testing.T) {
	text := "[TextureStreaming]\nUseTextureFileCache=FALSE\r\nPoolSize=160\n"

	got, err := SetKey(text, "UseTextureFileCache=", "TRUE")
	require.NoError(t, err)
	assert.Equal(t, "[TextureStreaming]\nUseTextureFileCache=TRUE\r\nPoolSize=160\n", got)

	got, err = SetKey("UseTextureFileCache=TRUE", "UseTextureFileCache=", "FALSE")
	require.NoError(t, err)
	assert.Equal(t, "UseTextureFileCache=FALSE", got)

	_, err = SetKey(text, "Missing=", "1")
	assert.True(t, sdkerrors.HasKind(err, sdkerrors.KindValidation))
}

func TestSetKeyInFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "XComEngine.ini")
	require.NoError(t, os.WriteFile(path, []byte("A=1\nUseTextureFileCache=FALSE\nB=2\n"), 0600))

	require.NoError(t, SetKeyInFile(path, "UseTextureFileCache=", "TRUE"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A=1\nUseTextureFileCache=TRUE\nB=2\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestScriptPackages(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected []string
	}{
		{"none", "[Engine.ScriptPackages]\n", []string{"MyMod"}},
		{"single", "[Engine.ScriptPackages]\n+NonNativePackages=MyMod\n", []string{"MyMod"}},
		{
			"several with comment",
			"[Engine.ScriptPackages]\r\n+NonNativePackages=Core ;base\r\n+NonNativePackages=MyMod\r\n[UnrealEd.EditorEngine]\n",
			[]string{"Core", "MyMod"},
		},
		{"section right after", "+NonNativePackages=A\n+NonNativePackages=B[Next]", []string{"A", "B"}},
		{"eof", "+NonNativePackages=Last", []string{"Last"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ScriptPackages(tc.text, "MyMod"))
		})
	}
}

func TestParseKeyValues(t *testing.T) {
	kv := ParseKeyValues("[mod]\npublishedFileId=0\nTitle=My Mod\n; comment=ignored\ndescription = Does things\ntitle=Second\n")
	assert.Equal(t, "0", kv["publishedfileid"])
	assert.Equal(t, "My Mod", kv["title"])
	assert.Equal(t, "Does things", kv["description"])
	_, ok := kv["; comment"]
	assert.False(t, ok)
}
