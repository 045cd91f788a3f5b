package sdk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteScriptsKeepsProtectedFiles(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"Core.u":            "",
		"MyMod.u":           "",
		"Manifest.txt":      "",
		"DO_NOT_DELETE.TXT": "",
	})

	removed, err := DeleteScripts(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Core.u", "MyMod.u"}, removed)
	assert.FileExists(t, filepath.Join(dir, "Manifest.txt"))
	assert.FileExists(t, filepath.Join(dir, "DO_NOT_DELETE.TXT"))
}

func TestDeleteScriptsMissingDir(t *testing.T) {
	removed, err := DeleteScripts(filepath.Join(t.TempDir(), "Script"))
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestDeleteScriptPackages(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"MyMod.u": "", "Other.u": ""})

	removed, err := DeleteScriptPackages(dir, []string{"MyMod", "", "Missing"})
	require.NoError(t, err)
	assert.Equal(t, []string{"MyMod.u"}, removed)
	assert.FileExists(t, filepath.Join(dir, "Other.u"))
	_, err = os.Stat(filepath.Join(dir, "MyMod.u"))
	assert.True(t, os.IsNotExist(err))
}

func TestFindFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Config/XComEngine.ini":           "a",
		"Src/MyMod/Config/XComEngine.ini": "b",
		"Config/XComGame.ini":             "c",
	})

	found, err := FindFiles(root, "**/XComEngine.ini", 0)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = FindFiles(root, "**/XComEngine.ini", 1)
	require.NoError(t, err)
	assert.Len(t, found, 1)
}
