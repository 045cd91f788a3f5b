package devtools

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xcom-modding/xcom-devtools/internal/buildwatch"
	sdkerrors "github.com/xcom-modding/xcom-devtools/internal/errors"
	"github.com/xcom-modding/xcom-devtools/internal/sdk"
	"github.com/xcom-modding/xcom-devtools/internal/status"
)

const (
	makeStarted  = "Log: Executing Class UnrealEd.MakeCommandlet\n"
	makeFinished = "Log: Success - 0 error(s), 0 warning(s)\n"
)

// compile plays the make commandlet: the log is recreated, then the final
// text is written once the launch has been seen.
func compile(t *testing.T, layout sdk.Layout, final string) func(sdk.Command) {
	return func(sdk.Command) {
		time.Sleep(50 * time.Millisecond)
		if err := os.WriteFile(layout.LaunchLog(), []byte("Init: Version: 20000\n"), 0644); err != nil {
			t.Errorf("write log: %v", err)
			return
		}
		time.Sleep(200 * time.Millisecond)
		if err := os.WriteFile(layout.LaunchLog(), []byte("Init: Version: 20000\n"+final), 0644); err != nil {
			t.Errorf("write log: %v", err)
		}
	}
}

func TestBuildScripts(t *testing.T) {
	testCases := []struct {
		name     string
		log      string
		expected error
		message  string
	}{
		{
			name:    "success",
			log:     makeStarted + "Log: ----MyMod - Release\n" + makeFinished,
			message: "Script compile SUCCEEDED",
		},
		{
			name:     "module not built",
			log:      makeStarted + "Log: ----Core - Release\n" + makeFinished,
			expected: ErrModuleNotBuilt,
			message:  "Script compile did not build your module MyMod!",
		},
		{
			name:     "failed",
			log:      makeStarted + "Error: MyMod.uc(3) : Error, Unexpected 'x'\n",
			expected: ErrBuildFailed,
			message:  "Script compile FAILED. Check for errors in your source files.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			layout := newLayout(t)
			ws := newWorkspace(t, "MyMod", nil)
			writeTree(t, layout.ScriptDir(), map[string]string{"MyMod.u": "old"})
			term := &fakeTerminal{onSend: compile(t, layout, tc.log)}
			rec := &status.Recorder{}
			b := NewBuilder(layout, term, rec)

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := b.BuildScripts(ctx, ws, true)
			if tc.expected == nil {
				require.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.expected)
				assert.True(t, sdkerrors.HasKind(err, sdkerrors.KindProtocolAmbiguous))
			}

			var all []string
			for _, m := range rec.Messages() {
				all = append(all, m.Text)
			}
			assert.Equal(t, "XComGame.exe launched...", all[0])
			assert.Contains(t, all[len(all)-1], tc.message)
			assert.Len(t, all, 2)

			assert.NoFileExists(t, layout.ScriptModule("MyMod"))
			cmds := term.commands()
			require.Len(t, cmds, 1)
			assert.Equal(t, []string{"make", "-mods", "MyMod", sdk.NormalizePath(layout.ModSrcDir("MyMod"))}, cmds[0].Args)
			assert.Equal(t, layout.BinariesDir(), cmds[0].Dir)
		})
	}
}

func TestBuildScriptsWithoutWaiting(t *testing.T) {
	layout := newLayout(t)
	term := &fakeTerminal{}
	b := NewBuilder(layout, term, &status.Recorder{})

	require.NoError(t, b.BuildScripts(context.Background(), newWorkspace(t, "MyMod", nil), false))
	assert.Len(t, term.commands(), 1)
	assert.NoFileExists(t, layout.LaunchLog())
}

func TestBuildScriptsOneAtATime(t *testing.T) {
	layout := newLayout(t)
	ws := newWorkspace(t, "MyMod", nil)
	b := NewBuilder(layout, &fakeTerminal{}, &status.Recorder{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.BuildScripts(ctx, ws, true) }()
	require.Eventually(t, func() bool { return b.sessions.Live("MyMod") }, 5*time.Second, 10*time.Millisecond)

	err := b.BuildScripts(context.Background(), ws, true)
	assert.ErrorIs(t, err, buildwatch.ErrBusy)

	// a second xsdk process builds its own Builder against the same SDK
	other := NewBuilder(layout, &fakeTerminal{}, &status.Recorder{})
	err = other.BuildScripts(context.Background(), ws, true)
	assert.ErrorIs(t, err, buildwatch.ErrBusy)
	require.NoError(t, other.BuildScripts(context.Background(), newWorkspace(t, "OtherMod", nil), false))

	cancel()
	select {
	case err := <-done:
		assert.True(t, sdkerrors.HasKind(err, sdkerrors.KindCancelled))
	case <-time.After(5 * time.Second):
		t.Fatal("build did not stop")
	}
	assert.False(t, b.sessions.Live("MyMod"))
}

func TestBuildScriptsSendError(t *testing.T) {
	layout := newLayout(t)
	boom := sdkerrors.IO("launch", os.ErrNotExist)
	b := NewBuilder(layout, &fakeTerminal{err: boom}, &status.Recorder{})

	err := b.BuildScripts(context.Background(), newWorkspace(t, "MyMod", nil), true)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.False(t, b.sessions.Live("MyMod"))
}

func TestCommandletArguments(t *testing.T) {
	layout := newLayout(t)
	ws := newWorkspace(t, "MyMod", nil)
	term := &fakeTerminal{}
	b := NewBuilder(layout, term, &status.Recorder{})

	require.NoError(t, b.BuildShaderCache(context.Background(), ws))
	require.NoError(t, b.MakeAll(context.Background()))
	require.NoError(t, b.RunEditor(context.Background()))

	cmds := term.commands()
	require.Len(t, cmds, 3)
	assert.Equal(t, []string{"precompileshaders", "-nopause", "platform=pc_sm4", "DLC=MyMod"}, cmds[0].Args)
	assert.Equal(t, []string{"make", "-final_release", "-full"}, cmds[1].Args)
	assert.Equal(t, sdk.NormalizePath(layout.BinariesDir()+"/XComGame.exe"), cmds[2].Path)
	assert.Equal(t, []string{"editor"}, cmds[2].Args)
}

func TestCookHighlanderEnablesTextureCache(t *testing.T) {
	layout := newLayout(t)
	writeTree(t, filepath.Dir(layout.EngineIni()), map[string]string{
		"XComEngine.ini": "[TextureStreaming]\r\nUseTextureFileCache=FALSE\r\nPoolSize=160\r\n",
	})
	term := &fakeTerminal{}
	b := NewBuilder(layout, term, &status.Recorder{})

	require.NoError(t, b.CookHighlander(context.Background()))
	data, err := os.ReadFile(layout.EngineIni())
	require.NoError(t, err)
	assert.Equal(t, "[TextureStreaming]\r\nUseTextureFileCache=TRUE\r\nPoolSize=160\r\n", string(data))
	require.Len(t, term.commands(), 1)
	assert.Equal(t, []string{"make", "-final_release", "-full"}, term.commands()[0].Args)
}

func TestCookRequiresTextureCacheKey(t *testing.T) {
	layout := newLayout(t)
	writeTree(t, filepath.Dir(layout.EngineIni()), map[string]string{"XComEngine.ini": "[TextureStreaming]\n"})
	term := &fakeTerminal{}
	b := NewBuilder(layout, term, &status.Recorder{})

	err := b.CookPackage(context.Background(), "MyMod_Assets.upk")
	assert.True(t, sdkerrors.HasKind(err, sdkerrors.KindValidation))
	assert.Contains(t, err.Error(), "UseTextureFileCache= in XComEngine.ini was not found!")
	assert.Empty(t, term.commands())
}

func TestPackages(t *testing.T) {
	layout := newLayout(t)
	ws := newWorkspace(t, "MyMod", nil)
	b := NewBuilder(layout, &fakeTerminal{}, &status.Recorder{})

	upks, err := b.Packages(ws)
	require.NoError(t, err)
	assert.Empty(t, upks)

	writeTree(t, layout.ModContentDir("MyMod"), map[string]string{
		"MyMod_Weapons.upk":        "",
		"MyMod_Maps.UPK":           "",
		"MyMod_ModShaderCache.upk": "",
		"MyMod_Weapons_SF.upk":     "",
		"ReadMe.txt":               "",
		"Nested/MyMod_Extra.upk":   "",
	})
	upks, err = b.Packages(ws)
	require.NoError(t, err)
	assert.Equal(t, []string{"MyMod_Maps.UPK", "MyMod_Weapons.upk"}, upks)
}

func TestCookPackage(t *testing.T) {
	layout := newLayout(t)
	writeTree(t, filepath.Dir(layout.EngineIni()), map[string]string{"XComEngine.ini": "UseTextureFileCache=TRUE\n"})
	term := &fakeTerminal{}
	rec := &status.Recorder{}
	b := NewBuilder(layout, term, rec)

	require.NoError(t, b.CookPackage(context.Background(), "MyMod_Weapons.upk"))
	data, err := os.ReadFile(layout.EngineIni())
	require.NoError(t, err)
	assert.Equal(t, "UseTextureFileCache=FALSE\n", string(data))
	assert.Equal(t, []string{"Selected to cook: MyMod_Weapons.upk"}, rec.Texts(status.LevelInfo))
	assert.Equal(t, []string{"CookPackages", "MyMod_Weapons.upk", "-platform=pcconsole", "-skipmaps", "-fastcook", "-usermode"}, term.commands()[0].Args)
}

func TestCleanScripts(t *testing.T) {
	layout := newLayout(t)
	ws := newWorkspace(t, "MyMod", map[string]string{
		"Config/XComEngine.ini": "+NonNativePackages=MyMod\n+NonNativePackages=MyModHelpers\n",
	})
	writeTree(t, layout.ScriptDir(), map[string]string{
		"MyMod.u":        "",
		"MyModHelpers.u": "",
		"Core.u":         "",
		"Manifest.txt":   "",
	})
	b := NewBuilder(layout, &fakeTerminal{}, &status.Recorder{})

	removed, err := b.CleanScripts(ws, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"MyMod.u", "MyModHelpers.u"}, removed)
	assert.FileExists(t, filepath.Join(layout.ScriptDir(), "Core.u"))

	removed, err = b.CleanScripts(ws, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Core.u"}, removed)
	assert.FileExists(t, filepath.Join(layout.ScriptDir(), "Manifest.txt"))
}
