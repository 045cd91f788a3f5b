package devtools

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/exp/slices"

	"github.com/xcom-modding/xcom-devtools/internal/buildwatch"
	sdkerrors "github.com/xcom-modding/xcom-devtools/internal/errors"
	"github.com/xcom-modding/xcom-devtools/internal/sdk"
	"github.com/xcom-modding/xcom-devtools/internal/status"
)

const textureCacheKey = "UseTextureFileCache="

var (
	ErrBuildFailed    = sdkerrors.ProtocolAmbiguous("make", "Script compile FAILED. Check for errors in your source files.")
	ErrModuleNotBuilt = sdkerrors.ProtocolAmbiguous("make", "script package was not compiled")
	ErrNoPackages     = sdkerrors.Cancelled("cook package", "No UPKs found, cancelling cook...")
)

// Builder runs the SDK's make and cook commandlets.
type Builder struct {
	layout   sdk.Layout
	term     sdk.Terminal
	status   status.Reporter
	sessions *buildwatch.Registry
}

func NewBuilder(layout sdk.Layout, term sdk.Terminal, reporter status.Reporter) *Builder {
	return &Builder{
		layout:   layout,
		term:     term,
		status:   reporter,
		sessions: buildwatch.NewRegistry(layout.LogsDir()),
	}
}

// BuildScripts compiles the workspace's script package. With wait set it
// follows the launch log and returns once the compile has an outcome; the
// commandlet's exit status is never consulted.
func (b *Builder) BuildScripts(ctx context.Context, ws *Workspace, wait bool) error {
	session, release, err := b.sessions.Start(ws.Name, b.layout.LaunchLog())
	if err != nil {
		return err
	}
	defer release()

	module := b.layout.ScriptModule(ws.Name)
	if err := os.Remove(module); err != nil && !os.IsNotExist(err) {
		return sdkerrors.IOf("make", err, "remove %s", module)
	}

	cmd := b.layout.Commandlet("make", "-mods", ws.Name, sdk.NormalizePath(b.layout.ModSrcDir(ws.Name)))
	if !wait {
		return b.term.Send(ctx, cmd)
	}

	w, err := buildwatch.NewWatcher(session)
	if err != nil {
		return err
	}
	if err := b.term.Send(ctx, cmd); err != nil {
		w.Close()
		return err
	}
	ev, err := w.Wait(ctx, b.reportBuild(ws.Name))
	if err != nil {
		return err
	}
	switch ev {
	case buildwatch.EventSucceeded:
		return nil
	case buildwatch.EventModuleNotBuilt:
		return ErrModuleNotBuilt
	default:
		return ErrBuildFailed
	}
}

func (b *Builder) reportBuild(module string) buildwatch.Handler {
	return func(ev buildwatch.Event) {
		switch ev {
		case buildwatch.EventLaunched:
			b.status.Info("XComGame.exe launched...")
		case buildwatch.EventSucceeded:
			b.status.Info("Script compile SUCCEEDED")
		case buildwatch.EventModuleNotBuilt:
			b.status.Error("Script compile did not build your module %s!\nCheck your mod's INI files to make sure it is being included in the script package lists.", module)
		case buildwatch.EventFailed:
			b.status.Error("%s", ErrBuildFailed.Message)
		}
	}
}

// BuildShaderCache precompiles the mod's shader cache.
func (b *Builder) BuildShaderCache(ctx context.Context, ws *Workspace) error {
	return b.term.Send(ctx, b.layout.Commandlet("precompileshaders", "-nopause", "platform=pc_sm4", "DLC="+ws.Name))
}

// MakeAll compiles every script package into the final release.
func (b *Builder) MakeAll(ctx context.Context) error {
	return b.term.Send(ctx, b.layout.Commandlet("make", "-final_release", "-full"))
}

// CookHighlander turns the texture file cache on and runs a full release
// make, which cooks the script packages.
func (b *Builder) CookHighlander(ctx context.Context) error {
	if err := b.setTextureCache("TRUE"); err != nil {
		return err
	}
	return b.MakeAll(ctx)
}

// Packages lists the mod's cookable content packages. Shader caches and
// seek-free packages are left out.
func (b *Builder) Packages(ws *Workspace) ([]string, error) {
	dir := b.layout.ModContentDir(ws.Name)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, sdkerrors.IOf("cook package", err, "read %s", dir)
	}
	var upks []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		name := e.Name()
		if ok, _ := doublestar.Match("*.upk", strings.ToLower(name)); !ok {
			continue
		}
		base := strings.TrimSuffix(name, filepath.Ext(name))
		if strings.Contains(base, "_ModShaderCache") || strings.Contains(base, "_SF") {
			continue
		}
		upks = append(upks, name)
	}
	slices.Sort(upks)
	return upks, nil
}

// CookPackage cooks one content package. The texture file cache must be
// off, or the cooked textures come out corrupt.
func (b *Builder) CookPackage(ctx context.Context, upk string) error {
	if err := b.setTextureCache("FALSE"); err != nil {
		return err
	}
	b.status.Info("Selected to cook: %s", upk)
	return b.term.Send(ctx, b.layout.Commandlet("CookPackages", upk, "-platform=pcconsole", "-skipmaps", "-fastcook", "-usermode"))
}

func (b *Builder) setTextureCache(value string) error {
	err := sdk.SetKeyInFile(b.layout.EngineIni(), textureCacheKey, value)
	if sdkerrors.HasKind(err, sdkerrors.KindValidation) {
		return sdkerrors.Validation("set texture cache", textureCacheKey+" in XComEngine.ini was not found! Please add it back in before trying again!")
	}
	return err
}

// RunEditor starts the SDK's editor.
func (b *Builder) RunEditor(ctx context.Context) error {
	dir := b.layout.BinariesDir()
	return b.term.Send(ctx, sdk.Command{
		Dir:  dir,
		Path: sdk.NormalizePath(dir + "/" + sdk.EditorExecutable),
		Args: []string{"editor"},
	})
}

// CleanScripts deletes compiled script packages: the ones the workspace
// declares, or every one but the SDK's manifest files when all is set.
func (b *Builder) CleanScripts(ws *Workspace, all bool) ([]string, error) {
	if all {
		return sdk.DeleteScripts(b.layout.ScriptDir())
	}
	names, err := ws.ScriptPackages()
	if err != nil {
		return nil, err
	}
	return sdk.DeleteScriptPackages(b.layout.ScriptDir(), names)
}
