package devtools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	sdkerrors "github.com/xcom-modding/xcom-devtools/internal/errors"
	"github.com/xcom-modding/xcom-devtools/internal/sdk"
	"github.com/xcom-modding/xcom-devtools/internal/status"
)

// Deployer installs a mod into the game and hands it to Steam.
type Deployer struct {
	layout sdk.Layout
	term   sdk.Terminal
	status status.Reporter
	// LaunchCommand replaces the default game launch when set.
	LaunchCommand string
}

func NewDeployer(layout sdk.Layout, term sdk.Terminal, reporter status.Reporter) *Deployer {
	return &Deployer{layout: layout, term: term, status: reporter}
}

// RunMod copies the mod into the game's Mods directory, enables it in
// DefaultModOptions.ini and starts the game.
func (d *Deployer) RunMod(ctx context.Context, ws *Workspace) error {
	dest := d.layout.GameModDir(ws.Name)
	if err := os.MkdirAll(d.layout.GameModsDir(), 0755); err != nil {
		return sdkerrors.IO("run mod", err)
	}

	d.status.Info("Deploying mod files to the XCom game directory...")
	d.status.Info("Copying base files...")
	if err := d.copyBase(ws.Dir, dest); err != nil {
		return copyFailed("BASE FILES", err)
	}
	if ws.HasClasses() {
		d.status.Info("Copying compiled script module...")
		if err := d.copyModule(ws.Name, filepath.Join(dest, "Script")); err != nil {
			return copyFailed("SCRIPT MODULE", err)
		}
	}
	if content := d.layout.ModContentDir(ws.Name); sdk.IsDir(content) {
		d.status.Info("Copying content packages...")
		if err := sdk.CopyDir(content, filepath.Join(dest, "Content")); err != nil {
			return copyFailed("CONTENT PACKAGES", err)
		}
	}

	d.status.Info("Updating DefaultModOptions.ini to enable the mod ...")
	if _, err := sdk.EnsureActiveMod(d.layout.ModOptionsIni(), ws.Name); err != nil {
		return err
	}
	return d.term.Send(ctx, d.launch())
}

// copyFailed keeps the underlying kind so callers can still tell an I/O
// failure from a configuration one.
func copyFailed(what string, err error) error {
	return fmt.Errorf("FAILED to copy %s! Check the SDK and game paths in your settings: %w", what, err)
}

func (d *Deployer) copyBase(src, dest string) error {
	if _, err := sdk.CopyFiles(src, dest); err != nil {
		return err
	}
	for _, sub := range []string{"Config", "Localization"} {
		if !sdk.IsDir(filepath.Join(src, sub)) {
			continue
		}
		if err := sdk.CopyDir(filepath.Join(src, sub), filepath.Join(dest, sub)); err != nil {
			return err
		}
	}
	return nil
}

func (d *Deployer) copyModule(name, scriptDir string) error {
	if err := os.MkdirAll(scriptDir, 0755); err != nil {
		return sdkerrors.IO("copy script module", err)
	}
	return sdk.CopyFile(d.layout.ScriptModule(name), filepath.Join(scriptDir, name+".u"))
}

func (d *Deployer) launch() sdk.Command {
	dir := d.layout.GameBinariesDir()
	if d.LaunchCommand != "" {
		return sdk.ShellCommand(dir, d.LaunchCommand)
	}
	return sdk.Command{
		Dir:  dir,
		Path: sdk.NormalizePath(dir + "/" + sdk.GameExecutable),
		Args: []string{"-allowconsole", "-showlog"},
	}
}

// Publish stages the compiled script module and content packages inside the
// workspace and runs the Steam publishing tool on it. A missing script
// module stops the publish; content that fails to copy is only reported.
func (d *Deployer) Publish(ctx context.Context, ws *Workspace) error {
	d.status.Info("Preparing the publishing directory ...")
	d.status.Info("(%s)", ws.Dir)
	if ws.HasClasses() {
		d.status.Info("Copying compiled script module...")
		if err := d.copyModule(ws.Name, filepath.Join(ws.Dir, "Script")); err != nil {
			return copyFailed("SCRIPT MODULE", err)
		}
	}
	if content := d.layout.ModContentDir(ws.Name); sdk.IsDir(content) {
		d.status.Info("Copying content packages...")
		if err := sdk.CopyDir(content, filepath.Join(ws.Dir, "Content")); err != nil {
			d.status.Warn("%v", copyFailed("CONTENT PACKAGES", err))
		}
	}

	d.status.Info("Launching Steam publishing command...")
	dir := d.layout.PublishDir()
	return d.term.Send(ctx, sdk.Command{
		Dir:  dir,
		Path: sdk.NormalizePath(dir + "/" + sdk.PublishExecutable),
		Args: []string{ws.Name},
	})
}
