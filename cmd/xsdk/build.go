package main

import (
	"github.com/spf13/cobra"

	devtools "github.com/xcom-modding/xcom-devtools"
	sdkerrors "github.com/xcom-modding/xcom-devtools/internal/errors"
)

// builder opens the workspace and a Builder for it.
func (a *app) builder() (*devtools.Builder, *devtools.Workspace, error) {
	if err := a.settings.RequireSDK(); err != nil {
		return nil, nil, err
	}
	ws, err := devtools.OpenWorkspace(a.settings.Workspace)
	if err != nil {
		return nil, nil, err
	}
	return devtools.NewBuilder(a.layout(), a.term, a.status), ws, nil
}

func newMakeCmd(a *app) *cobra.Command {
	var noWait bool
	cmd := &cobra.Command{
		Use:   "make",
		Short: "Compile the mod's scripts",
		Long: `Make deletes the mod's compiled script package and runs the make
commandlet for it. The outcome is read from XComGame/Logs/Launch.log.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, ws, err := a.builder()
			if err != nil {
				return err
			}
			err = b.BuildScripts(cmd.Context(), ws, !noWait)
			if sdkerrors.HasKind(err, sdkerrors.KindProtocolAmbiguous) {
				return shown(err)
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&noWait, "no-wait", false, "start the compile without waiting for its outcome")
	return cmd
}

func newShadersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shaders",
		Short: "Precompile the mod's shader cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, ws, err := a.builder()
			if err != nil {
				return err
			}
			return b.BuildShaderCache(cmd.Context(), ws)
		},
	}
}

func newMakeAllCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "make-all",
		Short: "Compile every script package for final release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.settings.RequireSDK(); err != nil {
				return err
			}
			return devtools.NewBuilder(a.layout(), a.term, a.status).MakeAll(cmd.Context())
		},
	}
}

func newCookHighlanderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cook-highlander",
		Short: "Cook the script packages with the texture file cache on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.settings.RequireSDK(); err != nil {
				return err
			}
			return devtools.NewBuilder(a.layout(), a.term, a.status).CookHighlander(cmd.Context())
		},
	}
}

func newCookPackageCmd(a *app) *cobra.Command {
	var upk string
	cmd := &cobra.Command{
		Use:   "cook-package",
		Short: "Cook one of the mod's content packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, ws, err := a.builder()
			if err != nil {
				return err
			}
			if upk == "" {
				upks, err := b.Packages(ws)
				if err != nil {
					return err
				}
				if len(upks) == 0 {
					return devtools.ErrNoPackages
				}
				p := a.prompts()
				if p == nil {
					return sdkerrors.Validation("cook package", "pass --upk when not running in a terminal")
				}
				upk, err = p.SelectPackage(upks)
				if err != nil || upk == "" {
					return sdkerrors.Cancelled("cook package", "Did not select a UPK, cancelling cook...")
				}
			}
			return b.CookPackage(cmd.Context(), upk)
		},
	}
	cmd.Flags().StringVar(&upk, "upk", "", "package file name in XComGame/Content/Mods/<mod>")
	return cmd
}

func newCleanScriptsCmd(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "clean-scripts",
		Short: "Delete compiled script packages",
		Long: `Clean-scripts deletes the compiled packages the mod's XComEngine.ini
lists with +NonNativePackages=. With --all every compiled script is removed
except the SDK's manifest files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, ws, err := a.builder()
			if err != nil {
				return err
			}
			removed, err := b.CleanScripts(ws, all)
			for _, name := range removed {
				a.status.Info("Deleted %s", name)
			}
			if err != nil {
				return err
			}
			if len(removed) == 0 {
				a.status.Info("No compiled scripts to delete")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "delete every compiled script")
	return cmd
}

func newEditorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "editor",
		Short: "Start the SDK's editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.settings.RequireSDK(); err != nil {
				return err
			}
			return devtools.NewBuilder(a.layout(), a.term, a.status).RunEditor(cmd.Context())
		},
	}
}
