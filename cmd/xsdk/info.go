package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	devtools "github.com/xcom-modding/xcom-devtools"
	sdkerrors "github.com/xcom-modding/xcom-devtools/internal/errors"
)

type workspaceInfo struct {
	Name           string            `yaml:"name"`
	Dir            string            `yaml:"dir"`
	Descriptor     string            `yaml:"descriptor"`
	ScriptPackages []string          `yaml:"script_packages"`
	HasClasses     bool              `yaml:"has_classes"`
	Mod            *devtools.ModInfo `yaml:"mod,omitempty"`
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Describe the mod in the workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := devtools.OpenWorkspace(a.settings.Workspace)
			if err != nil {
				return err
			}
			packages, err := ws.ScriptPackages()
			if err != nil {
				return err
			}
			info := workspaceInfo{
				Name:           ws.Name,
				Dir:            ws.Dir,
				Descriptor:     ws.Descriptor,
				ScriptPackages: packages,
				HasClasses:     ws.HasClasses(),
			}
			if mod, err := ws.Info(); err == nil {
				info.Mod = mod
			} else if !sdkerrors.HasKind(err, sdkerrors.KindConfigurationMissing) {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(info); err != nil {
				return sdkerrors.IO("info", err)
			}
			return enc.Close()
		},
	}
}
