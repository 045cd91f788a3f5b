package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/xcom-modding/xcom-devtools/internal/config"
	sdkerrors "github.com/xcom-modding/xcom-devtools/internal/errors"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
	}
	cmd.AddCommand(newConfigShowCmd(a), newConfigSetCmd(a))
	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(a.settings); err != nil {
				return sdkerrors.IO("config show", err)
			}
			return enc.Close()
		},
	}
}

func newConfigSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a path in the workspace's editor settings",
		Long: fmt.Sprintf(`Set writes one of %s, %s or %s into the "settings"
object of the workspace's .code-workspace file, where the editor extension
reads them too. The rest of the file is left as it is.`, config.KeySDKPath, config.KeyGamePath, config.KeyLaunchCommand),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			descriptor, err := config.FindDescriptor(a.settings.Workspace)
			if err != nil {
				return err
			}
			if err := config.SetDescriptorSetting(descriptor, args[0], args[1]); err != nil {
				return err
			}
			a.status.Info("Set %s in %s", config.DescriptorKeys[args[0]], descriptor)
			return nil
		},
	}
}
