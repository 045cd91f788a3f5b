package main

import (
	"github.com/spf13/cobra"

	"github.com/xcom-modding/xcom-devtools/internal/scaffold"
)

func newCreateCmd(a *app) *cobra.Command {
	var template, name string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new mod from one of the SDK's templates",
		Long: `Create copies a template from Development/Templates into Development/Src,
personalises it with the mod's name and moves its content packages to
XComGame/Content/Mods. Without --template or --name you are prompted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.settings.RequireSDK(); err != nil {
				return err
			}
			var copier scaffold.Copier = scaffold.DirectCopier{}
			if a.settings.CopyTool != "" {
				copier = &scaffold.ToolCopier{
					Terminal: a.term,
					Command:  a.settings.CopyTool,
					Options:  scaffold.DefaultQuiesceOptions(),
				}
			}
			var p scaffold.Prompter
			if pr := a.prompts(); pr != nil {
				p = pr
			}
			in := scaffold.NewInstantiator(a.layout(), p, copier, a.status)
			job, err := in.Plan(template, name)
			if err != nil {
				return shown(err)
			}
			return shown(in.Run(cmd.Context(), job))
		},
	}
	cmd.Flags().StringVarP(&template, "template", "t", "", "template directory name")
	cmd.Flags().StringVarP(&name, "name", "n", "", "name of the new mod")
	return cmd
}
