package main

import (
	"github.com/spf13/cobra"

	devtools "github.com/xcom-modding/xcom-devtools"
)

func (a *app) deployer() (*devtools.Deployer, *devtools.Workspace, error) {
	if err := a.settings.RequireSDK(); err != nil {
		return nil, nil, err
	}
	ws, err := devtools.OpenWorkspace(a.settings.Workspace)
	if err != nil {
		return nil, nil, err
	}
	d := devtools.NewDeployer(a.layout(), a.term, a.status)
	d.LaunchCommand = a.settings.LaunchCommand
	return d, ws, nil
}

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Deploy the mod to the game, enable it and start the game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.settings.RequireGame(); err != nil {
				return err
			}
			d, ws, err := a.deployer()
			if err != nil {
				return err
			}
			return d.RunMod(cmd.Context(), ws)
		},
	}
}

func newPublishCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Stage the mod and publish it to the Steam Workshop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, ws, err := a.deployer()
			if err != nil {
				return err
			}
			return d.Publish(cmd.Context(), ws)
		},
	}
}
