package main

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xcom-modding/xcom-devtools/internal/config"
	sdkerrors "github.com/xcom-modding/xcom-devtools/internal/errors"
	"github.com/xcom-modding/xcom-devtools/internal/sdk"
	"github.com/xcom-modding/xcom-devtools/internal/status"
)

// app is the state shared by every command.
type app struct {
	cfgFile  string
	v        *viper.Viper
	settings *config.Settings

	status   status.Reporter
	term     sdk.Terminal
	prompter prompter
	logOut   io.Writer
}

func newApp() *app {
	return &app{
		status: status.NewConsole(os.Stdout),
		term:   sdk.NewLauncher(),
		logOut: os.Stderr,
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "xsdk",
		Short: "Create, build, cook and run XCOM 2 mods with the SDK",
		Long: `xsdk wraps the XCOM 2 SDK's commandlets for the mod in the current
workspace, a directory holding a .code-workspace file.

SDK and game paths are read from flags, XSDK_* environment variables,
xsdk.yaml, or the workspace's editor settings, in that order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./xsdk.yaml or $HOME/.config/xsdk/xsdk.yaml)")
	flags.String("sdk-path", "", "XCOM 2 SDK install path")
	flags.String("game-path", "", "XCOM 2 game install path")
	flags.StringP("workspace", "w", ".", "mod workspace directory")
	flags.String("launch-command", "", "command that starts the game instead of xcom.exe")
	flags.String("copy-tool", "", `external copy command for new mods, e.g. robocopy {src} {dst} /MIR`)
	flags.StringP("log-level", "l", "info", "log level (debug, info, warn, error)")

	root.AddCommand(
		newCreateCmd(a),
		newMakeCmd(a),
		newShadersCmd(a),
		newMakeAllCmd(a),
		newCookHighlanderCmd(a),
		newCookPackageCmd(a),
		newCleanScriptsCmd(a),
		newEditorCmd(a),
		newRunCmd(a),
		newPublishCmd(a),
		newInfoCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return root
}

var flagKeys = map[string]string{
	"sdk-path":       config.KeySDKPath,
	"game-path":      config.KeyGamePath,
	"workspace":      config.KeyWorkspace,
	"launch-command": config.KeyLaunchCommand,
	"copy-tool":      config.KeyCopyTool,
	"log-level":      config.KeyLogLevel,
}

// load resolves the settings and installs the diagnostic logger.
func (a *app) load(cmd *cobra.Command) error {
	v, err := config.NewViper(a.cfgFile)
	if err != nil {
		return err
	}
	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, cmd.Root().PersistentFlags().Lookup(flag)); err != nil {
			return sdkerrors.Validation("flags", err.Error())
		}
	}
	settings, err := config.Load(v)
	if err != nil {
		return err
	}
	a.v = v
	a.settings = settings

	var level slog.Level
	if err := level.UnmarshalText([]byte(settings.LogLevel)); err != nil {
		return sdkerrors.Validation("log level", "unknown log level "+settings.LogLevel)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(a.logOut, &slog.HandlerOptions{Level: level})))
	slog.Debug("settings loaded", "sdk", settings.SDKPath, "game", settings.GamePath, "workspace", settings.Workspace, "config", v.ConfigFileUsed())
	return nil
}

func (a *app) layout() sdk.Layout {
	return sdk.Layout{SDKPath: a.settings.SDKPath, GamePath: a.settings.GamePath}
}

// shownError marks an error the user has already been told about.
type shownError struct{ error }

func (e shownError) Unwrap() error { return e.error }

func shown(err error) error {
	if err == nil {
		return nil
	}
	return shownError{err}
}

// report tells the user about a command's failure, once.
func (a *app) report(err error) {
	var s shownError
	if errors.As(err, &s) {
		return
	}
	switch sdkerrors.KindOf(err) {
	case sdkerrors.KindCancelled:
		var e *sdkerrors.Error
		if errors.As(err, &e) && e.Message != "" {
			a.status.Info("%s", e.Message)
			return
		}
	case sdkerrors.KindConfigurationMissing:
		a.status.Error("%v", err)
		a.status.Info("Run xsdk from your mod's workspace directory, or pass --workspace, and set the SDK path with xsdk config set sdk_path <path>")
		return
	}
	a.status.Error("%v", err)
}
