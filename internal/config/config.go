// Package config loads the tool's settings using Viper.
//
// Settings come from, highest priority first: command-line flags, XSDK_*
// environment variables, an xsdk.yaml file in the working directory or in
// $HOME/.config/xsdk, and finally the "settings" object of the mod's
// workspace descriptor (*.code-workspace), where the editor keeps the SDK
// and game install paths.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	sdkerrors "github.com/xcom-modding/xcom-devtools/internal/errors"
)

const (
	KeySDKPath       = "sdk_path"
	KeyGamePath      = "game_path"
	KeyLaunchCommand = "launch_command"
	KeyWorkspace     = "workspace"
	KeyCopyTool      = "copy_tool"
	KeyLogLevel      = "log_level"
)

// EnvPrefix prefixes every environment override, e.g. XSDK_SDK_PATH.
const EnvPrefix = "XSDK"

type Settings struct {
	SDKPath       string `mapstructure:"sdk_path" yaml:"sdk_path"`
	GamePath      string `mapstructure:"game_path" yaml:"game_path"`
	LaunchCommand string `mapstructure:"launch_command" yaml:"launch_command,omitempty"`
	Workspace     string `mapstructure:"workspace" yaml:"workspace"`
	CopyTool      string `mapstructure:"copy_tool" yaml:"copy_tool,omitempty"`
	LogLevel      string `mapstructure:"log_level" yaml:"log_level"`
}

// NewViper returns a Viper instance with defaults, environment binding and
// the config file (cfgFile, or xsdk.yaml on the search path) read in.
func NewViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(KeySDKPath, "")
	v.SetDefault(KeyGamePath, "")
	v.SetDefault(KeyLaunchCommand, "")
	v.SetDefault(KeyWorkspace, ".")
	v.SetDefault(KeyCopyTool, "")
	v.SetDefault(KeyLogLevel, "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("xsdk")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "xsdk"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, sdkerrors.IOf("load config", err, "read config")
		}
	}
	return v, nil
}

// Load resolves the effective settings. Paths still unset after Viper are
// taken from the workspace descriptor, if there is one.
func Load(v *viper.Viper) (*Settings, error) {
	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, sdkerrors.IOf("load config", err, "decode settings")
	}
	if s.Workspace == "" {
		s.Workspace = "."
	}
	abs, err := filepath.Abs(s.Workspace)
	if err != nil {
		return nil, sdkerrors.IO("load config", err)
	}
	s.Workspace = abs

	descriptor, err := FindDescriptor(s.Workspace)
	if err != nil {
		return s, nil
	}
	fill := map[string]*string{
		KeySDKPath:       &s.SDKPath,
		KeyGamePath:      &s.GamePath,
		KeyLaunchCommand: &s.LaunchCommand,
	}
	for key, field := range fill {
		if *field != "" {
			continue
		}
		value, ok, err := DescriptorSetting(descriptor, key)
		if err != nil {
			return nil, err
		}
		if ok {
			*field = value
		}
	}
	return s, nil
}

// RequireSDK fails when no SDK install path is configured.
func (s *Settings) RequireSDK() error {
	if s.SDKPath == "" {
		return sdkerrors.ConfigurationMissing("config", "no XCOM 2 SDK install path configured (set sdk_path or "+DescriptorKeys[KeySDKPath]+")")
	}
	return nil
}

// RequireGame fails when no game install path is configured.
func (s *Settings) RequireGame() error {
	if s.GamePath == "" {
		return sdkerrors.ConfigurationMissing("config", "no XCOM 2 game install path configured (set game_path or "+DescriptorKeys[KeyGamePath]+")")
	}
	return nil
}
