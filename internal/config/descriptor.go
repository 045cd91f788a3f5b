package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"golang.org/x/exp/slices"

	sdkerrors "github.com/xcom-modding/xcom-devtools/internal/errors"
)

// DescriptorExt is the extension of the editor's workspace descriptor.
const DescriptorExt = ".code-workspace"

// DescriptorKeys maps settings to the editor setting names stored in the
// descriptor's "settings" object.
var DescriptorKeys = map[string]string{
	KeySDKPath:       "conf.Paths.XCOM-SDKInstallPath",
	KeyGamePath:      "conf.Paths.GameInstallPath",
	KeyLaunchCommand: "conf.Paths.LaunchCommand",
}

// FindDescriptor returns the first workspace descriptor in dir.
func FindDescriptor(dir string) (string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), "*"+DescriptorExt)
	if err != nil {
		return "", sdkerrors.IO("find workspace", err)
	}
	if len(matches) == 0 {
		return "", sdkerrors.ConfigurationMissing("find workspace", "no "+DescriptorExt+" file in "+dir)
	}
	slices.Sort(matches)
	return filepath.Join(dir, matches[0]), nil
}

// WorkspaceName is the descriptor's file name up to its first dot.
func WorkspaceName(descriptor string) string {
	name := filepath.Base(descriptor)
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	return name
}

func settingPath(key string) (string, error) {
	name, ok := DescriptorKeys[key]
	if !ok {
		return "", sdkerrors.Validation("descriptor setting", "unknown setting "+key)
	}
	return "settings." + strings.ReplaceAll(name, ".", `\.`), nil
}

// DescriptorSetting reads a setting from the descriptor at path.
func DescriptorSetting(path, key string) (string, bool, error) {
	p, err := settingPath(key)
	if err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return "", false, sdkerrors.IOf("descriptor setting", err, "read %s", path)
	}
	res := gjson.GetBytes(data, p)
	if !res.Exists() || res.String() == "" {
		return "", false, nil
	}
	return res.String(), true, nil
}

// SetDescriptorSetting writes a setting into the descriptor at path, leaving
// the rest of the document untouched.
func SetDescriptorSetting(path, key, value string) error {
	p, err := settingPath(key)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return sdkerrors.IOf("descriptor setting", err, "read %s", path)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		data = []byte("{}")
	}
	if !gjson.ValidBytes(data) {
		return sdkerrors.Validation("descriptor setting", path+" is not valid JSON")
	}
	updated, err := sjson.SetBytes(data, p, value)
	if err != nil {
		return sdkerrors.IOf("descriptor setting", err, "update %s", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return sdkerrors.IO("descriptor setting", err)
	}
	if err := os.WriteFile(path, updated, info.Mode().Perm()); err != nil {
		return sdkerrors.IOf("descriptor setting", err, "write %s", path)
	}
	return nil
}
