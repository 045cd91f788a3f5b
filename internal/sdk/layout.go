// Package sdk knows where things live in an XCOM 2 SDK and game install, and
// provides the file plumbing the commands share: INI edits, directory copies
// and launching SDK executables.
package sdk

import (
	"path/filepath"
	"strings"
)

const (
	// CommandletExecutable hosts make and cook commandlets.
	CommandletExecutable = "XComGame.com"
	EditorExecutable     = "XComGame.exe"
	GameExecutable       = "xcom.exe"
	PublishExecutable    = "steampublish.exe"
)

// Layout resolves SDK and game install paths.
type Layout struct {
	SDKPath  string
	GamePath string
}

func (l Layout) BinariesDir() string {
	return filepath.Join(l.SDKPath, "Binaries", "Win64")
}

func (l Layout) PublishDir() string {
	return filepath.Join(l.BinariesDir(), "publish")
}

func (l Layout) LogsDir() string {
	return filepath.Join(l.SDKPath, "XComGame", "Logs")
}

// LaunchLog is the log the make commandlet writes its progress to.
func (l Layout) LaunchLog() string {
	return filepath.Join(l.LogsDir(), "Launch.log")
}

func (l Layout) ScriptDir() string {
	return filepath.Join(l.SDKPath, "XComGame", "Script")
}

// ScriptModule is the compiled script package for a mod.
func (l Layout) ScriptModule(name string) string {
	return filepath.Join(l.ScriptDir(), name+".u")
}

func (l Layout) SrcDir() string {
	return filepath.Join(l.SDKPath, "Development", "Src")
}

func (l Layout) ModSrcDir(name string) string {
	return filepath.Join(l.SrcDir(), name)
}

func (l Layout) TemplatesDir() string {
	return filepath.Join(l.SDKPath, "Development", "Templates")
}

func (l Layout) ContentModsDir() string {
	return filepath.Join(l.SDKPath, "XComGame", "Content", "Mods")
}

func (l Layout) ModContentDir(name string) string {
	return filepath.Join(l.ContentModsDir(), name)
}

func (l Layout) EngineIni() string {
	return filepath.Join(l.SDKPath, "XComGame", "Config", "XComEngine.ini")
}

func (l Layout) GameBinariesDir() string {
	return filepath.Join(l.GamePath, "Binaries", "Win64")
}

func (l Layout) GameModsDir() string {
	return filepath.Join(l.GamePath, "XComGame", "Mods")
}

func (l Layout) GameModDir(name string) string {
	return filepath.Join(l.GameModsDir(), name)
}

func (l Layout) ModOptionsIni() string {
	return filepath.Join(l.GamePath, "XComGame", "Config", "DefaultModOptions.ini")
}

// NormalizePath rewrites backslashes to forward slashes.
func NormalizePath(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// Quote wraps p in double quotes for a command line.
func Quote(p string) string {
	return `"` + p + `"`
}
