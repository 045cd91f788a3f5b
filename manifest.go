package devtools

import (
	"os"
	"path/filepath"

	"github.com/xcom-modding/xcom-devtools/internal/config"
	sdkerrors "github.com/xcom-modding/xcom-devtools/internal/errors"
	"github.com/xcom-modding/xcom-devtools/internal/sdk"
)

// ModInfo is what the mod's .XComMod file says about it.
type ModInfo struct {
	Title           string `json:"title" yaml:"title"`
	Description     string `json:"description" yaml:"description,omitempty"`
	PublishedFileID string `json:"publishedFileId" yaml:"published_file_id,omitempty"`
	RequiresXPack   bool   `json:"requiresXPACK" yaml:"requires_xpack"`
}

// Workspace is a mod project: a directory holding a .code-workspace
// descriptor. Its name, the descriptor's file name up to the first dot,
// names the script package and every deployed directory.
type Workspace struct {
	Dir        string
	Descriptor string
	Name       string
}

func OpenWorkspace(dir string) (*Workspace, error) {
	descriptor, err := config.FindDescriptor(dir)
	if err != nil {
		return nil, err
	}
	return &Workspace{
		Dir:        dir,
		Descriptor: descriptor,
		Name:       config.WorkspaceName(descriptor),
	}, nil
}

// HasClasses reports whether the mod has script sources to compile.
func (w *Workspace) HasClasses() bool {
	return sdk.IsDir(filepath.Join(w.Dir, "Classes")) ||
		sdk.IsDir(filepath.Join(w.Dir, "Src", w.Name, "Classes"))
}

// ScriptPackages lists the script packages the mod's XComEngine.ini adds.
// The first of up to five XComEngine.ini files declaring packages is used;
// without one, the workspace's own package is the only one.
func (w *Workspace) ScriptPackages() ([]string, error) {
	inis, err := sdk.FindFiles(w.Dir, "**/XComEngine.ini", 5)
	if err != nil {
		return nil, err
	}
	for _, p := range inis {
		data, err := os.ReadFile(p) // #nosec G304
		if err != nil {
			return nil, sdkerrors.IOf("script packages", err, "read %s", p)
		}
		if text := string(data); sdk.DeclaresScriptPackages(text) {
			return sdk.ScriptPackages(text, w.Name), nil
		}
	}
	return []string{w.Name}, nil
}

// ModFile is the path of the mod's .XComMod file.
func (w *Workspace) ModFile() string {
	return filepath.Join(w.Dir, w.Name+".XComMod")
}

func (w *Workspace) Info() (*ModInfo, error) {
	data, err := os.ReadFile(w.ModFile())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, sdkerrors.ConfigurationMissing("mod info", "no "+filepath.Base(w.ModFile())+" in "+w.Dir)
		}
		return nil, sdkerrors.IO("mod info", err)
	}
	kv := sdk.ParseKeyValues(string(data))
	return &ModInfo{
		Title:           kv["title"],
		Description:     kv["description"],
		PublishedFileID: kv["publishedfileid"],
		RequiresXPack:   kv["requiresxpack"] == "true",
	}, nil
}
