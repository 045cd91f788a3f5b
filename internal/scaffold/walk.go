package scaffold

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	sdkerrors "github.com/xcom-modding/xcom-devtools/internal/errors"
)

// FileRef is a discovered file and the directory containing it.
type FileRef struct {
	Dir  string
	Name string
}

func (f FileRef) Path() string {
	return filepath.Join(f.Dir, f.Name)
}

// Discover lists every regular file under root, depth first.
func Discover(root string) ([]FileRef, error) {
	var refs []FileRef
	err := doublestar.GlobWalk(os.DirFS(root), "**", func(p string, d os.DirEntry) error {
		if !d.Type().IsRegular() {
			return nil
		}
		full := filepath.Join(root, filepath.FromSlash(p))
		refs = append(refs, FileRef{Dir: filepath.Dir(full), Name: d.Name()})
		return nil
	})
	if err != nil {
		return refs, sdkerrors.IOf("discover files", err, "walk %s", root)
	}
	return refs, nil
}
