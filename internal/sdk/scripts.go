package sdk

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	sdkerrors "github.com/xcom-modding/xcom-devtools/internal/errors"
)

// protectedScripts must survive a full script wipe.
var protectedScripts = map[string]bool{
	"MANIFEST.TXT":      true,
	"DO_NOT_DELETE.TXT": true,
}

// DeleteScripts removes every file in dir except the protected manifests.
// It returns the names removed.
func DeleteScripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, sdkerrors.IOf("delete scripts", err, "read %s", dir)
	}
	var removed []string
	for _, e := range entries {
		if e.IsDir() || protectedScripts[strings.ToUpper(e.Name())] {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return removed, sdkerrors.IO("delete scripts", err)
		}
		removed = append(removed, e.Name())
	}
	return removed, nil
}

// DeleteScriptPackages removes <name>.u from dir for each name that exists.
func DeleteScriptPackages(dir string, names []string) ([]string, error) {
	var removed []string
	for _, name := range names {
		if name == "" {
			continue
		}
		p := filepath.Join(dir, name+".u")
		if err := os.Remove(p); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, sdkerrors.IO("delete script package", err)
		}
		removed = append(removed, name+".u")
	}
	return removed, nil
}

// FindFiles returns up to limit files under root matching a doublestar
// pattern, as paths joined onto root. A limit <= 0 means no limit.
func FindFiles(root, pattern string, limit int) ([]string, error) {
	var found []string
	errLimit := sdkerrors.Validation("find files", "limit reached")
	err := doublestar.GlobWalk(os.DirFS(root), pattern, func(p string, d os.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		found = append(found, filepath.Join(root, filepath.FromSlash(p)))
		if limit > 0 && len(found) >= limit {
			return errLimit
		}
		return nil
	})
	if err != nil && !errors.Is(err, errLimit) {
		return found, sdkerrors.IOf("find files", err, "%s in %s", pattern, root)
	}
	return found, nil
}
