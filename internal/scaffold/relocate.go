package scaffold

import (
	"os"
	"path/filepath"

	sdkerrors "github.com/xcom-modding/xcom-devtools/internal/errors"
	"github.com/xcom-modding/xcom-devtools/internal/sdk"
)

// ContentDir is the template subdirectory holding content packages.
const ContentDir = "Content"

// RelocateContent moves the files of projectDir/Content into
// contentRoot/name and removes the emptied Content directory. Only the
// top-level files are moved; a Content directory with subdirectories is left
// in place and reported as an error.
func RelocateContent(projectDir, contentRoot, name string) (bool, error) {
	src := filepath.Join(projectDir, ContentDir)
	if !sdk.IsDir(src) {
		return false, nil
	}
	dst := filepath.Join(contentRoot, name)
	if err := os.MkdirAll(dst, 0755); err != nil {
		return false, sdkerrors.IO("relocate content", err)
	}
	if _, err := sdk.MoveTopLevelFiles(src, dst); err != nil {
		return false, err
	}
	if err := os.Remove(src); err != nil {
		return true, sdkerrors.IOf("relocate content", err, "remove %s", src)
	}
	return true, nil
}
