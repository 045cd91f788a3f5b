// Package scaffold creates a new mod project from one of the SDK's templates.
//
// A template directory is copied into the SDK's source tree, every file is
// personalised by replacing the template's placeholder tokens, and bundled
// content packages are moved to where the editor expects them.
package scaffold

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/stoewer/go-strcase"
	"golang.org/x/exp/slices"

	sdkerrors "github.com/xcom-modding/xcom-devtools/internal/errors"
)

var (
	ErrNoTemplate  = sdkerrors.Cancelled("select template", "Did not select a template, cancelling create...")
	ErrNoName      = sdkerrors.Cancelled("name mod", "Did not provide a valid mod name, cancelling create...")
	ErrInvalidName = sdkerrors.Validation("name mod", "Invalid name")
	ErrNameExists  = sdkerrors.Validation("name mod", "Invalid, already exists")
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ListTemplates returns the sorted names of the template directories in root.
func ListTemplates(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, sdkerrors.IOf("list templates", err, "read %s", root)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

// ValidateName checks a new mod name against the allowed characters and the
// mods already present in srcDir.
func ValidateName(srcDir, name string) error {
	if !namePattern.MatchString(name) {
		return ErrInvalidName
	}
	if _, err := os.Stat(filepath.Join(srcDir, name)); err == nil {
		return ErrNameExists
	}
	return nil
}

// SuggestName proposes a default mod name for a template.
func SuggestName(template string) string {
	name := strcase.UpperCamelCase("my " + template)
	if !namePattern.MatchString(name) {
		return "MyModName"
	}
	return name
}
