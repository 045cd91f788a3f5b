package scaffold

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/exp/slices"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	sdkerrors "github.com/xcom-modding/xcom-devtools/internal/errors"
	"github.com/xcom-modding/xcom-devtools/internal/sdk"
)

const (
	ModNameToken   = "$ModSafeName$"
	SDKPathToken   = "$REPLACESDKPATH$"
	FileNameMarker = "TemplateReplace"
)

// FileClass decides how a template file is personalised.
type FileClass int

const (
	Binary FileClass = iota
	Text
	Localization
)

func (c FileClass) String() string {
	switch c {
	case Binary:
		return "binary"
	case Text:
		return "text"
	case Localization:
		return "localization"
	default:
		return "unknown"
	}
}

// Patterns are matched against lower-cased file names.
const (
	textPattern         = "*.{uc,uci,ini,md,json,xcommod,code-workspace}"
	localizationPattern = "*.{chn,cht,deu,esn,fra,int,ita,jpn,kor,pol,rus,xxx}"
)

// Classify picks the class of a file from its name.
func Classify(name string) FileClass {
	lower := strings.ToLower(name)
	if ok, _ := doublestar.Match(localizationPattern, lower); ok {
		return Localization
	}
	if ok, _ := doublestar.Match(textPattern, lower); ok {
		return Text
	}
	return Binary
}

// Rewriter personalises template files for one mod.
type Rewriter struct {
	ModName string
	SDKPath string
}

// Rename returns the file name with the template marker replaced.
func (r Rewriter) Rename(name string) string {
	return strings.Replace(name, FileNameMarker, r.ModName, 1)
}

// ReplaceTokens substitutes the mod name and the SDK path into text.
func (r Rewriter) ReplaceTokens(text string) string {
	return strings.NewReplacer(
		ModNameToken, r.ModName,
		SDKPathToken, sdk.NormalizePath(r.SDKPath),
	).Replace(text)
}

// Rewrite personalises one file and returns where it ended up. Text files
// have their tokens replaced and are written to their final name;
// localization files are written back as UTF-16LE, everything else as UTF-8.
// Binary files are only renamed, and only when their name carries the marker.
func (r Rewriter) Rewrite(ref FileRef) (FileRef, error) {
	final := FileRef{Dir: ref.Dir, Name: r.Rename(ref.Name)}
	class := Classify(ref.Name)
	if class == Binary {
		if final.Name == ref.Name {
			return ref, nil
		}
		if err := os.Rename(ref.Path(), final.Path()); err != nil {
			return ref, sdkerrors.IO("rename file", err)
		}
		return final, nil
	}

	data, err := os.ReadFile(ref.Path())
	if err != nil {
		return ref, sdkerrors.IOf("rewrite file", err, "read %s", ref.Path())
	}
	text, err := decodeText(data)
	if err != nil {
		return ref, sdkerrors.IOf("rewrite file", err, "decode %s", ref.Path())
	}
	out, err := encodeText(r.ReplaceTokens(text), class)
	if err != nil {
		return ref, sdkerrors.IOf("rewrite file", err, "encode %s", final.Path())
	}
	// Copy tools keep the read-only bit of SDK template files.
	mode := os.FileMode(0644)
	if info, err := os.Stat(ref.Path()); err == nil {
		mode = info.Mode().Perm() | 0200
		if err := os.Chmod(ref.Path(), mode); err != nil {
			return ref, sdkerrors.IOf("rewrite file", err, "make %s writable", ref.Path())
		}
	}
	if err := os.WriteFile(final.Path(), out, mode); err != nil {
		return ref, sdkerrors.IOf("rewrite file", err, "write %s", final.Path())
	}
	if final.Name != ref.Name {
		if err := os.Remove(ref.Path()); err != nil {
			return final, sdkerrors.IO("rewrite file", err)
		}
	}
	return final, nil
}

// RenameDirs renames every directory under root whose name carries the
// marker, children before their parents. It returns each new path as it
// was when renamed, before any parent rename.
func (r Rewriter) RenameDirs(root string) ([]string, error) {
	var dirs []string
	err := doublestar.GlobWalk(os.DirFS(root), "**", func(p string, d os.DirEntry) error {
		if d.IsDir() && p != "." && strings.Contains(d.Name(), FileNameMarker) {
			dirs = append(dirs, filepath.FromSlash(p))
		}
		return nil
	})
	if err != nil {
		return nil, sdkerrors.IOf("rename directories", err, "walk %s", root)
	}

	// Reverse lexical order puts every child ahead of its parent.
	slices.Sort(dirs)
	var renamed []string
	for i := len(dirs) - 1; i >= 0; i-- {
		from := filepath.Join(root, dirs[i])
		to := filepath.Join(filepath.Dir(from), r.Rename(filepath.Base(from)))
		if _, err := os.Lstat(to); err == nil {
			return renamed, sdkerrors.Validation("rename directories", to+" already exists")
		}
		if err := os.Rename(from, to); err != nil {
			return renamed, sdkerrors.IO("rename directories", err)
		}
		renamed = append(renamed, to)
	}
	return renamed, nil
}

// decodeText honours a UTF-16 or UTF-8 byte order mark and otherwise
// assumes UTF-8.
func decodeText(data []byte) (string, error) {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// encodeText writes localization files as UTF-16LE with a byte order mark,
// which is what the engine's localization loader reads.
func encodeText(text string, class FileClass) ([]byte, error) {
	if class != Localization {
		return []byte(text), nil
	}
	return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(text))
}
