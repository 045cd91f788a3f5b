package sdk

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	sdkerrors "github.com/xcom-modding/xcom-devtools/internal/errors"
)

// CopyFile copies a single file. The destination is always owner-writable
// so read-only template files can be rewritten afterwards.
func CopyFile(src, dst string) error {
	in, err := os.Open(src) // #nosec G304
	if err != nil {
		return sdkerrors.IO("copy file", err)
	}
	defer in.Close()
	info, err := in.Stat()
	if err != nil {
		return sdkerrors.IO("copy file", err)
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm()|0200) // #nosec G304
	if err != nil {
		return sdkerrors.IO("copy file", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return sdkerrors.IO("copy file", err)
	}
	if err := out.Close(); err != nil {
		return sdkerrors.IO("copy file", err)
	}
	return nil
}

// CopyDir recursively copies src into dst, creating dst as needed.
func CopyDir(src, dst string) error {
	return filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return sdkerrors.IO("copy dir", err)
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return sdkerrors.IO("copy dir", err)
		}
		target := filepath.Join(dst, rel)
		switch {
		case d.IsDir():
			if err := os.MkdirAll(target, 0755); err != nil {
				return sdkerrors.IO("copy dir", err)
			}
			return nil
		case d.Type().IsRegular():
			return CopyFile(p, target)
		default:
			return nil
		}
	})
}

// CopyFiles copies only the regular files directly inside src.
func CopyFiles(src, dst string) ([]string, error) {
	entries, err := os.ReadDir(src)
	if err != nil {
		return nil, sdkerrors.IO("copy files", err)
	}
	if err := os.MkdirAll(dst, 0755); err != nil {
		return nil, sdkerrors.IO("copy files", err)
	}
	var copied []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if err := CopyFile(filepath.Join(src, e.Name()), filepath.Join(dst, e.Name())); err != nil {
			return copied, err
		}
		copied = append(copied, e.Name())
	}
	return copied, nil
}

// MoveTopLevelFiles moves the regular files directly inside src into dst.
// Nested directories are left where they are.
func MoveTopLevelFiles(src, dst string) ([]string, error) {
	entries, err := os.ReadDir(src)
	if err != nil {
		return nil, sdkerrors.IO("move files", err)
	}
	var moved []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		from := filepath.Join(src, e.Name())
		to := filepath.Join(dst, e.Name())
		if err := moveFile(from, to); err != nil {
			return moved, err
		}
		moved = append(moved, e.Name())
	}
	return moved, nil
}

func moveFile(from, to string) error {
	err := os.Rename(from, to)
	if err == nil {
		return nil
	}
	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) {
		return sdkerrors.IO("move file", err)
	}
	// rename cannot cross volumes
	if err := CopyFile(from, to); err != nil {
		return err
	}
	if err := os.Remove(from); err != nil {
		return sdkerrors.IO("move file", err)
	}
	return nil
}

// Exists reports whether p exists.
func Exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// IsDir reports whether p is an existing directory.
func IsDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
