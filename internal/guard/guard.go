// Package guard provides keyed mutual exclusion for long-running jobs. Keys
// are claimed with lock files, so separate xsdk processes working on the
// same SDK see each other's claims.
package guard

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	sdkerrors "github.com/xcom-modding/xcom-devtools/internal/errors"
)

// UnreadableLockTimeout is how long a lock file without a readable PID is
// honoured. The owner writes its PID right after creating the file.
const UnreadableLockTimeout = time.Minute

// Dir claims keys with lock files named ".<key><Suffix>" inside Path.
type Dir struct {
	Path   string
	Suffix string
}

// LockPath is the lock file for key.
func (d Dir) LockPath(key string) string {
	return filepath.Join(d.Path, "."+key+d.Suffix)
}

// TryAcquire claims key. It returns false if a running process, this one
// included, holds it. A lock left behind by a process that has exited is
// taken over. The release func removes the lock and is safe to call twice.
func (d Dir) TryAcquire(key string) (func(), bool, error) {
	if err := os.MkdirAll(d.Path, 0755); err != nil {
		return nil, false, sdkerrors.IOf("acquire lock", err, "create %s", d.Path)
	}
	path := d.LockPath(key)
	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			_, werr := fmt.Fprintf(f, "%d", os.Getpid())
			if err := errors.Join(werr, f.Close()); err != nil {
				_ = os.Remove(path)
				return nil, false, sdkerrors.IOf("acquire lock", err, "write %s", path)
			}
			var once sync.Once
			return func() { once.Do(func() { _ = os.Remove(path) }) }, true, nil
		}
		if !os.IsExist(err) {
			return nil, false, sdkerrors.IOf("acquire lock", err, "create %s", path)
		}
		if !stale(path) {
			return nil, false, nil
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, false, sdkerrors.IOf("acquire lock", err, "remove stale %s", path)
		}
	}
	return nil, false, nil
}

// Held reports whether a running process holds key.
func (d Dir) Held(key string) bool {
	path := d.LockPath(key)
	if _, err := os.Stat(path); err != nil {
		return false
	}
	return !stale(path)
}

// stale reports whether the lock at path belongs to nobody.
func stale(path string) bool {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return os.IsNotExist(err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		info, err := os.Stat(path)
		return err == nil && time.Since(info.ModTime()) > UnreadableLockTimeout
	}
	return !alive(pid)
}

func alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	if pid == os.Getpid() {
		return true
	}
	p, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	defer p.Release()
	// FindProcess opens the process on Windows and fails if it has exited.
	if runtime.GOOS == "windows" {
		return true
	}
	err = p.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}
