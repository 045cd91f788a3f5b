package buildwatch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	sdkerrors "github.com/xcom-modding/xcom-devtools/internal/errors"
)

// Handler receives every event a session reports.
type Handler func(Event)

// EnsureLog creates an empty log file, and its directory, if missing.
func EnsureLog(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return sdkerrors.IO("ensure log", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return sdkerrors.IO("ensure log", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644) // #nosec G304
	if err != nil {
		return sdkerrors.IO("ensure log", err)
	}
	return f.Close()
}

// Watcher observes a session's log file. The log's directory is watched
// rather than the file itself so the watch survives the engine deleting and
// recreating the log.
type Watcher struct {
	session *Session
	fw      *fsnotify.Watcher
	logger  *slog.Logger
}

// NewWatcher ensures the log exists and starts watching it. Changes made
// after NewWatcher returns are observed by Wait.
func NewWatcher(s *Session) (*Watcher, error) {
	if err := EnsureLog(s.LogPath); err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, sdkerrors.IO("watch log", err)
	}
	if err := fw.Add(filepath.Dir(s.LogPath)); err != nil {
		fw.Close()
		return nil, sdkerrors.IOf("watch log", err, "%s", s.LogPath)
	}
	return &Watcher{
		session: s,
		fw:      fw,
		logger:  slog.Default().With("session", s.ID, "workspace", s.Workspace),
	}, nil
}

// Wait re-reads the log on every change, passes reported events to handle
// and returns the terminal event. The underlying watch is released on every
// return path.
func (w *Watcher) Wait(ctx context.Context, handle Handler) (Event, error) {
	defer w.Close()
	target := filepath.Clean(w.session.LogPath)
	for {
		select {
		case <-ctx.Done():
			return 0, sdkerrors.Cancelled("watch log", ctx.Err().Error())
		case e, ok := <-w.fw.Events:
			if !ok {
				return 0, sdkerrors.Cancelled("watch log", "watch closed")
			}
			if filepath.Clean(e.Name) != target || e.Op == fsnotify.Chmod {
				continue
			}
			data, err := os.ReadFile(target) // #nosec G304
			if err != nil {
				// the engine may recreate the log; keep waiting
				w.logger.Debug("log unreadable", "op", e.Op.String(), "err", err)
				continue
			}
			ev, ok := w.session.Observe(string(data))
			if !ok {
				continue
			}
			w.logger.Debug("build event", "event", ev.String())
			if handle != nil {
				handle(ev)
			}
			if ev.Terminal() {
				return ev, nil
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return 0, sdkerrors.Cancelled("watch log", "watch closed")
			}
			w.logger.Warn("log watch error", "err", err)
		}
	}
}

// Close releases the filesystem watch. It is safe to call more than once.
func (w *Watcher) Close() error {
	return w.fw.Close()
}
