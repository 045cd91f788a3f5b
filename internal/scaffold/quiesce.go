package scaffold

import (
	"context"
	"log/slog"
	"time"

	"github.com/radovskyb/watcher"

	sdkerrors "github.com/xcom-modding/xcom-devtools/internal/errors"
)

// QuiesceOptions tune the wait for an external copy to finish.
type QuiesceOptions struct {
	Interval  time.Duration
	IdleTicks int
	Timeout   time.Duration
}

// DefaultQuiesceOptions waits for about a second of silence, at most two
// minutes.
func DefaultQuiesceOptions() QuiesceOptions {
	return QuiesceOptions{
		Interval:  100 * time.Millisecond,
		IdleTicks: 10,
		Timeout:   120 * time.Second,
	}
}

// WaitQuiescent returns once more than IdleTicks intervals have passed
// without a value on changes. Any change resets the count.
//
// This is best effort: it stands in for a completion signal that external
// copy tools do not give, and a tool stalled for longer than the idle window
// looks finished. The wait always ends by opts.Timeout, with a Timeout error.
func WaitQuiescent(ctx context.Context, changes <-chan struct{}, opts QuiesceOptions) error {
	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()
	deadline := time.NewTimer(opts.Timeout)
	defer deadline.Stop()

	idle := 0
	for {
		select {
		case <-ctx.Done():
			return sdkerrors.Cancelled("wait for copy", ctx.Err().Error())
		case <-deadline.C:
			return sdkerrors.Timeout("wait for copy", "files were still changing after "+opts.Timeout.String())
		case _, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			idle = 0
		case <-ticker.C:
			idle++
			if idle > opts.IdleTicks {
				return nil
			}
		}
	}
}

// DirWatch polls a directory tree and signals every change on one channel.
type DirWatch struct {
	w       *watcher.Watcher
	changes chan struct{}
}

// WatchDir starts polling dir recursively every interval.
func WatchDir(dir string, interval time.Duration) (*DirWatch, error) {
	w := watcher.New()
	if err := w.AddRecursive(dir); err != nil {
		return nil, sdkerrors.IOf("watch copy", err, "%s", dir)
	}
	d := &DirWatch{w: w, changes: make(chan struct{}, 1)}
	go d.forward()
	go func() {
		if err := w.Start(interval); err != nil {
			slog.Warn("copy watch stopped", "dir", dir, "err", err)
		}
	}()
	w.Wait()
	return d, nil
}

func (d *DirWatch) forward() {
	for {
		select {
		case e := <-d.w.Event:
			slog.Debug("copy progress", "op", e.Op.String(), "path", e.Path)
			select {
			case d.changes <- struct{}{}:
			default:
			}
		case err := <-d.w.Error:
			slog.Debug("copy watch error", "err", err)
		case <-d.w.Closed:
			return
		}
	}
}

// Changes signals at least once after every observed change.
func (d *DirWatch) Changes() <-chan struct{} {
	return d.changes
}

// Close stops polling and releases the watch.
func (d *DirWatch) Close() {
	d.w.Close()
}
