package buildwatch

import (
	sdkerrors "github.com/xcom-modding/xcom-devtools/internal/errors"
	"github.com/xcom-modding/xcom-devtools/internal/guard"
)

// ErrBusy is returned when a build is already being watched for a workspace.
var ErrBusy = sdkerrors.Validation("build", "a build is already running for this workspace")

// Registry allows one live session per workspace across processes. Claims
// are lock files in the directory given to NewRegistry, normally the one
// holding the launch log.
type Registry struct {
	locks guard.Dir
}

func NewRegistry(lockDir string) *Registry {
	return &Registry{locks: guard.Dir{Path: lockDir, Suffix: ".build.lock"}}
}

// Start creates a session for workspace, or fails with ErrBusy while another
// session for it has not been finished.
func (r *Registry) Start(workspace, logPath string) (*Session, func(), error) {
	release, ok, err := r.locks.TryAcquire(workspace)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, ErrBusy
	}
	return NewSession(workspace, logPath), release, nil
}

// Live reports whether a session for workspace is running.
func (r *Registry) Live(workspace string) bool {
	return r.locks.Held(workspace)
}
