package buildwatch

import (
	"sync"

	"github.com/google/uuid"
)

// Event is something a session reports to the user.
type Event int

const (
	EventLaunched Event = iota
	EventSucceeded
	EventModuleNotBuilt
	EventFailed
)

func (e Event) String() string {
	switch e {
	case EventLaunched:
		return "launched"
	case EventSucceeded:
		return "succeeded"
	case EventModuleNotBuilt:
		return "module-not-built"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether e ends the session.
func (e Event) Terminal() bool {
	return e != EventLaunched
}

func eventFor(o Outcome) Event {
	switch o {
	case Succeeded:
		return EventSucceeded
	case ModuleNotBuilt:
		return EventModuleNotBuilt
	default:
		return EventFailed
	}
}

// Session is one build invocation. It remembers what it has already reported
// so repeated log changes never produce duplicate messages.
type Session struct {
	ID        string
	Workspace string
	LogPath   string

	lock     sync.Mutex
	launched bool
	reported bool
	last     Event
}

func NewSession(workspace, logPath string) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Workspace: workspace,
		LogPath:   logPath,
	}
}

// Observe classifies a snapshot of the log and returns the event to report,
// if any. Launched is reported at most once, and after a terminal event
// nothing more is reported.
func (s *Session) Observe(text string) (Event, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.reported {
		return 0, false
	}
	outcome := Classify(text, s.Workspace)
	if !outcome.Terminal() {
		if s.launched {
			return 0, false
		}
		s.launched = true
		return EventLaunched, true
	}
	s.reported = true
	s.last = eventFor(outcome)
	return s.last, true
}

// Done reports whether a terminal event has been reported, and which.
func (s *Session) Done() (Event, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.last, s.reported
}
