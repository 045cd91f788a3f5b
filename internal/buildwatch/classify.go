// Package buildwatch follows the SDK's launch log while a script compile runs
// and reports the build's outcome exactly once.
//
// The commandlet gives no exit status we can trust, so the outcome is read
// from three markers in the log: the make commandlet starting, the commandlet
// finishing without errors, and the mod's own package being compiled.
package buildwatch

import "strings"

const (
	StartMarker  = "Executing Class UnrealEd.MakeCommandlet"
	FinishMarker = "Log: Success - 0 error(s)"
	ModulePrefix = "----"
)

// Outcome is the classification of one snapshot of the log.
type Outcome int

const (
	NotStarted Outcome = iota
	Succeeded
	ModuleNotBuilt
	Failed
)

func (o Outcome) String() string {
	switch o {
	case NotStarted:
		return "not-started"
	case Succeeded:
		return "succeeded"
	case ModuleNotBuilt:
		return "module-not-built"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the outcome ends the watch.
func (o Outcome) Terminal() bool {
	return o != NotStarted
}

// ModuleMarker is the line fragment the compiler prints for module.
func ModuleMarker(module string) string {
	return ModulePrefix + module
}

// Classify inspects the full text of the log.
func Classify(text, module string) Outcome {
	if !strings.Contains(text, StartMarker) {
		return NotStarted
	}
	if !strings.Contains(text, FinishMarker) {
		return Failed
	}
	if !strings.Contains(text, ModuleMarker(module)) {
		return ModuleNotBuilt
	}
	return Succeeded
}
