package buildwatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	startLine  = "[0001.23] Log: Executing Class UnrealEd.MakeCommandlet\n"
	finishLine = "[0042.00] Log: Success - 0 error(s), 0 warning(s)\n"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected Outcome
	}{
		{"empty", "", NotStarted},
		{"engine booting", "Log: Log file open\n", NotStarted},
		{"finish without start", finishLine + "----MyMod\n", NotStarted},
		{"started only", startLine, Failed},
		{"started with module but no finish", startLine + "----MyMod\n", Failed},
		{"finished without module", startLine + "----Core\n" + finishLine, ModuleNotBuilt},
		{"finished with module", startLine + "----Core\n----MyMod - Release\n" + finishLine, Succeeded},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Classify(tc.text, "MyMod"))
		})
	}
}

func TestClassifyModuleMarkerIsPrefixed(t *testing.T) {
	text := startLine + "Compiling MyMod\n" + finishLine
	assert.Equal(t, ModuleNotBuilt, Classify(text, "MyMod"))
	assert.Equal(t, "----MyMod", ModuleMarker("MyMod"))
}

func TestOutcomeString(t *testing.T) {
	testCases := []struct {
		outcome  Outcome
		expected string
		terminal bool
	}{
		{NotStarted, "not-started", false},
		{Succeeded, "succeeded", true},
		{ModuleNotBuilt, "module-not-built", true},
		{Failed, "failed", true},
	}
	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.outcome.String())
			assert.Equal(t, tc.terminal, tc.outcome.Terminal())
		})
	}
}
