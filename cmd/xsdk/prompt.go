package main

import (
	"errors"
	"os"

	"github.com/erikgeiser/promptkit"
	"github.com/erikgeiser/promptkit/selection"
	"github.com/erikgeiser/promptkit/textinput"
	"golang.org/x/term"

	sdkerrors "github.com/xcom-modding/xcom-devtools/internal/errors"
)

// prompter asks the user to choose or type what a flag did not give.
type prompter interface {
	SelectTemplate(templates []string) (string, error)
	ModName(suggested string, validate func(string) error) (string, error)
	SelectPackage(packages []string) (string, error)
}

// terminalPrompter prompts on the terminal.
type terminalPrompter struct{}

func (terminalPrompter) SelectTemplate(templates []string) (string, error) {
	return choose("Select a template", templates)
}

func (terminalPrompter) SelectPackage(packages []string) (string, error) {
	return choose("Select UPK file to cook", packages)
}

func (terminalPrompter) ModName(suggested string, validate func(string) error) (string, error) {
	input := textinput.New("Name your mod")
	input.InitialValue = suggested
	input.Placeholder = "letters, digits, _ and - only"
	input.Validate = validate
	name, err := input.RunPrompt()
	if errors.Is(err, promptkit.ErrAborted) {
		return "", sdkerrors.Cancelled("prompt", "aborted")
	}
	return name, err
}

func choose(label string, choices []string) (string, error) {
	sp := selection.New(label, choices)
	sp.PageSize = 10
	choice, err := sp.RunPrompt()
	if errors.Is(err, promptkit.ErrAborted) {
		return "", sdkerrors.Cancelled("prompt", "aborted")
	}
	return choice, err
}

// interactive reports whether prompts can be shown.
func interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// prompts returns the app's prompter, if the session can prompt at all.
func (a *app) prompts() prompter {
	if a.prompter != nil {
		return a.prompter
	}
	if interactive() {
		return terminalPrompter{}
	}
	return nil
}
