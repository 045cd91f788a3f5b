package scaffold

import (
	"context"
	"path/filepath"

	"golang.org/x/exp/slices"

	sdkerrors "github.com/xcom-modding/xcom-devtools/internal/errors"
	"github.com/xcom-modding/xcom-devtools/internal/guard"
	"github.com/xcom-modding/xcom-devtools/internal/sdk"
	"github.com/xcom-modding/xcom-devtools/internal/status"
)

// Phase is a step of instantiating a template. Jobs only move forward.
type Phase int

const (
	PhaseSelectTemplate Phase = iota
	PhaseNameInput
	PhaseCopying
	PhaseQuiescent
	PhaseRewriting
	PhaseContentRelocate
	PhaseDone
	PhaseCancelled
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseSelectTemplate:
		return "select-template"
	case PhaseNameInput:
		return "name-input"
	case PhaseCopying:
		return "copying"
	case PhaseQuiescent:
		return "quiescent"
	case PhaseRewriting:
		return "rewriting"
	case PhaseContentRelocate:
		return "content-relocate"
	case PhaseDone:
		return "done"
	case PhaseCancelled:
		return "cancelled"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Job is one template instantiation.
type Job struct {
	TemplatePath string
	DestPath     string
	ModName      string
	// Files is every file discovered in the copied tree, before renaming.
	Files []FileRef

	Phase Phase
	// FailedIn and Err are set when Phase is PhaseFailed.
	FailedIn Phase
	Err      error
}

// Prompter asks the user for what the command line did not provide. An
// empty answer, or a Cancelled error, abandons the job.
type Prompter interface {
	SelectTemplate(templates []string) (string, error)
	ModName(suggested string, validate func(string) error) (string, error)
}

// Instantiator drives jobs through their phases, reporting progress at every
// phase boundary. A failed phase stops the job; earlier phases are not
// rolled back.
type Instantiator struct {
	layout   sdk.Layout
	prompter Prompter
	copier   Copier
	status   status.Reporter
	jobs     guard.Dir
}

func NewInstantiator(layout sdk.Layout, prompter Prompter, copier Copier, reporter status.Reporter) *Instantiator {
	if copier == nil {
		copier = DirectCopier{}
	}
	return &Instantiator{
		layout:   layout,
		prompter: prompter,
		copier:   copier,
		status:   reporter,
		jobs:     guard.Dir{Path: layout.SrcDir(), Suffix: ".create.lock"},
	}
}

// Plan selects the template and the mod name, prompting for whichever is
// empty. The returned job is never nil; it is cancelled or failed when err
// is not nil.
func (in *Instantiator) Plan(template, name string) (*Job, error) {
	job := &Job{Phase: PhaseSelectTemplate}

	templates, err := ListTemplates(in.layout.TemplatesDir())
	if err != nil {
		return job, in.fail(job, err)
	}
	if template == "" {
		if len(templates) == 0 {
			return job, in.fail(job, sdkerrors.Validation("select template", "no templates in "+in.layout.TemplatesDir()))
		}
		template, err = in.ask(func() (string, error) { return in.prompter.SelectTemplate(templates) })
		if err != nil {
			return job, in.abandon(job, ErrNoTemplate, err)
		}
	} else if !slices.Contains(templates, template) {
		return job, in.fail(job, sdkerrors.Validation("select template", "unknown template "+template))
	}
	in.status.Info("Selected: %s", template)
	job.TemplatePath = filepath.Join(in.layout.TemplatesDir(), template)

	job.Phase = PhaseNameInput
	validate := func(s string) error { return ValidateName(in.layout.SrcDir(), s) }
	if name == "" {
		name, err = in.ask(func() (string, error) { return in.prompter.ModName(SuggestName(template), validate) })
		if err != nil {
			return job, in.abandon(job, ErrNoName, err)
		}
	}
	if err := validate(name); err != nil {
		return job, in.fail(job, err)
	}
	in.status.Info("Using name: %s", name)
	job.ModName = name
	job.DestPath = in.layout.ModSrcDir(name)
	return job, nil
}

// ask runs a prompt, mapping an empty answer to a cancellation.
func (in *Instantiator) ask(prompt func() (string, error)) (string, error) {
	if in.prompter == nil {
		return "", sdkerrors.Validation("prompt", "no interactive prompt available")
	}
	answer, err := prompt()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return "", sdkerrors.Cancelled("prompt", "no answer")
	}
	return answer, nil
}

func (in *Instantiator) abandon(job *Job, cancelled *sdkerrors.Error, cause error) error {
	if !sdkerrors.HasKind(cause, sdkerrors.KindCancelled) {
		return in.fail(job, cause)
	}
	job.Phase = PhaseCancelled
	job.Err = cancelled
	in.status.Info("%s", cancelled.Message)
	return cancelled
}

func (in *Instantiator) fail(job *Job, err error) error {
	job.FailedIn = job.Phase
	job.Phase = PhaseFailed
	job.Err = err
	in.status.Error("Create failed while %s: %v", job.FailedIn, err)
	return err
}

// Run copies, personalises and relocates a planned job.
func (in *Instantiator) Run(ctx context.Context, job *Job) error {
	release, ok, err := in.jobs.TryAcquire(job.ModName)
	if err != nil {
		return in.fail(job, err)
	}
	if !ok {
		return in.fail(job, sdkerrors.Validation("create", job.ModName+" is already being created"))
	}
	defer release()

	job.Phase = PhaseCopying
	in.status.Info("Preparing your workspace ...")
	if err := in.copier.Copy(ctx, job.TemplatePath, job.DestPath); err != nil {
		return in.fail(job, err)
	}

	job.Phase = PhaseQuiescent
	in.status.Info("Workspace copy done, updating template files ...")

	job.Phase = PhaseRewriting
	files, err := Discover(job.DestPath)
	if err != nil {
		return in.fail(job, err)
	}
	job.Files = files
	rw := Rewriter{ModName: job.ModName, SDKPath: in.layout.SDKPath}
	for _, f := range files {
		if _, err := rw.Rewrite(f); err != nil {
			return in.fail(job, err)
		}
	}
	if _, err := rw.RenameDirs(job.DestPath); err != nil {
		return in.fail(job, err)
	}

	if sdk.IsDir(filepath.Join(job.DestPath, ContentDir)) {
		job.Phase = PhaseContentRelocate
		in.status.Info("Copying content files ...")
		if _, err := RelocateContent(job.DestPath, in.layout.ContentModsDir(), job.ModName); err != nil {
			return in.fail(job, err)
		}
	}

	job.Phase = PhaseDone
	in.status.Info("Workspace is ready: %s", job.DestPath)
	return nil
}
