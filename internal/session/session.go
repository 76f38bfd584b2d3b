// Package session models one user's editing session as a value that is only
// changed by reducing events, so every step can be inspected and a failed
// request never leaves a half-installed resume behind.
package session

import (
	"buildyourcv/resume/model"
	"buildyourcv/resume/style"
)

// Phase is where the session is in the import flow.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseUploading   Phase = "uploading"
	PhaseExtracted   Phase = "extracted"
	PhaseStructuring Phase = "structuring"
	PhaseReady       Phase = "ready"
	PhaseFailed      Phase = "failed"
)

// State is immutable; Reduce returns a new value. Revision increases each
// time the installed resume changes.
type State struct {
	Phase    Phase
	Resume   model.Resume
	Styles   style.Config
	Text     string
	Err      error
	Revision int

	// stable is the resume to restore when an in-flight request fails.
	stable model.Resume
}

// New returns an idle session holding the default template and styles.
func New() State {
	tmpl := model.DefaultTemplate()
	return State{
		Phase:  PhaseIdle,
		Resume: tmpl,
		Styles: style.Default(),
		stable: model.Clone(tmpl),
	}
}

// WithResume returns an idle session holding r.
func WithResume(r model.Resume, styles style.Config) State {
	return State{
		Phase:  PhaseReady,
		Resume: model.Clone(r),
		Styles: styles,
		stable: model.Clone(r),
	}
}

// Busy reports whether a request is in flight.
func (s State) Busy() bool {
	return s.Phase == PhaseUploading || s.Phase == PhaseStructuring
}

func (s State) clone() State {
	out := s
	out.Resume = model.Clone(s.Resume)
	out.stable = model.Clone(s.stable)
	out.Styles.VisibleSections = append([]model.SectionID(nil), s.Styles.VisibleSections...)
	return out
}

// Event is a change applied by Reduce.
type Event interface {
	isEvent()
}

// UploadStarted marks the start of a file upload.
type UploadStarted struct {
	FileName string
}

// TextExtracted carries the plain text of an uploaded or pasted CV.
type TextExtracted struct {
	Text string
}

// StructuringStarted marks the request to the structuring service.
type StructuringStarted struct{}

// ResumeInstalled replaces the resume with a normalized one.
type ResumeInstalled struct {
	Resume model.Resume
}

// RequestFailed aborts the in-flight request and restores the prior resume.
type RequestFailed struct {
	Err error
}

// ResumeEdited applies a user edit. Edit receives a private copy.
type ResumeEdited struct {
	Edit func(model.Resume) model.Resume
}

// StylesChanged replaces the presentation settings.
type StylesChanged struct {
	Styles style.Config
}

// SectionToggled flips one section's visibility.
type SectionToggled struct {
	Section model.SectionID
}

// TemplateLoaded resets the resume to the built-in template.
type TemplateLoaded struct{}

// Reset returns to a fresh session.
type Reset struct{}

func (UploadStarted) isEvent()      {}
func (TextExtracted) isEvent()      {}
func (StructuringStarted) isEvent() {}
func (ResumeInstalled) isEvent()    {}
func (RequestFailed) isEvent()      {}
func (ResumeEdited) isEvent()       {}
func (StylesChanged) isEvent()      {}
func (SectionToggled) isEvent()     {}
func (TemplateLoaded) isEvent()     {}
func (Reset) isEvent()              {}

// Reduce applies ev to s. It is pure and never mutates s.
func Reduce(s State, ev Event) State {
	next := s.clone()

	switch e := ev.(type) {
	case UploadStarted:
		next.Phase = PhaseUploading
		next.Text = ""
		next.Err = nil
		next.stable = model.Clone(s.Resume)
	case TextExtracted:
		if !s.Busy() {
			next.stable = model.Clone(s.Resume)
		}
		next.Phase = PhaseExtracted
		next.Text = e.Text
		next.Err = nil
	case StructuringStarted:
		if s.Phase != PhaseExtracted && !s.Busy() {
			next.stable = model.Clone(s.Resume)
		}
		next.Phase = PhaseStructuring
		next.Err = nil
	case ResumeInstalled:
		next.Phase = PhaseReady
		next.Resume = model.Clone(e.Resume)
		next.stable = model.Clone(e.Resume)
		next.Err = nil
		next.Revision++
	case RequestFailed:
		next.Phase = PhaseFailed
		next.Resume = model.Clone(s.stable)
		next.Err = e.Err
	case ResumeEdited:
		if e.Edit == nil || s.Busy() {
			return next
		}
		next.Resume = model.Clone(e.Edit(model.Clone(s.Resume)))
		next.stable = model.Clone(next.Resume)
		next.Revision++
	case StylesChanged:
		next.Styles = e.Styles
		next.Styles.VisibleSections = append([]model.SectionID(nil), e.Styles.VisibleSections...)
	case SectionToggled:
		next.Styles = style.Toggle(s.Styles, e.Section)
	case TemplateLoaded:
		tmpl := model.DefaultTemplate()
		next.Phase = PhaseReady
		next.Resume = tmpl
		next.stable = model.Clone(tmpl)
		next.Text = ""
		next.Err = nil
		next.Revision++
	case Reset:
		fresh := New()
		fresh.Revision = s.Revision + 1
		return fresh
	}
	return next
}
