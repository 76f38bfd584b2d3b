package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildyourcv/resume/model"
	"buildyourcv/resume/style"
)

func parsed(name string) model.Resume {
	return model.Resume{
		Basics: model.Basics{Name: name},
		Work:   []model.Work{{Company: "Acme", Position: "Eng", StartDate: "2020-01"}},
	}
}

func TestNewSessionHoldsTemplate(t *testing.T) {
	s := New()
	assert.Equal(t, PhaseIdle, s.Phase)
	assert.Equal(t, model.DefaultTemplate(), s.Resume)
	assert.Equal(t, style.Default(), s.Styles)
}

func TestSuccessfulImportFlow(t *testing.T) {
	s := New()
	s = Reduce(s, UploadStarted{FileName: "cv.pdf"})
	assert.True(t, s.Busy())
	s = Reduce(s, TextExtracted{Text: "Jane Doe"})
	assert.Equal(t, PhaseExtracted, s.Phase)
	s = Reduce(s, StructuringStarted{})
	assert.Equal(t, PhaseStructuring, s.Phase)
	s = Reduce(s, ResumeInstalled{Resume: parsed("Jane")})

	assert.Equal(t, PhaseReady, s.Phase)
	assert.Equal(t, "Jane", s.Resume.Basics.Name)
	assert.Equal(t, "Jane Doe", s.Text)
	assert.Equal(t, 1, s.Revision)
	assert.NoError(t, s.Err)
}

func TestFailureRollsBack(t *testing.T) {
	start := WithResume(parsed("Before"), style.Default())
	failure := errors.New("service unavailable")

	s := Reduce(start, UploadStarted{})
	s = Reduce(s, TextExtracted{Text: "text"})
	s = Reduce(s, StructuringStarted{})
	s = Reduce(s, RequestFailed{Err: failure})

	assert.Equal(t, PhaseFailed, s.Phase)
	assert.Equal(t, start.Resume, s.Resume)
	assert.Equal(t, start.Revision, s.Revision)
	assert.ErrorIs(t, s.Err, failure)
}

func TestPastedTextFailureRollsBack(t *testing.T) {
	start := WithResume(parsed("Before"), style.Default())
	s := Reduce(start, TextExtracted{Text: "pasted"})
	s = Reduce(s, StructuringStarted{})
	s = Reduce(s, RequestFailed{Err: errors.New("boom")})
	assert.Equal(t, start.Resume, s.Resume)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	start := WithResume(parsed("Before"), style.Default())
	snapshot := start.clone()

	next := Reduce(start, ResumeEdited{Edit: func(r model.Resume) model.Resume {
		r.Work[0].Company = "Changed"
		r.Basics.Name = "After"
		return r
	}})
	next = Reduce(next, SectionToggled{Section: model.SectionWork})

	assert.Equal(t, snapshot, start)
	assert.Equal(t, "Changed", next.Resume.Work[0].Company)
	assert.Equal(t, 1, next.Revision)
	assert.False(t, style.IsVisible(next.Styles, model.SectionWork))
	assert.True(t, style.IsVisible(start.Styles, model.SectionWork))
}

func TestEditsIgnoredWhileBusy(t *testing.T) {
	s := Reduce(New(), UploadStarted{})
	edited := Reduce(s, ResumeEdited{Edit: func(r model.Resume) model.Resume {
		r.Basics.Name = "Edited"
		return r
	}})
	assert.Equal(t, s.Resume, edited.Resume)
	assert.Equal(t, s.Revision, edited.Revision)
}

func TestInstalledResumeIsNotAliased(t *testing.T) {
	r := parsed("Jane")
	s := Reduce(New(), ResumeInstalled{Resume: r})
	r.Work[0].Company = "Other"
	assert.Equal(t, "Acme", s.Resume.Work[0].Company)
}

func TestTemplateAndReset(t *testing.T) {
	s := WithResume(parsed("Jane"), style.Default())
	s = Reduce(s, SectionToggled{Section: model.SectionAwards})
	s = Reduce(s, TemplateLoaded{})
	assert.Equal(t, model.DefaultTemplate(), s.Resume)
	assert.False(t, style.IsVisible(s.Styles, model.SectionAwards))

	s = Reduce(s, Reset{})
	assert.Equal(t, PhaseIdle, s.Phase)
	assert.Equal(t, style.Default(), s.Styles)
	assert.Equal(t, 2, s.Revision)
}

func TestStylesChanged(t *testing.T) {
	cfg, err := style.ApplyPreset(style.Default(), "rose")
	require.NoError(t, err)
	s := Reduce(New(), StylesChanged{Styles: cfg})
	assert.Equal(t, "#e11d48", s.Styles.PrimaryColor)
}

func TestStoreDispatchConcurrent(t *testing.T) {
	store := NewStore(New())
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Dispatch(ResumeInstalled{Resume: parsed("Jane")})
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, store.State().Revision)

	got := store.State()
	got.Resume.Work[0].Company = "mutated"
	assert.Equal(t, "Acme", store.State().Resume.Work[0].Company)
}
