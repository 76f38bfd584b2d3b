// Package cv serves the CV import pipeline: file extraction, structuring,
// normalization, projection and artifact export.
package cv

import (
	"context"
	"errors"
	"strings"
	"time"

	"buildyourcv/internal/extract"
	"buildyourcv/internal/session"
	"buildyourcv/internal/shared/metrics"
	"buildyourcv/internal/shared/telemetry"
	"buildyourcv/internal/structuring"
	"buildyourcv/resume/model"
	"buildyourcv/resume/normalize"
	"buildyourcv/resume/projection"
	"buildyourcv/resume/style"
)

// Structurer turns CV text into an untrusted candidate value.
type Structurer interface {
	Request(ctx context.Context, text string) (any, error)
}

// Service contains the CV business logic. It holds no per-user state.
type Service struct {
	Structurer Structurer
}

// NewService constructs a Service.
func NewService(structurer Structurer) *Service {
	return &Service{Structurer: structurer}
}

// Result is a normalized resume plus the repairs it needed.
type Result struct {
	Resume model.Resume
	Report normalize.Report
}

// ExtractText returns the plain text of an uploaded file.
func (s *Service) ExtractText(ctx context.Context, data []byte, fileName string) (string, error) {
	format, _ := extract.DetectFormat(fileName)
	text, err := extract.ExtractText(ctx, data, fileName)
	metrics.IncExtraction(formatLabel(format), extractionOutcome(err))
	if err != nil {
		telemetry.Warn("cv.extract.failed", map[string]any{
			"file_format": formatLabel(format),
			"size_bytes":  len(data),
			"error":       err.Error(),
		})
		return "", err
	}
	return text, nil
}

// Structure sends text to the structuring service and normalizes the reply.
func (s *Service) Structure(ctx context.Context, text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrContentRequired
	}
	if s.Structurer == nil {
		return Result{}, structuring.ErrNotConfigured
	}
	start := time.Now()
	candidate, err := s.Structurer.Request(ctx, text)
	if err != nil {
		return Result{}, err
	}
	r, report, err := normalizeCandidate(candidate)
	if err != nil {
		return Result{}, err
	}
	telemetry.Debug("cv.structure.done", map[string]any{
		"duration_ms": metrics.SinceMillis(start),
		"repairs":     len(report.Repairs),
	})
	return Result{Resume: r, Report: report}, nil
}

// Normalize repairs a raw candidate body.
func (s *Service) Normalize(raw []byte) (Result, error) {
	r, report, err := normalize.NormalizeWithReport(raw)
	recordNormalization(report, err)
	if err != nil {
		return Result{}, err
	}
	return Result{Resume: r, Report: report}, nil
}

// PipelineInput is one import request. Exactly one of File or Text is used;
// File wins when both are set. Current is the resume to keep on failure.
type PipelineInput struct {
	FileName string
	File     []byte
	Text     string
	Current  model.Resume
	Styles   style.Config
}

// Pipeline runs extraction, structuring and normalization as one session.
// The returned state always holds an installable resume: the new one on
// success, the prior one after a failure.
func (s *Service) Pipeline(ctx context.Context, in PipelineInput) (session.State, normalize.Report, error) {
	store := session.NewStore(session.WithResume(in.Current, in.Styles))

	text := in.Text
	if in.File != nil {
		store.Dispatch(session.UploadStarted{FileName: in.FileName})
		extracted, err := s.ExtractText(ctx, in.File, in.FileName)
		if err != nil {
			return store.Dispatch(session.RequestFailed{Err: err}), normalize.Report{}, err
		}
		text = extracted
	} else if strings.TrimSpace(text) == "" {
		return store.State(), normalize.Report{}, ErrContentRequired
	}
	store.Dispatch(session.TextExtracted{Text: text})

	store.Dispatch(session.StructuringStarted{})
	res, err := s.Structure(ctx, text)
	if err != nil {
		return store.Dispatch(session.RequestFailed{Err: err}), normalize.Report{}, err
	}
	return store.Dispatch(session.ResumeInstalled{Resume: res.Resume}), res.Report, nil
}

// Project returns the subset of r shown under cfg.
func (s *Service) Project(r model.Resume, cfg style.Config) model.Resume {
	return projection.Project(r, style.EffectiveVisible(cfg))
}

// Export encodes r as the downloadable artifact.
func (s *Service) Export(r model.Resume) ([]byte, string, error) {
	data, err := model.Encode(r)
	if err != nil {
		return nil, "", err
	}
	return data, model.ArtifactFileName(r), nil
}

// Import reads a previously exported artifact through the normalizer.
func (s *Service) Import(data []byte) (Result, error) {
	if len(data) > extract.MaxUploadBytes {
		return Result{}, extract.ErrFileTooLarge
	}
	return s.Normalize(data)
}

// DecodeResume normalizes a client-held resume. An absent value yields the
// default template.
func DecodeResume(raw []byte) (model.Resume, error) {
	if trimmed := strings.TrimSpace(string(raw)); trimmed == "" || trimmed == "null" {
		return model.DefaultTemplate(), nil
	}
	r, err := normalize.Normalize(raw)
	if err != nil {
		return model.Resume{}, ErrInvalidResume
	}
	return r, nil
}

func normalizeCandidate(candidate any) (model.Resume, normalize.Report, error) {
	r, report, err := normalize.NormalizeValue(candidate)
	recordNormalization(report, err)
	return r, report, err
}

func recordNormalization(report normalize.Report, err error) {
	switch {
	case err != nil:
		metrics.IncNormalization("malformed", 0)
	case report.Empty():
		metrics.IncNormalization("clean", 0)
	default:
		metrics.IncNormalization("repaired", len(report.Repairs))
		telemetry.Debug("cv.normalize.repairs", map[string]any{
			"repairs": len(report.Repairs),
			"counts":  report.Counts(),
		})
	}
}

func formatLabel(f extract.Format) string {
	if f == "" {
		return "unknown"
	}
	return string(f)
}

func extractionOutcome(err error) string {
	var parseErr *extract.ParseError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, extract.ErrFileTooLarge):
		return "too_large"
	case errors.Is(err, extract.ErrUnsupportedFormat):
		return "unsupported"
	case errors.Is(err, extract.ErrEmptyContent):
		return "empty"
	case errors.As(err, &parseErr):
		return "parse_failed"
	default:
		return "error"
	}
}
