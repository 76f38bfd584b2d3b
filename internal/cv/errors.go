package cv

import (
	"errors"
	"net/http"

	"buildyourcv/internal/extract"
	"buildyourcv/internal/structuring"
	"buildyourcv/resume/normalize"
)

var (
	ErrContentRequired = errors.New("Content is required")
	ErrFileRequired    = errors.New("file is required")
	ErrInvalidResume   = errors.New("resume is not a JSON object")
)

const manualEntryMessage = "Failed to parse CV. Please try pasting your text manually."

// apiError is the HTTP rendering of a service error.
type apiError struct {
	Status  int
	Code    string
	Message string
}

// classify maps a service error onto status, code and user-facing message.
// Input errors are 4xx, boundary errors 502, a missing provider 503.
func classify(err error) apiError {
	var parseErr *extract.ParseError
	switch {
	case errors.Is(err, extract.ErrFileTooLarge):
		return apiError{http.StatusBadRequest, "file_too_large", err.Error()}
	case errors.Is(err, extract.ErrUnsupportedFormat):
		return apiError{http.StatusBadRequest, "unsupported_format", err.Error()}
	case errors.Is(err, extract.ErrEmptyContent):
		return apiError{http.StatusBadRequest, "empty_content", err.Error()}
	case errors.As(err, &parseErr):
		return apiError{http.StatusUnprocessableEntity, "parse_failed", parseErr.Error()}
	case errors.Is(err, ErrContentRequired), errors.Is(err, structuring.ErrEmptyText):
		return apiError{http.StatusBadRequest, "validation_error", ErrContentRequired.Error()}
	case errors.Is(err, ErrFileRequired):
		return apiError{http.StatusBadRequest, "validation_error", err.Error()}
	case errors.Is(err, ErrInvalidResume):
		return apiError{http.StatusBadRequest, "invalid_resume", err.Error()}
	case errors.Is(err, structuring.ErrNotConfigured):
		return apiError{http.StatusServiceUnavailable, "not_configured", "The CV structuring service is not configured."}
	case errors.Is(err, structuring.ErrServiceUnavailable):
		return apiError{http.StatusBadGateway, "service_unavailable", manualEntryMessage}
	case errors.Is(err, structuring.ErrServiceRejected):
		return apiError{http.StatusBadGateway, "service_rejected", manualEntryMessage}
	case errors.Is(err, structuring.ErrUnparsableReply):
		return apiError{http.StatusBadGateway, "unparsable_reply", manualEntryMessage}
	case errors.Is(err, normalize.ErrMalformedStructure):
		return apiError{http.StatusBadGateway, "malformed_structure", manualEntryMessage}
	default:
		return apiError{http.StatusInternalServerError, "internal_error", "Unexpected server error"}
	}
}
