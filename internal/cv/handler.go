package cv

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"buildyourcv/internal/extract"
	"buildyourcv/internal/session"
	"buildyourcv/internal/shared/server/middleware"
	"buildyourcv/internal/shared/server/respond"
	"buildyourcv/internal/shared/util"
	"buildyourcv/resume/model"
	"buildyourcv/resume/normalize"
	"buildyourcv/resume/style"
)

// multipart bodies carry the file plus form overhead.
const maxRequestSize = extract.MaxUploadBytes + 1<<20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches CV routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/template", h.template)
	rg.GET("/styles", h.styles)
	rg.POST("/parse-file", h.parseFile)
	rg.POST("/parse-cv", h.parseCV)
	rg.POST("/pipeline", h.pipeline)
	rg.POST("/normalize", h.normalize)
	rg.POST("/project", h.project)
	rg.POST("/export", h.export)
	rg.POST("/import", h.importArtifact)
}

func (h *Handler) template(c *gin.Context) {
	respond.Data(c, model.DefaultTemplate())
}

func (h *Handler) styles(c *gin.Context) {
	respond.OK(c, stylesResponse{
		Defaults: style.Default(),
		Fonts:    style.Fonts,
		Presets:  style.Presets,
		Sections: style.Sections,
	})
}

func (h *Handler) parseFile(c *gin.Context) {
	name, data, err := readUpload(c)
	if err != nil {
		fail(c, err)
		return
	}
	if format, ferr := extract.DetectFormat(name); ferr == nil {
		c.Set(middleware.LogFileFormat, string(format))
	}

	text, err := h.Svc.ExtractText(c.Request.Context(), data, name)
	if err != nil {
		fail(c, err)
		return
	}
	respond.OK(c, textResponse{Text: text})
}

func (h *Handler) parseCV(c *gin.Context) {
	var req parseCVRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		fail(c, ErrContentRequired)
		return
	}

	res, err := h.Svc.Structure(c.Request.Context(), req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	c.Set(middleware.LogRepairs, len(res.Report.Repairs))
	respond.Data(c, res.Resume)
}

func (h *Handler) pipeline(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestSize)
	if err := c.Request.ParseMultipartForm(maxRequestSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		fail(c, bodyError(err))
		return
	}

	current, err := DecodeResume([]byte(c.Request.FormValue("resume")))
	if err != nil {
		fail(c, err)
		return
	}
	in := PipelineInput{
		Text:    c.Request.FormValue("text"),
		Current: current,
		Styles:  style.Default(),
	}
	if form := c.Request.MultipartForm; form != nil && len(form.File["file"]) > 0 {
		name, data, err := readUpload(c)
		if err != nil {
			failPipeline(c, err, current, session.PhaseFailed)
			return
		}
		in.FileName, in.File = name, data
		if format, ferr := extract.DetectFormat(name); ferr == nil {
			c.Set(middleware.LogFileFormat, string(format))
		}
	}

	state, report, err := h.Svc.Pipeline(c.Request.Context(), in)
	if err != nil {
		failPipeline(c, err, state.Resume, state.Phase)
		return
	}
	c.Set(middleware.LogPhase, string(state.Phase))
	c.Set(middleware.LogRepairs, len(report.Repairs))
	respond.OK(c, pipelineResponse{
		Data:     state.Resume,
		Text:     state.Text,
		Phase:    string(state.Phase),
		Revision: state.Revision,
	})
}

func (h *Handler) normalize(c *gin.Context) {
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestSize))
	if err != nil {
		fail(c, bodyError(err))
		return
	}
	res, err := h.Svc.Normalize(raw)
	if err != nil {
		failMalformed(c, err)
		return
	}
	c.Set(middleware.LogRepairs, len(res.Report.Repairs))
	respond.Data(c, res.Resume)
}

func (h *Handler) project(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	r, err := DecodeResume(req.Resume)
	if err != nil {
		fail(c, err)
		return
	}

	cfg := style.Default()
	switch {
	case req.Styles != nil:
		if err := style.Validate(*req.Styles); err != nil {
			var ve *style.ValidationError
			if errors.As(err, &ve) {
				respond.Error(c, http.StatusBadRequest, "invalid_styles", "invalid style settings", ve.Errors)
				return
			}
			respond.Error(c, http.StatusBadRequest, "invalid_styles", err.Error(), nil)
			return
		}
		cfg = *req.Styles
	case req.VisibleSections != nil:
		cfg.VisibleSections = model.ParseSectionIDs(req.VisibleSections)
	}
	respond.Data(c, h.Svc.Project(r, cfg))
}

func (h *Handler) export(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Resume) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume is required", nil)
		return
	}
	r, err := DecodeResume(req.Resume)
	if err != nil {
		fail(c, err)
		return
	}
	data, fileName, err := h.Svc.Export(r)
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "application/json", data)
}

func (h *Handler) importArtifact(c *gin.Context) {
	_, data, err := readUpload(c)
	if err != nil {
		fail(c, err)
		return
	}
	res, err := h.Svc.Import(data)
	if err != nil {
		failMalformed(c, err)
		return
	}
	c.Set(middleware.LogRepairs, len(res.Report.Repairs))
	respond.Data(c, res.Resume)
}

// readUpload reads the multipart "file" field, enforcing the size ceiling
// before the content is parsed.
// failPipeline reports a pipeline error together with the resume the client
// should keep showing.
func failPipeline(c *gin.Context, err error, resume model.Resume, phase session.Phase) {
	c.Set(middleware.LogPhase, string(phase))
	e := classify(err)
	respond.Error(c, e.Status, e.Code, e.Message, failureDetails{
		Resume: resume,
		Phase:  string(phase),
	})
}

func readUpload(c *gin.Context) (string, []byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestSize)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", nil, extract.ErrFileTooLarge
		}
		return "", nil, ErrFileRequired
	}
	if fileHeader.Size > extract.MaxUploadBytes {
		return "", nil, extract.ErrFileTooLarge
	}
	name, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		return "", nil, extract.ErrUnsupportedFormat
	}
	data, err := readFile(fileHeader)
	if err != nil {
		return "", nil, err
	}
	return name, data, nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, ErrFileRequired
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, extract.MaxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > extract.MaxUploadBytes {
		return nil, extract.ErrFileTooLarge
	}
	return data, nil
}

func bodyError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return extract.ErrFileTooLarge
	}
	return ErrFileRequired
}

func fail(c *gin.Context, err error) {
	e := classify(err)
	respond.Error(c, e.Status, e.Code, e.Message, nil)
}

// failMalformed reports a non-object candidate as unprocessable input.
func failMalformed(c *gin.Context, err error) {
	if errors.Is(err, normalize.ErrMalformedStructure) {
		respond.Error(c, http.StatusUnprocessableEntity, "malformed_structure", err.Error(), nil)
		return
	}
	fail(c, err)
}
