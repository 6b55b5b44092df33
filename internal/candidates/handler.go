package candidates

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"hiring-backend/internal/embedding"
	"hiring-backend/internal/extract"
	"hiring-backend/internal/jobs"
	"hiring-backend/internal/scoring"
	"hiring-backend/internal/shared/server/respond"
)

const maxResumeBytes = 10 << 20

// Handler wires HTTP handlers to the candidate pipeline.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches candidate routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs/:id/candidates", h.submitCandidate)
	rg.GET("/jobs/:id/candidates", h.listCandidates)
	rg.GET("/jobs/:id/shortlist", h.shortlist)
	rg.POST("/candidates/:id/evaluate", h.evaluateCandidate)
	rg.GET("/candidates/:id/status", h.candidateStatus)
}

// submitCandidate accepts either a multipart form with a resume file (PDF or
// plain text) or a JSON body carrying the resume text directly.
func (h *Handler) submitCandidate(c *gin.Context) {
	jobID := c.Param("id")
	if jobID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "job id is required", nil)
		return
	}

	var name, email, resumeText string
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		var ok bool
		name, email, resumeText, ok = h.readMultipart(c)
		if !ok {
			return
		}
	} else {
		var req submitCandidateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "name, email and resumeText are required", nil)
			return
		}
		name, email, resumeText = req.Name, req.Email, req.ResumeText
	}

	candidate, err := h.Svc.Submit(c.Request.Context(), jobID, name, email, resumeText)
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		case errors.Is(err, scoring.ErrDimensionMismatch):
			respond.Error(c, http.StatusInternalServerError, "dimension_mismatch", "embedding dimensions do not match", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit candidate", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, toCandidateResponse(candidate))
}

func (h *Handler) readMultipart(c *gin.Context) (name, email, resumeText string, ok bool) {
	name = c.PostForm("name")
	email = c.PostForm("email")
	if name == "" || email == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "name and email are required", nil)
		return "", "", "", false
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume file is required", nil)
		return "", "", "", false
	}
	if fileHeader.Size > maxResumeBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "resume exceeds the 10MB limit", nil)
		return "", "", "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read resume", nil)
		return "", "", "", false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxResumeBytes))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read resume", nil)
		return "", "", "", false
	}

	text, err := extract.ResumeText(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"), fileHeader.Filename)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupported) {
			respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_format", "resume must be a PDF or plain text", nil)
		} else {
			respond.Error(c, http.StatusBadRequest, "extract_failed", "failed to extract resume text", nil)
		}
		return "", "", "", false
	}
	return name, email, text, true
}

func (h *Handler) listCandidates(c *gin.Context) {
	jobID := c.Param("id")
	all, err := h.Svc.ListByJob(c.Request.Context(), jobID)
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list candidates", nil)
		}
		return
	}

	resp := make([]candidateResponse, 0, len(all))
	for _, cand := range all {
		resp = append(resp, toCandidateResponse(cand))
	}
	respond.OK(c, resp)
}

func (h *Handler) shortlist(c *gin.Context) {
	jobID := c.Param("id")

	minScore := h.Svc.Policy.Threshold
	if v := c.Query("minScore"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed < 0 || parsed > 1 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "minScore must be a number in [0, 1]", nil)
			return
		}
		minScore = parsed
	}

	list, err := h.Svc.Shortlist(c.Request.Context(), jobID, minScore)
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to build shortlist", nil)
		}
		return
	}

	resp := make([]candidateResponse, 0, len(list))
	for _, cand := range list {
		resp = append(resp, toCandidateResponse(cand))
	}
	respond.OK(c, resp)
}

func (h *Handler) evaluateCandidate(c *gin.Context) {
	id := c.Param("id")
	candidate, err := h.Svc.Evaluate(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "candidate not found", nil)
		case errors.Is(err, embedding.ErrUnavailable):
			respond.Error(c, http.StatusServiceUnavailable, "embedding_unavailable", "embedding service is unavailable, try again later", nil)
		case errors.Is(err, scoring.ErrDimensionMismatch):
			respond.Error(c, http.StatusInternalServerError, "dimension_mismatch", "embedding dimensions do not match", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to evaluate candidate", nil)
		}
		return
	}
	respond.OK(c, toCandidateResponse(candidate))
}

func (h *Handler) candidateStatus(c *gin.Context) {
	id := c.Param("id")
	status, err := h.Svc.Status(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "candidate not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch candidate status", nil)
		}
		return
	}
	respond.OK(c, toStatusResponse(status))
}
