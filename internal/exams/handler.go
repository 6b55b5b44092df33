package exams

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hiring-backend/internal/candidates"
	"hiring-backend/internal/jobs"
	"hiring-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the exams service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches exam routes to the router group. The take/:token
// routes are candidate-facing and authenticated by the token alone.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs/:id/exams", h.createExam)
	rg.POST("/exams/:id/assign", h.assignExam)
	rg.GET("/exams/take/:token", h.fetchExam)
	rg.POST("/exams/take/:token", h.submitExam)
}

type createExamRequest struct {
	Questions []string `json:"questions" binding:"required"`
}

type assignExamRequest struct {
	CandidateID string `json:"candidateId" binding:"required"`
}

type submitExamRequest struct {
	Answers []string `json:"answers" binding:"required"`
}

func (h *Handler) createExam(c *gin.Context) {
	var req createExamRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Questions) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "questions are required", nil)
		return
	}

	exam, err := h.Svc.CreateExam(c.Request.Context(), c.Param("id"), req.Questions)
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create exam", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, exam)
}

func (h *Handler) assignExam(c *gin.Context) {
	var req assignExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "candidateId is required", nil)
		return
	}

	a, err := h.Svc.Assign(c.Request.Context(), c.Param("id"), req.CandidateID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "exam not found", nil)
		case errors.Is(err, candidates.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "candidate not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to assign exam", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"assignmentId": a.ID,
		"accessToken":  a.AccessToken,
		"status":       a.Status,
	})
}

func (h *Handler) fetchExam(c *gin.Context) {
	sheet, err := h.Svc.Fetch(c.Request.Context(), c.Param("token"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "exam not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch exam", nil)
		}
		return
	}
	respond.OK(c, sheet)
}

func (h *Handler) submitExam(c *gin.Context) {
	var req submitExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "answers are required", nil)
		return
	}

	a, err := h.Svc.Submit(c.Request.Context(), c.Param("token"), req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "exam not found", nil)
		case errors.Is(err, ErrAlreadySubmitted):
			respond.Error(c, http.StatusConflict, "already_submitted", "exam has already been submitted", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit exam", nil)
		}
		return
	}
	respond.OK(c, a)
}
