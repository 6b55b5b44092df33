package feedback

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hiring-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the feedback service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches feedback routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/candidates/:id/feedback", h.recordFeedback)
	rg.GET("/candidates/:id/feedback", h.listFeedback)
}

type recordFeedbackRequest struct {
	HRScore *float64 `json:"hrScore" binding:"required"`
	Note    string   `json:"note"`
}

func (h *Handler) recordFeedback(c *gin.Context) {
	candidateID := c.Param("id")

	var req recordFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "hrScore is required", nil)
		return
	}

	entry, err := h.Svc.Record(c.Request.Context(), candidateID, *req.HRScore, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidScore):
			respond.Error(c, http.StatusBadRequest, "validation_error", "hrScore must be in [0, 1]", nil)
		case errors.Is(err, ErrUnknownCandidate):
			respond.Error(c, http.StatusNotFound, "not_found", "candidate not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to record feedback", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, entry)
}

func (h *Handler) listFeedback(c *gin.Context) {
	entries, err := h.Svc.ListByCandidate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list feedback", nil)
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	respond.OK(c, entries)
}
