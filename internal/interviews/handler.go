package interviews

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hiring-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the approval gate.
type Handler struct {
	Gate *Service
}

// NewHandler constructs a Handler.
func NewHandler(gate *Service) *Handler {
	return &Handler{Gate: gate}
}

// RegisterRoutes attaches proposal routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/proposals/pending", h.listPending)
	rg.GET("/proposals/:id", h.getProposal)
	rg.POST("/proposals/:id/approve", h.approveProposal)
	rg.POST("/proposals/:id/reject", h.rejectProposal)
}

func (h *Handler) listPending(c *gin.Context) {
	proposals, err := h.Gate.ListPending(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list pending proposals", nil)
		return
	}

	resp := make([]proposalResponse, 0, len(proposals))
	for _, p := range proposals {
		resp = append(resp, toProposalResponse(p))
	}
	respond.OK(c, resp)
}

func (h *Handler) getProposal(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "proposal id is required", nil)
		return
	}

	p, err := h.Gate.Get(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "proposal not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch proposal", nil)
		}
		return
	}
	respond.OK(c, toProposalResponse(p))
}

func (h *Handler) approveProposal(c *gin.Context) {
	h.decide(c, h.Gate.Approve)
}

func (h *Handler) rejectProposal(c *gin.Context) {
	h.decide(c, h.Gate.Reject)
}

func (h *Handler) decide(c *gin.Context, decision func(ctx context.Context, id string) (Proposal, error)) {
	id := c.Param("id")
	if id == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "proposal id is required", nil)
		return
	}

	p, err := decision(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "proposal not found", nil)
		case errors.Is(err, ErrAlreadyDecided):
			respond.Error(c, http.StatusConflict, "already_decided", "proposal has already been decided", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to decide proposal", nil)
		}
		return
	}
	respond.OK(c, toProposalResponse(p))
}
