package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/aventureros/clubsync-api/internal/models"
	"github.com/aventureros/clubsync-api/internal/service"
	appErrors "github.com/aventureros/clubsync-api/pkg/errors"
	"github.com/aventureros/clubsync-api/pkg/response"
)

type sessionCloser interface {
	CloseSession(ctx context.Context, req service.CloseSessionRequest) ([]models.ProgressRecord, error)
}

// SessionHandler records session outcomes.
type SessionHandler struct {
	sessions sessionCloser
}

// NewSessionHandler constructs the handler.
func NewSessionHandler(sessions sessionCloser) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Close godoc
// @Summary Close a session and record per-child outcomes
// @Tags Sessions
// @Accept json
// @Produce json
// @Param payload body service.CloseSessionRequest true "Session outcomes"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope "Outcome already recorded for a child on this date"
// @Router /sessions/close [post]
func (h *SessionHandler) Close(c *gin.Context) {
	var req service.CloseSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid session close payload"))
		return
	}

	created, err := h.sessions.CloseSession(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}
