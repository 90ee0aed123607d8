package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aventureros/clubsync-api/internal/repository"
	appErrors "github.com/aventureros/clubsync-api/pkg/errors"
	"github.com/aventureros/clubsync-api/pkg/response"
)

type tenantClearer interface {
	Clear(ctx context.Context, classID string) error
}

type stateStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type backlogCounter interface {
	CountPending(ctx context.Context) (int, error)
}

// AuthHandler handles the device-side logout: the shared tablet changes
// hands between clubs, so logout wipes the whole tenant from the local
// store along with the cached credentials.
type AuthHandler struct {
	tenants  tenantClearer
	state    stateStore
	progress backlogCounter
	logger   *zap.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(tenants tenantClearer, state stateStore, progress backlogCounter, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{tenants: tenants, state: state, progress: progress, logger: logger}
}

type logoutRequest struct {
	ClassID string `json:"class_id"`
	Force   bool   `json:"force"`
}

// Logout godoc
// @Summary Log out and wipe the tenant from the local store
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body logoutRequest false "Optional explicit class id; force discards pending records"
// @Success 204
// @Failure 409 {object} response.Envelope "Pending records would be lost"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req logoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid logout payload"))
			return
		}
	}

	ctx := c.Request.Context()

	// Logout must work offline, so the tenant comes from the cached
	// identity, never a live lookup.
	classID := strings.TrimSpace(req.ClassID)
	if classID == "" {
		cached, err := h.state.Get(ctx, repository.StateKeyClassID)
		if err != nil {
			response.Error(c, err)
			return
		}
		if cached == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrNoIdentity, ""))
			return
		}
		classID = cached
	}

	// Pending records are the only unrecoverable data on the device.
	if !req.Force {
		pending, err := h.progress.CountPending(ctx)
		if err != nil {
			response.Error(c, err)
			return
		}
		if pending > 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrConflict, "pending records not yet uploaded, push first or force"))
			return
		}
	}

	if err := h.tenants.Clear(ctx, classID); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.state.Set(ctx, repository.StateKeyAccessToken, ""); err != nil {
		h.logger.Warn("failed to drop cached access token", zap.Error(err))
	}

	h.logger.Info("tenant cleared on logout", zap.String("class_id", classID))
	response.NoContent(c)
}
