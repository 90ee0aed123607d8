package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aventureros/clubsync-api/internal/service"
	appErrors "github.com/aventureros/clubsync-api/pkg/errors"
	"github.com/aventureros/clubsync-api/pkg/response"
)

type prefetcher interface {
	Prefetch(ctx context.Context, classID string) (*service.PrefetchResult, error)
}

type pusher interface {
	Push(ctx context.Context) (service.PushResult, error)
	PendingCount(ctx context.Context) (int, error)
}

type identityResolver interface {
	Resolve(ctx context.Context) (string, error)
}

type connectivityReader interface {
	Online() bool
}

// SyncHandler exposes the pull and push pipelines over HTTP.
type SyncHandler struct {
	prefetch prefetcher
	sync     pusher
	identity identityResolver
	online   connectivityReader
}

// NewSyncHandler constructs the handler.
func NewSyncHandler(prefetch prefetcher, sync pusher, identity identityResolver, online connectivityReader) *SyncHandler {
	return &SyncHandler{prefetch: prefetch, sync: sync, identity: identity, online: online}
}

type prefetchRequest struct {
	ClassID string `json:"class_id"`
}

// Prefetch godoc
// @Summary Pull the class snapshot from the remote backend
// @Tags Sync
// @Accept json
// @Produce json
// @Param payload body prefetchRequest false "Optional explicit class id"
// @Success 200 {object} response.Envelope
// @Router /sync/prefetch [post]
func (h *SyncHandler) Prefetch(c *gin.Context) {
	var req prefetchRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid prefetch payload"))
			return
		}
	}

	classID := strings.TrimSpace(req.ClassID)
	if classID == "" {
		resolved, err := h.identity.Resolve(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		classID = resolved
	}

	result, err := h.prefetch.Prefetch(c.Request.Context(), classID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Push godoc
// @Summary Upload pending progress records
// @Tags Sync
// @Produce json
// @Success 200 {object} response.Envelope
// @Success 202 {object} response.Envelope "Remote unreachable, records stay pending"
// @Router /sync/push [post]
func (h *SyncHandler) Push(c *gin.Context) {
	result, err := h.sync.Push(c.Request.Context())
	if err != nil {
		// An unreachable remote is not a client error: the records stay
		// pending and a later trigger retries them.
		if appErrors.IsRemote(err) {
			response.JSON(c, http.StatusAccepted, result, map[string]interface{}{"deferred": true})
			return
		}
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

type syncStatus struct {
	Online  bool `json:"online"`
	Pending int  `json:"pending"`
}

// Status godoc
// @Summary Connectivity and backlog status
// @Tags Sync
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /status [get]
func (h *SyncHandler) Status(c *gin.Context) {
	pending, err := h.sync.PendingCount(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, syncStatus{Online: h.online.Online(), Pending: pending})
}
