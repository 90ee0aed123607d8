package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aventureros/clubsync-api/internal/models"
	appErrors "github.com/aventureros/clubsync-api/pkg/errors"
	"github.com/aventureros/clubsync-api/pkg/response"
)

type classReader interface {
	Get(ctx context.Context, id string) (*models.ClassProfile, error)
}

type childReader interface {
	ListActiveByClass(ctx context.Context, classID string) ([]models.Child, error)
}

type planReader interface {
	GetByClass(ctx context.Context, classID string) (*models.SessionPlan, error)
}

// ClassHandler serves the locally cached class snapshot: profile, roster
// and the upcoming session plan. Everything here reads the on-device store
// only; the remote backend is never touched.
type ClassHandler struct {
	classes  classReader
	roster   childReader
	plans    planReader
	identity identityResolver
}

// NewClassHandler constructs the handler.
func NewClassHandler(classes classReader, roster childReader, plans planReader, identity identityResolver) *ClassHandler {
	return &ClassHandler{classes: classes, roster: roster, plans: plans, identity: identity}
}

// classID resolves the tenant for the request: explicit query parameter
// first, then the hydrated identity.
func (h *ClassHandler) classID(c *gin.Context) (string, error) {
	if id := strings.TrimSpace(c.Query("class_id")); id != "" {
		return id, nil
	}
	return h.identity.Resolve(c.Request.Context())
}

// Profile godoc
// @Summary Cached class profile
// @Tags Class
// @Produce json
// @Param class_id query string false "Class ID, defaults to the hydrated identity"
// @Success 200 {object} response.Envelope
// @Router /class [get]
func (h *ClassHandler) Profile(c *gin.Context) {
	classID, err := h.classID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	profile, err := h.classes.Get(c.Request.Context(), classID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "class not cached locally, run prefetch first"))
			return
		}
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile)
}

// Roster godoc
// @Summary Cached active roster
// @Tags Class
// @Produce json
// @Param class_id query string false "Class ID, defaults to the hydrated identity"
// @Success 200 {object} response.Envelope
// @Router /roster [get]
func (h *ClassHandler) Roster(c *gin.Context) {
	classID, err := h.classID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	children, err := h.roster.ListActiveByClass(c.Request.Context(), classID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if children == nil {
		children = []models.Child{}
	}
	response.JSON(c, http.StatusOK, children)
}

// Plan godoc
// @Summary Cached upcoming session plan
// @Tags Class
// @Produce json
// @Param class_id query string false "Class ID, defaults to the hydrated identity"
// @Success 200 {object} response.Envelope
// @Router /plan [get]
func (h *ClassHandler) Plan(c *gin.Context) {
	classID, err := h.classID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	plan, err := h.plans.GetByClass(c.Request.Context(), classID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "no plan cached for class"))
			return
		}
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plan)
}
