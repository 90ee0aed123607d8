package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aventureros/clubsync-api/internal/models"
	"github.com/aventureros/clubsync-api/internal/service"
	"github.com/aventureros/clubsync-api/pkg/calendar"
	appErrors "github.com/aventureros/clubsync-api/pkg/errors"
	"github.com/aventureros/clubsync-api/pkg/response"
)

type planCreator interface {
	CreatePlan(ctx context.Context, req service.CreatePlanRequest) (*models.RemoteSession, error)
	MonthGrid(year int, month time.Month) []calendar.Day
}

// PlannerHandler authors future session plans against the remote backend.
type PlannerHandler struct {
	planner planCreator
}

// NewPlannerHandler constructs the handler.
func NewPlannerHandler(planner planCreator) *PlannerHandler {
	return &PlannerHandler{planner: planner}
}

// Create godoc
// @Summary Author a future session plan
// @Tags Planner
// @Accept json
// @Produce json
// @Param payload body service.CreatePlanRequest true "Plan"
// @Success 201 {object} response.Envelope
// @Router /plans [post]
func (h *PlannerHandler) Create(c *gin.Context) {
	var req service.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid plan payload"))
		return
	}

	session, err := h.planner.CreatePlan(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, session)
}

type monthDay struct {
	Date *string `json:"date"`
}

// Month godoc
// @Summary Linear month grid for planner rendering
// @Tags Planner
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} response.Envelope
// @Router /planner/month [get]
func (h *PlannerHandler) Month(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "year is required"))
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "month must be 1-12"))
		return
	}

	grid := h.planner.MonthGrid(year, time.Month(month))
	days := make([]monthDay, len(grid))
	for i, day := range grid {
		if day.Date != nil {
			formatted := calendar.LocalDate(*day.Date)
			days[i].Date = &formatted
		}
	}
	response.JSON(c, http.StatusOK, days)
}
