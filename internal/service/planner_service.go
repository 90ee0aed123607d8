package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/aventureros/clubsync-api/internal/models"
	"github.com/aventureros/clubsync-api/pkg/calendar"
	appErrors "github.com/aventureros/clubsync-api/pkg/errors"
)

type remoteInserter interface {
	Insert(ctx context.Context, table string, rows interface{}, dest interface{}) error
}

// CreatePlanRequest is the leader's ahead-of-time plan for one date.
type CreatePlanRequest struct {
	ClassID             string   `json:"class_id" validate:"required"`
	SessionDate         string   `json:"session_date" validate:"required,datetime=2006-01-02"`
	RequirementID       string   `json:"requirement_id"`
	Lead                string   `json:"lead"`
	Materials           []string `json:"materials"`
	TeachingInstruction string   `json:"teaching_instruction" validate:"required"`
	TeachingNote        string   `json:"teaching_note"`
	PracticeInstruction string   `json:"practice_instruction" validate:"required"`
	PracticeNote        string   `json:"practice_note"`
}

// PlannerService authors future sessions directly against the remote
// backend. Plans reach the device later through prefetch; nothing is
// written locally here.
type PlannerService struct {
	remote    remoteInserter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPlannerService constructs the planner.
func NewPlannerService(remote remoteInserter, validate *validator.Validate, logger *zap.Logger) *PlannerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlannerService{remote: remote, validator: validate, logger: logger}
}

// CreatePlan creates the calendar session, then its execution plan keyed to
// the new session id.
func (s *PlannerService) CreatePlan(ctx context.Context, req CreatePlanRequest) (*models.RemoteSession, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid plan payload")
	}

	sessionRow := map[string]interface{}{
		"class_id":     req.ClassID,
		"session_date": req.SessionDate,
		"session_type": "Regular Meeting",
	}
	var created []models.RemoteSession
	if err := s.remote.Insert(ctx, tableSessions, []map[string]interface{}{sessionRow}, &created); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, appErrors.Remote(nil, "session insert returned no row")
	}
	session := created[0]

	materials := req.Materials
	if materials == nil {
		materials = []string{}
	}
	planRow := map[string]interface{}{
		"session_id":           session.ID,
		"lead":                 req.Lead,
		"materials":            materials,
		"teaching_instruction": req.TeachingInstruction,
		"teaching_note":        req.TeachingNote,
		"practice_instruction": req.PracticeInstruction,
		"practice_note":        req.PracticeNote,
	}
	if req.RequirementID != "" {
		planRow["requirement_id"] = req.RequirementID
	}
	if err := s.remote.Insert(ctx, tablePlans, []map[string]interface{}{planRow}, nil); err != nil {
		return nil, err
	}

	s.logger.Info("plan created", zap.String("class_id", req.ClassID), zap.String("date", req.SessionDate))
	return &session, nil
}

// MonthGrid returns the linear month matrix for calendar rendering.
func (s *PlannerService) MonthGrid(year int, month time.Month) []calendar.Day {
	return calendar.MonthGrid(year, month, time.Local)
}
