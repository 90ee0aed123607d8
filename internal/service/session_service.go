package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aventureros/clubsync-api/internal/models"
	"github.com/aventureros/clubsync-api/pkg/calendar"
	appErrors "github.com/aventureros/clubsync-api/pkg/errors"
)

type progressWriter interface {
	Insert(ctx context.Context, record models.ProgressRecord) error
}

type pushTrigger interface {
	TriggerPush()
}

// ChildOutcome is one child's result for the closing session.
type ChildOutcome struct {
	ChildID          string `json:"child_id" validate:"required"`
	Present          bool   `json:"present"`
	BroughtMaterials bool   `json:"brought_materials"`
	EvidenceComplete bool   `json:"evidence_complete"`
}

// CloseSessionRequest holds the payload recorded when a session ends.
type CloseSessionRequest struct {
	ActivityID string         `json:"activity_id"`
	Date       string         `json:"date"`
	Outcomes   []ChildOutcome `json:"outcomes" validate:"required,min=1,dive"`
}

// SessionService records session outcomes as pending progress records.
type SessionService struct {
	progress  progressWriter
	validator *validator.Validate
	pusher    pushTrigger
	logger    *zap.Logger
	now       func() time.Time
}

// NewSessionService constructs the session close use-case.
func NewSessionService(progress progressWriter, validate *validator.Validate, pusher pushTrigger, logger *zap.Logger) *SessionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{progress: progress, validator: validate, pusher: pusher, logger: logger, now: time.Now}
}

// CloseSession writes one pending progress record per child. A second
// submission for the same child and date is rejected by the store's
// uniqueness constraint; records written so far stay, pending upload.
func (s *SessionService) CloseSession(ctx context.Context, req CloseSessionRequest) ([]models.ProgressRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session close payload")
	}

	date := req.Date
	if date == "" {
		date = calendar.LocalDate(s.now())
	}

	created := make([]models.ProgressRecord, 0, len(req.Outcomes))
	for _, outcome := range req.Outcomes {
		record := models.ProgressRecord{
			ID:             uuid.NewString(),
			ChildID:        outcome.ChildID,
			ActivityID:     req.ActivityID,
			ExecutionDate:  date,
			Attended:       outcome.Present,
			EvidenceStatus: evidenceStatus(outcome),
			SyncState:      models.SyncStatePending,
		}
		if err := s.progress.Insert(ctx, record); err != nil {
			return created, err
		}
		created = append(created, record)
	}

	s.logger.Info("session closed", zap.String("date", date), zap.Int("records", len(created)))

	// Best effort: sync now if we can, otherwise the records wait for the
	// next trigger.
	if s.pusher != nil {
		s.pusher.TriggerPush()
	}
	return created, nil
}

func evidenceStatus(outcome ChildOutcome) string {
	switch {
	case !outcome.Present:
		return models.EvidenceNone
	case outcome.EvidenceComplete:
		return models.EvidenceComplete
	case outcome.BroughtMaterials:
		return models.EvidenceMaterials
	default:
		return models.EvidenceNone
	}
}
