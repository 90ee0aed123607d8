package service

import (
	"context"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aventureros/clubsync-api/internal/models"
	"github.com/aventureros/clubsync-api/pkg/calendar"
	appErrors "github.com/aventureros/clubsync-api/pkg/errors"
)

// Remote tables the pull pipeline reads.
const (
	tableClassProfiles = "class_profiles"
	tableChildren      = "children"
	tableSessions      = "calendar_sessions"
	tablePlans         = "execution_plans"
)

type remoteReader interface {
	Select(ctx context.Context, table string, params url.Values, dest interface{}) error
}

type classWriter interface {
	Put(ctx context.Context, profile models.ClassProfile) error
}

type childWriter interface {
	BulkPut(ctx context.Context, children []models.Child) error
}

type planWriter interface {
	Replace(ctx context.Context, classID string, plan models.SessionPlan) error
}

// PrefetchService pulls a consistent local snapshot for one class: identity,
// active roster and the nearest future session plan.
type PrefetchService struct {
	remote  remoteReader
	classes classWriter
	roster  childWriter
	plans   planWriter
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time

	// Purge-then-insert of the plan cache is not safe under overlapping
	// runs, so runs are serialised per class id.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewPrefetchService constructs the pull pipeline.
func NewPrefetchService(remote remoteReader, classes classWriter, roster childWriter, plans planWriter, metrics *MetricsService, logger *zap.Logger) *PrefetchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrefetchService{
		remote:  remote,
		classes: classes,
		roster:  roster,
		plans:   plans,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
		locks:   make(map[string]*sync.Mutex),
	}
}

// PrefetchResult summarises a successful pull.
type PrefetchResult struct {
	ClassID    string `json:"class_id"`
	ClassName  string `json:"class_name"`
	Children   int    `json:"children"`
	PlanCached bool   `json:"plan_cached"`
}

// Prefetch runs the pull pipeline for classID. Identity failure aborts the
// whole run; a class with no future session is a success with no plan.
// Writes already committed before a later failure are left in place.
func (s *PrefetchService) Prefetch(ctx context.Context, classID string) (*PrefetchResult, error) {
	lock := s.classLock(classID)
	lock.Lock()
	defer lock.Unlock()

	start := s.now()
	result, err := s.prefetch(ctx, classID)
	s.metrics.ObservePrefetch(s.now().Sub(start), err == nil)
	if err != nil {
		s.logger.Warn("prefetch failed", zap.String("class_id", classID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("prefetch complete",
		zap.String("class_id", classID),
		zap.String("class", result.ClassName),
		zap.Int("children", result.Children),
		zap.Bool("plan_cached", result.PlanCached),
	)
	return result, nil
}

func (s *PrefetchService) prefetch(ctx context.Context, classID string) (*PrefetchResult, error) {
	// 1. Class identity. No roster without it.
	params := url.Values{}
	params.Set("id", "eq."+classID)
	params.Set("limit", "1")

	var profiles []models.ClassProfile
	if err := s.remote.Select(ctx, tableClassProfiles, params, &profiles); err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found on remote")
	}
	profile := profiles[0]

	// 2. Active roster, strictly this class.
	params = url.Values{}
	params.Set("class_id", "eq."+classID)
	params.Set("active", "eq.true")

	var children []models.Child
	if err := s.remote.Select(ctx, tableChildren, params, &children); err != nil {
		return nil, err
	}

	// 3. Profile before roster: the UI themes itself off the profile the
	// moment roster rows start appearing.
	if err := s.classes.Put(ctx, profile); err != nil {
		return nil, err
	}
	if err := s.roster.BulkPut(ctx, children); err != nil {
		return nil, err
	}

	result := &PrefetchResult{ClassID: classID, ClassName: profile.Name, Children: len(children)}

	// 4. "Today" as a local calendar date, never UTC midnight.
	today := calendar.LocalDate(s.now())

	// 5. Nearest future session; absence is not an error.
	params = url.Values{}
	params.Set("class_id", "eq."+classID)
	params.Set("session_date", "gte."+today)
	params.Set("order", "session_date.asc")
	params.Set("limit", "1")

	var sessions []models.RemoteSession
	if err := s.remote.Select(ctx, tableSessions, params, &sessions); err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return result, nil
	}
	session := sessions[0]

	// 6. The session's plan with its joined catalog title.
	params = url.Values{}
	params.Set("session_id", "eq."+session.ID)
	params.Set("select", "*,requirement_catalog(title)")
	params.Set("limit", "1")

	var remotePlans []models.RemotePlan
	if err := s.remote.Select(ctx, tablePlans, params, &remotePlans); err != nil {
		return nil, err
	}
	if len(remotePlans) == 0 {
		return result, nil
	}
	remotePlan := remotePlans[0]

	// 7. Purge-then-insert keeps at most one cached plan per class.
	plan := models.SessionPlan{
		ID:                  remotePlan.ID,
		ClassID:             classID,
		SessionDate:         session.SessionDate,
		Title:               remotePlan.Title(),
		TeachingInstruction: remotePlan.TeachingInstruction,
		TeachingNote:        remotePlan.TeachingNote,
		PracticeInstruction: remotePlan.PracticeInstruction,
		PracticeNote:        remotePlan.PracticeNote,
		Lead:                remotePlan.Lead,
	}
	plan.SetMaterials(remotePlan.Materials)

	if err := s.plans.Replace(ctx, classID, plan); err != nil {
		return nil, err
	}
	result.PlanCached = true
	return result, nil
}

func (s *PrefetchService) classLock(classID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[classID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[classID] = lock
	}
	return lock
}
