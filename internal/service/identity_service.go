package service

import (
	"context"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/aventureros/clubsync-api/internal/models"
	"github.com/aventureros/clubsync-api/internal/repository"
	"github.com/aventureros/clubsync-api/pkg/async"
	appErrors "github.com/aventureros/clubsync-api/pkg/errors"
)

const tableLeaderAssignments = "leader_assignments"

type sessionRemote interface {
	Select(ctx context.Context, table string, params url.Values, dest interface{}) error
	GetSession(ctx context.Context) (*models.AuthSession, error)
}

type deviceState interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// IdentityService resolves the class id the current leader is responsible
// for. The live remote lookup races a fixed deadline; when the deadline wins
// the lookup is abandoned and the last-known-good cached id takes over.
// Both pipelines require this id and neither is callable without it.
type IdentityService struct {
	remote  sessionRemote
	state   deviceState
	timeout time.Duration
	logger  *zap.Logger
}

// NewIdentityService constructs the hydration service.
func NewIdentityService(remote sessionRemote, state deviceState, timeout time.Duration, logger *zap.Logger) *IdentityService {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdentityService{remote: remote, state: state, timeout: timeout, logger: logger}
}

// Resolve returns the active class id, refreshing the cached copy whenever
// the live lookup wins its race.
func (s *IdentityService) Resolve(ctx context.Context) (string, error) {
	classID, err := async.Race(ctx, s.timeout, s.liveLookup)
	if err == nil && classID != "" {
		if setErr := s.state.Set(ctx, repository.StateKeyClassID, classID); setErr != nil {
			s.logger.Warn("failed to cache class id", zap.Error(setErr))
		}
		return classID, nil
	}

	s.logger.Info("live identity lookup unavailable, using cached id", zap.Error(err))

	cached, cacheErr := s.state.Get(ctx, repository.StateKeyClassID)
	if cacheErr != nil {
		return "", cacheErr
	}
	if cached == "" {
		return "", appErrors.Clone(appErrors.ErrNoIdentity, "")
	}
	return cached, nil
}

// liveLookup resolves the leader's user id, preferring the locally cached
// access token's subject claim over a round-trip to the auth endpoint, then
// queries the leader's class assignment.
func (s *IdentityService) liveLookup(ctx context.Context) (string, error) {
	userID := s.subjectFromCachedToken(ctx)
	if userID == "" {
		session, err := s.remote.GetSession(ctx)
		if err != nil {
			return "", err
		}
		userID = session.UserID
	}

	params := url.Values{}
	params.Set("user_id", "eq."+userID)
	params.Set("select", "class_id")
	params.Set("limit", "1")

	var assignments []struct {
		ClassID string `json:"class_id"`
	}
	if err := s.remote.Select(ctx, tableLeaderAssignments, params, &assignments); err != nil {
		return "", err
	}
	if len(assignments) == 0 {
		return "", appErrors.Clone(appErrors.ErrNoIdentity, "leader has no class assignment")
	}
	return assignments[0].ClassID, nil
}

// subjectFromCachedToken extracts the subject claim from the stored access
// token when the token is present and unexpired. The signature is not
// verified here: the token is only a hint for the user id, and the backend
// re-checks it on every authenticated request.
func (s *IdentityService) subjectFromCachedToken(ctx context.Context) string {
	raw, err := s.state.Get(ctx, repository.StateKeyAccessToken)
	if err != nil || raw == "" {
		return ""
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return ""
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return ""
	}
	return claims.Subject
}
