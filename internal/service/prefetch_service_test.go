package service

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aventureros/clubsync-api/internal/models"
	appErrors "github.com/aventureros/clubsync-api/pkg/errors"
)

type fakePrefetchRemote struct {
	profiles []models.ClassProfile
	children []models.Child
	sessions []models.RemoteSession
	plans    []models.RemotePlan
	errs     map[string]error
	calls    []string
	params   map[string]url.Values
}

func (f *fakePrefetchRemote) Select(_ context.Context, table string, params url.Values, dest interface{}) error {
	f.calls = append(f.calls, table)
	if f.params == nil {
		f.params = make(map[string]url.Values)
	}
	f.params[table] = params
	if err := f.errs[table]; err != nil {
		return err
	}
	switch d := dest.(type) {
	case *[]models.ClassProfile:
		*d = f.profiles
	case *[]models.Child:
		*d = f.children
	case *[]models.RemoteSession:
		*d = f.sessions
	case *[]models.RemotePlan:
		*d = f.plans
	}
	return nil
}

type mockClassWriter struct {
	put []models.ClassProfile
	err error
}

func (m *mockClassWriter) Put(_ context.Context, profile models.ClassProfile) error {
	if m.err != nil {
		return m.err
	}
	m.put = append(m.put, profile)
	return nil
}

type mockChildWriter struct {
	batches [][]models.Child
}

func (m *mockChildWriter) BulkPut(_ context.Context, children []models.Child) error {
	m.batches = append(m.batches, children)
	return nil
}

type mockPlanWriter struct {
	classIDs []string
	replaced []models.SessionPlan
}

func (m *mockPlanWriter) Replace(_ context.Context, classID string, plan models.SessionPlan) error {
	m.classIDs = append(m.classIDs, classID)
	m.replaced = append(m.replaced, plan)
	return nil
}

func newPrefetchFixture(remote *fakePrefetchRemote) (*PrefetchService, *mockClassWriter, *mockChildWriter, *mockPlanWriter) {
	classes := &mockClassWriter{}
	roster := &mockChildWriter{}
	plans := &mockPlanWriter{}
	svc := NewPrefetchService(remote, classes, roster, plans, nil, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 8, 29, 16, 30, 0, 0, time.Local) }
	return svc, classes, roster, plans
}

func TestPrefetchServiceFullPull(t *testing.T) {
	remote := &fakePrefetchRemote{
		profiles: []models.ClassProfile{{ID: "C1", Name: "Exploradores", TargetAge: 8}},
		children: []models.Child{
			{ID: "ch-1", ClassID: "C1", FullName: "Ana", Active: true},
			{ID: "ch-2", ClassID: "C1", FullName: "Bruno", Active: true},
			{ID: "ch-3", ClassID: "C1", FullName: "Carla", Active: true},
		},
		sessions: []models.RemoteSession{{ID: "sess-9", ClassID: "C1", SessionDate: "2026-09-05"}},
		plans: []models.RemotePlan{{
			ID:                  "plan-1",
			SessionID:           "sess-9",
			Lead:                "Marta",
			Materials:           []string{"rope", "compass"},
			TeachingInstruction: "Teach the bowline",
			Requirement:         json.RawMessage(`{"title":"Knots"}`),
		}},
	}
	svc, classes, roster, plans := newPrefetchFixture(remote)

	result, err := svc.Prefetch(context.Background(), "C1")
	require.NoError(t, err)
	assert.Equal(t, "C1", result.ClassID)
	assert.Equal(t, "Exploradores", result.ClassName)
	assert.Equal(t, 3, result.Children)
	assert.True(t, result.PlanCached)

	require.Len(t, classes.put, 1)
	assert.Equal(t, "Exploradores", classes.put[0].Name)
	require.Len(t, roster.batches, 1)
	assert.Len(t, roster.batches[0], 3)

	require.Len(t, plans.replaced, 1)
	assert.Equal(t, []string{"C1"}, plans.classIDs)
	plan := plans.replaced[0]
	assert.Equal(t, "plan-1", plan.ID)
	assert.Equal(t, "2026-09-05", plan.SessionDate)
	require.NotNil(t, plan.Title)
	assert.Equal(t, "Knots", *plan.Title)
	assert.Equal(t, []string{"rope", "compass"}, plan.Materials())

	// The session lookup starts from the device's local calendar date.
	assert.Equal(t, "gte.2026-08-29", remote.params[tableSessions].Get("session_date"))
	assert.Equal(t, "session_date.asc", remote.params[tableSessions].Get("order"))
	assert.Equal(t, "*,requirement_catalog(title)", remote.params[tablePlans].Get("select"))
}

func TestPrefetchServiceNoFutureSessionIsSuccess(t *testing.T) {
	remote := &fakePrefetchRemote{
		profiles: []models.ClassProfile{{ID: "C1", Name: "Exploradores"}},
		children: []models.Child{{ID: "ch-1", ClassID: "C1", FullName: "Ana", Active: true}},
	}
	svc, classes, roster, plans := newPrefetchFixture(remote)

	result, err := svc.Prefetch(context.Background(), "C1")
	require.NoError(t, err)
	assert.False(t, result.PlanCached)
	assert.Equal(t, 1, result.Children)

	assert.Len(t, classes.put, 1)
	assert.Len(t, roster.batches, 1)
	assert.Empty(t, plans.replaced)
	assert.NotContains(t, remote.calls, tablePlans)
}

func TestPrefetchServiceProfileFailureAbortsBeforeWrites(t *testing.T) {
	remote := &fakePrefetchRemote{
		errs: map[string]error{tableClassProfiles: appErrors.Remote(nil, "remote backend failure")},
	}
	svc, classes, roster, plans := newPrefetchFixture(remote)

	result, err := svc.Prefetch(context.Background(), "C1")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, appErrors.IsRemote(err))

	assert.Empty(t, classes.put)
	assert.Empty(t, roster.batches)
	assert.Empty(t, plans.replaced)
	assert.Equal(t, []string{tableClassProfiles}, remote.calls)
}

func TestPrefetchServiceUnknownClass(t *testing.T) {
	remote := &fakePrefetchRemote{}
	svc, classes, _, _ := newPrefetchFixture(remote)

	_, err := svc.Prefetch(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Empty(t, classes.put)
}
