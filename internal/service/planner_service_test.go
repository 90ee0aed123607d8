package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aventureros/clubsync-api/internal/models"
	appErrors "github.com/aventureros/clubsync-api/pkg/errors"
)

type fakeRemoteInserter struct {
	tables      []string
	rows        []interface{}
	sessionID   string
	emptyReturn bool
	err         error
}

func (f *fakeRemoteInserter) Insert(_ context.Context, table string, rows interface{}, dest interface{}) error {
	f.tables = append(f.tables, table)
	f.rows = append(f.rows, rows)
	if f.err != nil {
		return f.err
	}
	if sessions, ok := dest.(*[]models.RemoteSession); ok && !f.emptyReturn {
		*sessions = []models.RemoteSession{{ID: f.sessionID, SessionDate: "2026-09-12"}}
	}
	return nil
}

func validPlanRequest() CreatePlanRequest {
	return CreatePlanRequest{
		ClassID:             "C1",
		SessionDate:         "2026-09-12",
		Lead:                "Marta",
		TeachingInstruction: "Teach the bowline",
		PracticeInstruction: "Practice in pairs",
	}
}

func TestPlannerServiceCreatePlan(t *testing.T) {
	remote := &fakeRemoteInserter{sessionID: "sess-42"}
	svc := NewPlannerService(remote, nil, zap.NewNop())

	session, err := svc.CreatePlan(context.Background(), validPlanRequest())
	require.NoError(t, err)
	assert.Equal(t, "sess-42", session.ID)

	require.Equal(t, []string{tableSessions, tablePlans}, remote.tables)

	sessionRows := remote.rows[0].([]map[string]interface{})
	require.Len(t, sessionRows, 1)
	assert.Equal(t, "C1", sessionRows[0]["class_id"])
	assert.Equal(t, "2026-09-12", sessionRows[0]["session_date"])

	planRows := remote.rows[1].([]map[string]interface{})
	require.Len(t, planRows, 1)
	assert.Equal(t, "sess-42", planRows[0]["session_id"])
	assert.Equal(t, []string{}, planRows[0]["materials"])
	_, hasRequirement := planRows[0]["requirement_id"]
	assert.False(t, hasRequirement, "empty requirement id must be omitted")
}

func TestPlannerServiceCreatePlanWithRequirement(t *testing.T) {
	remote := &fakeRemoteInserter{sessionID: "sess-42"}
	svc := NewPlannerService(remote, nil, zap.NewNop())

	req := validPlanRequest()
	req.RequirementID = "req-9"
	req.Materials = []string{"rope"}

	_, err := svc.CreatePlan(context.Background(), req)
	require.NoError(t, err)

	planRows := remote.rows[1].([]map[string]interface{})
	assert.Equal(t, "req-9", planRows[0]["requirement_id"])
	assert.Equal(t, []string{"rope"}, planRows[0]["materials"])
}

func TestPlannerServiceCreatePlanValidation(t *testing.T) {
	remote := &fakeRemoteInserter{sessionID: "sess-42"}
	svc := NewPlannerService(remote, nil, zap.NewNop())

	req := validPlanRequest()
	req.SessionDate = "12/09/2026"

	_, err := svc.CreatePlan(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, remote.tables)
}

func TestPlannerServiceCreatePlanNoSessionRow(t *testing.T) {
	remote := &fakeRemoteInserter{emptyReturn: true}
	svc := NewPlannerService(remote, nil, zap.NewNop())

	_, err := svc.CreatePlan(context.Background(), validPlanRequest())
	require.Error(t, err)
	assert.True(t, appErrors.IsRemote(err))
	assert.Equal(t, []string{tableSessions}, remote.tables)
}
