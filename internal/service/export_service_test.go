package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aventureros/clubsync-api/internal/models"
)

type mockRosterReader struct {
	children []models.Child
}

func (m *mockRosterReader) ListActiveByClass(_ context.Context, _ string) ([]models.Child, error) {
	return m.children, nil
}

type mockProgressReader struct {
	records []models.ProgressRecord
}

func (m *mockProgressReader) ListByDate(_ context.Context, _ string) ([]models.ProgressRecord, error) {
	return m.records, nil
}

func newExportFixture() *ExportService {
	roster := &mockRosterReader{children: []models.Child{
		{ID: "ch-1", ClassID: "C1", FullName: "Ana", Active: true},
		{ID: "ch-2", ClassID: "C1", FullName: "Bruno", Active: true},
	}}
	progress := &mockProgressReader{records: []models.ProgressRecord{{
		ID:             "r1",
		ChildID:        "ch-1",
		ExecutionDate:  "2026-08-29",
		Attended:       true,
		EvidenceStatus: models.EvidenceComplete,
		SyncState:      models.SyncStateSynced,
	}}}
	return NewExportService(roster, progress, zap.NewNop())
}

func TestExportServiceAttendanceCSV(t *testing.T) {
	svc := newExportFixture()

	out, err := svc.AttendanceCSV(context.Background(), "C1", "2026-08-29")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Child,Date,Attended,Evidence,Synced", lines[0])
	assert.Equal(t, "Ana,2026-08-29,yes,complete,yes", lines[1])
	// A child with no record for the date still appears on the sheet.
	assert.Equal(t, "Bruno,2026-08-29,no,none,", lines[2])
}

func TestExportServiceAttendancePDF(t *testing.T) {
	svc := newExportFixture()

	out, err := svc.AttendancePDF(context.Background(), "C1", "2026-08-29")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}
