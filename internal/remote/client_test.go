package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aventureros/clubsync-api/internal/models"
	"github.com/aventureros/clubsync-api/pkg/config"
	appErrors "github.com/aventureros/clubsync-api/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.RemoteConfig{
		URL:     server.URL,
		AnonKey: "test-anon-key",
		Timeout: 2 * time.Second,
	}, zap.NewNop())
}

func TestClientSelect(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/class_profiles", r.URL.Path)
		assert.Equal(t, "eq.C1", r.URL.Query().Get("id"))
		assert.Equal(t, "test-anon-key", r.Header.Get("apikey"))

		_ = json.NewEncoder(w).Encode([]models.ClassProfile{{ID: "C1", Name: "Foxes"}})
	})

	params := url.Values{}
	params.Set("id", "eq.C1")

	var profiles []models.ClassProfile
	require.NoError(t, client.Select(context.Background(), "class_profiles", params, &profiles))
	require.Len(t, profiles, 1)
	assert.Equal(t, "Foxes", profiles[0].Name)
}

func TestClientUpsertSendsConflictKey(t *testing.T) {
	var gotConflict, gotPrefer string
	var gotRows []models.RemoteProgressRecord

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotConflict = r.URL.Query().Get("on_conflict")
		gotPrefer = r.Header.Get("Prefer")
		_ = json.NewDecoder(r.Body).Decode(&gotRows)
		w.WriteHeader(http.StatusCreated)
	})

	rows := []models.RemoteProgressRecord{{ID: "r1", ChildID: "c1", ExecutionDate: "2026-08-29"}}
	require.NoError(t, client.Upsert(context.Background(), "progress_records", "id", rows))

	assert.Equal(t, "id", gotConflict)
	assert.Equal(t, "resolution=merge-duplicates", gotPrefer)
	require.Len(t, gotRows, 1)
	assert.Equal(t, "r1", gotRows[0].ID)
}

func TestClientRejectionIsRemoteFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"constraint violation"}`, http.StatusConflict)
	})

	err := client.Upsert(context.Background(), "progress_records", "id", []models.RemoteProgressRecord{{ID: "r1"}})
	require.Error(t, err)
	assert.True(t, appErrors.IsRemote(err))
}

func TestClientUnreachableIsRemoteFailure(t *testing.T) {
	client := NewClient(config.RemoteConfig{
		URL:     "http://127.0.0.1:1",
		AnonKey: "k",
		Timeout: 200 * time.Millisecond,
	}, zap.NewNop())

	var dest []models.ClassProfile
	err := client.Select(context.Background(), "class_profiles", nil, &dest)
	require.Error(t, err)
	assert.True(t, appErrors.IsRemote(err))
}

func TestClientGetSession(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		_ = json.NewEncoder(w).Encode(models.AuthSession{UserID: "u1", Email: "lead@club.example"})
	})

	session, err := client.GetSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", session.UserID)
}
