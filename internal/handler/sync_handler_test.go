package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aventureros/clubsync-api/internal/service"
	appErrors "github.com/aventureros/clubsync-api/pkg/errors"
)

type stubPrefetcher struct {
	result  *service.PrefetchResult
	err     error
	classID string
}

func (s *stubPrefetcher) Prefetch(_ context.Context, classID string) (*service.PrefetchResult, error) {
	s.classID = classID
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubPusher struct {
	result  service.PushResult
	err     error
	pending int
}

func (s *stubPusher) Push(_ context.Context) (service.PushResult, error) {
	return s.result, s.err
}

func (s *stubPusher) PendingCount(_ context.Context) (int, error) {
	return s.pending, nil
}

type stubIdentity struct {
	id  string
	err error
}

func (s *stubIdentity) Resolve(_ context.Context) (string, error) {
	return s.id, s.err
}

type stubOnline struct {
	online bool
}

func (s *stubOnline) Online() bool { return s.online }

func performRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func newSyncRouter(h *SyncHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/sync/prefetch", h.Prefetch)
	router.POST("/sync/push", h.Push)
	router.GET("/status", h.Status)
	return router
}

func TestSyncHandlerPrefetchExplicitClass(t *testing.T) {
	prefetch := &stubPrefetcher{result: &service.PrefetchResult{ClassID: "C1", ClassName: "Exploradores", Children: 3}}
	h := NewSyncHandler(prefetch, &stubPusher{}, &stubIdentity{}, &stubOnline{})
	router := newSyncRouter(h)

	resp := performRequest(router, http.MethodPost, "/sync/prefetch", `{"class_id":"C1"}`)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "C1", prefetch.classID)
	assert.Contains(t, resp.Body.String(), `"class_name":"Exploradores"`)
}

func TestSyncHandlerPrefetchFallsBackToIdentity(t *testing.T) {
	prefetch := &stubPrefetcher{result: &service.PrefetchResult{ClassID: "C9"}}
	h := NewSyncHandler(prefetch, &stubPusher{}, &stubIdentity{id: "C9"}, &stubOnline{})
	router := newSyncRouter(h)

	resp := performRequest(router, http.MethodPost, "/sync/prefetch", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "C9", prefetch.classID)
}

func TestSyncHandlerPrefetchNoIdentity(t *testing.T) {
	identity := &stubIdentity{err: appErrors.Clone(appErrors.ErrNoIdentity, "")}
	h := NewSyncHandler(&stubPrefetcher{}, &stubPusher{}, identity, &stubOnline{})
	router := newSyncRouter(h)

	resp := performRequest(router, http.MethodPost, "/sync/prefetch", "")
	require.Equal(t, http.StatusPreconditionFailed, resp.Code)
	assert.Contains(t, resp.Body.String(), "NO_IDENTITY")
}

func TestSyncHandlerPushDeferredWhenRemoteDown(t *testing.T) {
	pusher := &stubPusher{
		result: service.PushResult{Pending: 4},
		err:    appErrors.Remote(nil, "remote backend failure"),
	}
	h := NewSyncHandler(&stubPrefetcher{}, pusher, &stubIdentity{}, &stubOnline{})
	router := newSyncRouter(h)

	resp := performRequest(router, http.MethodPost, "/sync/push", "")
	require.Equal(t, http.StatusAccepted, resp.Code)
	assert.Contains(t, resp.Body.String(), `"deferred":true`)
	assert.Contains(t, resp.Body.String(), `"pending":4`)
}

func TestSyncHandlerStatus(t *testing.T) {
	h := NewSyncHandler(&stubPrefetcher{}, &stubPusher{pending: 2}, &stubIdentity{}, &stubOnline{online: true})
	router := newSyncRouter(h)

	resp := performRequest(router, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"online":true`)
	assert.Contains(t, resp.Body.String(), `"pending":2`)
}
