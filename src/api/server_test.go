package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sharedconfig "github.com/TendTo/MemeBot/src/config"
	"github.com/TendTo/MemeBot/src/shared/meme"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type fakeBackend struct {
	tallies map[meme.Decision]int64
	pending int64
	banned  map[int64]bool
}

func (f *fakeBackend) Tally(_ context.Context, _ meme.CardRef, d meme.Decision) (int64, error) {
	return f.tallies[d], nil
}

func (f *fakeBackend) PendingCount(context.Context) (int64, error) { return f.pending, nil }

func (f *fakeBackend) Ban(_ context.Context, userID int64) error {
	f.banned[userID] = true
	return nil
}

func (f *fakeBackend) Unban(_ context.Context, userID int64) (bool, error) {
	was := f.banned[userID]
	delete(f.banned, userID)
	return was, nil
}

func newTestServer(t *testing.T) (*Server, *fakeBackend) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	backend := &fakeBackend{
		tallies: map[meme.Decision]int64{meme.DecisionApprove: 2, meme.DecisionReject: 1, meme.DecisionUp: 5},
		pending: 3,
		banned:  map[int64]bool{},
	}
	s, err := New(sharedconfig.APIConfig{Addr: ":0", JWTSecret: testSecret}, backend, 100, nil)
	require.NoError(t, err)
	return s, backend
}

func do(s *Server, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestNewRequiresSecret(t *testing.T) {
	_, err := New(sharedconfig.APIConfig{}, &fakeBackend{}, 0, nil)
	assert.Error(t, err)
}

func TestHealthAndMetrics(t *testing.T) {
	s, _ := newTestServer(t)
	assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/healthz", "", "").Code)

	w := do(s, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestVotes(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(s, http.MethodGet, "/v1/posts/100/7/votes", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.EqualValues(t, 2, out["approve"])
	assert.EqualValues(t, 1, out["reject"])
	assert.NotContains(t, out, "up")

	out = decode(t, do(s, http.MethodGet, "/v1/posts/200/7/votes", "", ""))
	assert.EqualValues(t, 5, out["up"])
	assert.EqualValues(t, 0, out["down"])

	assert.Equal(t, http.StatusBadRequest, do(s, http.MethodGet, "/v1/posts/x/7/votes", "", "").Code)
}

func TestPendingCount(t *testing.T) {
	s, _ := newTestServer(t)
	out := decode(t, do(s, http.MethodGet, "/v1/pending/count", "", ""))
	assert.EqualValues(t, 3, out["pending"])
}

func TestAdminBansRequireToken(t *testing.T) {
	s, backend := newTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, do(s, http.MethodPost, "/v1/admin/bans", `{"user_id":"42"}`, "").Code)

	forged, err := MintToken([]byte("other"), "ops", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(s, http.MethodPost, "/v1/admin/bans", `{"user_id":"42"}`, forged).Code)

	expired, err := MintToken([]byte(testSecret), "ops", -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(s, http.MethodPost, "/v1/admin/bans", `{"user_id":"42"}`, expired).Code)

	assert.Empty(t, backend.banned)
}

func TestAdminBanAndUnban(t *testing.T) {
	s, backend := newTestServer(t)
	token, err := MintToken([]byte(testSecret), "ops", time.Minute)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, do(s, http.MethodPost, "/v1/admin/bans", `{"user_id":"42"}`, token).Code)
	assert.True(t, backend.banned[42])
	assert.Equal(t, http.StatusBadRequest, do(s, http.MethodPost, "/v1/admin/bans", `{"user_id":"bob"}`, token).Code)

	assert.Equal(t, http.StatusNoContent, do(s, http.MethodDelete, "/v1/admin/bans/42", "", token).Code)
	assert.False(t, backend.banned[42])
	assert.Equal(t, http.StatusNotFound, do(s, http.MethodDelete, "/v1/admin/bans/42", "", token).Code)
}

func TestMintTokenNeedsSecret(t *testing.T) {
	_, err := MintToken(nil, "ops", time.Minute)
	assert.Error(t, err)
}
