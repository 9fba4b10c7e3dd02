package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flotilla/battleship-go/internal/api"
	"github.com/flotilla/battleship-go/internal/api/apierr"
	"github.com/flotilla/battleship-go/internal/api/response"
	"github.com/flotilla/battleship-go/internal/model"
	"github.com/flotilla/battleship-go/internal/services/score"
	"github.com/flotilla/battleship-go/internal/storage/memory"
	"github.com/flotilla/battleship-go/internal/testutil"
)

const testServiceToken = "test-service-token"

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	storage *memory.Storage
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := testutil.NopLogger()
	store := memory.New()

	router := api.NewRouter(api.RouterConfig{
		Logger:       logger,
		ScoreService: score.New(store, logger),
		ServiceToken: testServiceToken,
	})

	return &testServer{
		handler: router,
		storage: store,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) createPlayer(t *testing.T, username string) {
	t.Helper()

	err := ts.storage.CreatePlayer(context.Background(), &model.Player{
		Username:     username,
		PasswordHash: "not-a-real-hash",
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestScoreUpdate(t *testing.T) {
	ts := newTestServer(t)
	ts.createPlayer(t, "alice")

	body := map[string]any{"username": "alice", "score_change": 10}
	rr := ts.request(http.MethodPost, "/api/v1/scores/update", body, testServiceToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.ScoreUpdateResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, int64(10), resp.NewScore)
	assert.Equal(t, int64(10), resp.ScoreChange)
}

func TestScoreUpdateAccumulates(t *testing.T) {
	ts := newTestServer(t)
	ts.createPlayer(t, "alice")

	body := map[string]any{"username": "alice", "score_change": 10}
	rr := ts.request(http.MethodPost, "/api/v1/scores/update", body, testServiceToken)
	require.Equal(t, http.StatusOK, rr.Code)

	// Negative deltas apply as-is; totals may go below zero
	body = map[string]any{"username": "alice", "score_change": -25}
	rr = ts.request(http.MethodPost, "/api/v1/scores/update", body, testServiceToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.ScoreUpdateResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, int64(-15), resp.NewScore)
}

func TestScoreUpdateZeroDelta(t *testing.T) {
	ts := newTestServer(t)
	ts.createPlayer(t, "alice")

	// Zero is a valid delta, distinct from the field being absent
	body := map[string]any{"username": "alice", "score_change": 0}
	rr := ts.request(http.MethodPost, "/api/v1/scores/update", body, testServiceToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.ScoreUpdateResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.NewScore)
}

func TestScoreUpdateUnknownPlayer(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{"username": "ghost", "score_change": 5}
	rr := ts.request(http.MethodPost, "/api/v1/scores/update", body, testServiceToken)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	var resp apierr.ErrorResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, apierr.CodePlayerNotFound, resp.Error.Code)

	// No record should have been created as a side effect
	_, err = ts.storage.GetPlayer(context.Background(), "ghost")
	assert.ErrorIs(t, err, model.ErrPlayerNotFound)
}

func TestScoreUpdateMissingFields(t *testing.T) {
	ts := newTestServer(t)
	ts.createPlayer(t, "alice")

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing username", map[string]any{"score_change": 5}},
		{"missing score_change", map[string]any{"username": "alice"}},
		{"empty body", map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, "/api/v1/scores/update", tt.body, testServiceToken)
			assert.Equal(t, http.StatusBadRequest, rr.Code)

			var resp apierr.ErrorResponse
			err := json.Unmarshal(rr.Body.Bytes(), &resp)
			require.NoError(t, err)
			assert.Equal(t, apierr.CodeInvalidRequest, resp.Error.Code)
		})
	}
}

func TestScoreUpdateMalformedJSON(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scores/update", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testServiceToken)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestScoreUpdateUnauthorized(t *testing.T) {
	ts := newTestServer(t)
	ts.createPlayer(t, "alice")

	body := map[string]any{"username": "alice", "score_change": 10}

	// No token
	rr := ts.request(http.MethodPost, "/api/v1/scores/update", body, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// Wrong token
	rr = ts.request(http.MethodPost, "/api/v1/scores/update", body, "wrong-token")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// Score must be untouched after rejected requests
	player, err := ts.storage.GetPlayer(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(0), player.Score)
}

func TestScoreUpdateDisabledWithoutToken(t *testing.T) {
	logger := testutil.NopLogger()
	store := memory.New()

	// An empty configured token must not mean "no auth required"
	router := api.NewRouter(api.RouterConfig{
		Logger:       logger,
		ScoreService: score.New(store, logger),
		ServiceToken: "",
	})

	body, _ := json.Marshal(map[string]any{"username": "alice", "score_change": 10})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/scores/update", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
