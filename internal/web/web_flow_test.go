package web_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flotilla/battleship-go/internal/api"
	"github.com/flotilla/battleship-go/internal/api/response"
	"github.com/flotilla/battleship-go/internal/testutil"
)

// TestFullPlayerFlow exercises the whole surface the way a deployment does:
// the browser flows through the web router while the game server reports
// results through the API router, both backed by the same services.
func TestFullPlayerFlow(t *testing.T) {
	ts := newWebTestServer(t)

	const serviceToken = "game-server-token"
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:       testutil.NopLogger(),
		ScoreService: ts.app.ScoreService,
		ServiceToken: serviceToken,
	})

	combined := http.NewServeMux()
	combined.Handle("/api/", apiRouter)
	combined.Handle("/", ts.handler)
	ts.handler = combined

	applyDelta := func(username string, delta int64) response.ScoreUpdateResponse {
		t.Helper()
		body, _ := json.Marshal(map[string]any{"username": username, "score_change": delta})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/scores/update", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+serviceToken)

		rr := httptest.NewRecorder()
		ts.handler.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp response.ScoreUpdateResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		return resp
	}

	// Register and log in
	ts.registerPlayer("alice", "pw123")
	ts.loginPlayer("alice", "pw123")

	rr := ts.get("/game")
	require.Equal(t, http.StatusOK, rr.Code)
	assertContainsText(t, parseHTML(rr.Body), "nav", "alice")

	// Game server reports a result
	resp := applyDelta("alice", 10)
	assert.Equal(t, int64(10), resp.NewScore)

	// Two concurrent reports; the total is exact regardless of order
	var wg sync.WaitGroup
	codes := make([]int, 2)
	for i, delta := range []int64{-3, 7} {
		wg.Add(1)
		go func(i int, d int64) {
			defer wg.Done()
			body, _ := json.Marshal(map[string]any{"username": "alice", "score_change": d})
			req := httptest.NewRequest(http.MethodPost, "/api/v1/scores/update", strings.NewReader(string(body)))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+serviceToken)

			rec := httptest.NewRecorder()
			ts.handler.ServeHTTP(rec, req)
			codes[i] = rec.Code
		}(i, delta)
	}
	wg.Wait()
	assert.Equal(t, []int{http.StatusOK, http.StatusOK}, codes)

	rr = ts.get("/leaderboard")
	require.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	row := doc.Find("tbody tr").First()
	assert.Equal(t, "alice", row.Find("td").Eq(0).Text())
	assert.Equal(t, "14", row.Find("td").Eq(1).Text())

	// Logout invalidates the session
	rr = ts.post("/logout", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.get("/game")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
}
