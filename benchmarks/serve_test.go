package benchmarks

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	server := NewEpisodeServer(testSetup(t), ":0", 0)
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := serve(t, http.MethodGet, "/v1/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status     string   `json:"status"`
		Hypotheses int      `json:"hypotheses"`
		Patterns   []string `json:"patterns"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 3, body.Hypotheses)
	assert.Equal(t, []string{"room1", "room2", "room3", "room4"}, body.Patterns)
}

func TestEpisode(t *testing.T) {
	rec := serve(t, http.MethodPost, "/v1/episodes", `{"pattern_name": "room2", "seed": 5, "truth": 1, "trace": true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp episodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "room2", resp.Pattern)
	assert.Equal(t, uint64(5), resp.Seed)
	assert.Equal(t, 1, resp.Truth)
	assert.NotEmpty(t, resp.EpisodeID)
	require.NotNil(t, resp.Result)
	assert.Equal(t, resp.Result.Hypothesis == 1, resp.Correct)
	require.NotNil(t, resp.Trace)
	assert.Equal(t, resp.Result.Moves, resp.Trace.Len())
	assert.Equal(t, 1, resp.Trace.Truth)
}

func TestEpisode_CustomPattern(t *testing.T) {
	body, err := json.Marshal(map[string]interface{}{
		"pattern": "MAP\n--------\n|......|\n|......|\n|......|\n--------\nENDMAP",
		"seed":    2,
	})
	require.NoError(t, err)
	rec := serve(t, http.MethodPost, "/v1/episodes", string(body))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"pattern":"request"`)
	assert.NotContains(t, rec.Body.String(), `"trace"`)
}

func TestEpisode_BadRequests(t *testing.T) {
	cases := map[string]string{
		"not json":          `{"seed":`,
		"threshold":         `{"threshold": 1.5}`,
		"distance":          `{"distance": "bogus"}`,
		"missing map":       `{"pattern": "no map here"}`,
		"unknown pattern":   `{"pattern_name": "attic"}`,
		"hypothesis":        `{"truth": 7}`,
		"room too small":    `{"pattern": "MAP\n----\n|..|\n----\nENDMAP"}`,
		"negative maxmoves": `{"max_moves": -1}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := serve(t, http.MethodPost, "/v1/episodes", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}
