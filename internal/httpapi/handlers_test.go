package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/innings-scorer/internal/engine"
	"github.com/DoyleJ11/innings-scorer/internal/hub"
	"github.com/DoyleJ11/innings-scorer/internal/types"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	h := hub.NewHub(ctx, nil)
	srv := httptest.NewServer(SetupRoutes(h, Options{Openers: engine.DefaultLineup}))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url string, body any) (*http.Response, types.ServerMessage) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var msg types.ServerMessage
	_ = json.NewDecoder(resp.Body).Decode(&msg) // empty on 204
	return resp, msg
}

func createInnings(t *testing.T, srv *httptest.Server, req *types.CreateInningsRequest) string {
	t.Helper()
	var buf bytes.Buffer
	if req != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(req))
	}
	resp, err := http.Post(srv.URL+"/innings", "application/json", &buf)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out types.CreateInningsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Code, 6)
	return out.Code
}

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode()
	require.NoError(t, err)
	assert.Regexp(t, `^[A-Z0-9]{6}$`, code)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateAndScore(t *testing.T) {
	srv := newTestServer(t)
	code := createInnings(t, srv, nil)

	resp, msg := do(t, http.MethodGet, srv.URL+"/innings/"+code, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, msg.State)
	assert.Equal(t, "Rahul", msg.State.Batters[engine.SlotA].Name)
	assert.Equal(t, "Ready.", msg.State.Status)

	resp, msg = do(t, http.MethodPost, srv.URL+"/innings/"+code+"/actions", types.ActionRequest{Action: "run", Value: "4"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, msg.Version)
	assert.Equal(t, 4, msg.State.TotalRuns)
	assert.Equal(t, "0.1", msg.State.Overs)
	assert.Equal(t, "400.0", msg.State.Batters[engine.SlotA].StrikeRate)
	require.Len(t, msg.Events, 1)
	assert.Equal(t, engine.ToneGood, msg.Events[0].Tone)

	resp, msg = do(t, http.MethodPost, srv.URL+"/innings/"+code+"/actions", types.ActionRequest{Action: "wicket", Batter: "Virat"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, msg.State.Wickets)
	assert.Equal(t, "Virat", msg.State.Batters[engine.SlotA].Name)
}

func TestActionAcceptsNumericValue(t *testing.T) {
	srv := newTestServer(t)
	code := createInnings(t, srv, nil)
	url := srv.URL + "/innings/" + code + "/actions"

	resp, msg := do(t, http.MethodPost, url, json.RawMessage(`{"action":"run","value":4}`))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, msg.State)
	assert.Equal(t, 4, msg.State.TotalRuns)

	resp, msg = do(t, http.MethodPost, url, json.RawMessage(`{"action":"run","value":9223372036854775807}`))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, msg.Error, "invalid run value")

	resp, _ = do(t, http.MethodPost, url, json.RawMessage(`{"action":"run","value":true}`))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, msg = do(t, http.MethodGet, srv.URL+"/innings/"+code, nil)
	assert.Equal(t, 1, msg.Version)
	assert.Equal(t, 4, msg.State.TotalRuns)
}

func TestCreateWithOpeners(t *testing.T) {
	srv := newTestServer(t)
	code := createInnings(t, srv, &types.CreateInningsRequest{OpenerA: "Mandhana", OpenerB: "Verma"})

	_, msg := do(t, http.MethodGet, srv.URL+"/innings/"+code, nil)
	require.NotNil(t, msg.State)
	assert.Equal(t, "Mandhana", msg.State.Batters[engine.SlotA].Name)
	assert.Equal(t, "Verma", msg.State.Batters[engine.SlotB].Name)
}

func TestActionErrors(t *testing.T) {
	srv := newTestServer(t)
	code := createInnings(t, srv, nil)
	url := srv.URL + "/innings/" + code + "/actions"

	cases := []struct {
		name       string
		req        types.ActionRequest
		wantStatus int
	}{
		{name: "non numeric runs", req: types.ActionRequest{Action: "run", Value: "four"}, wantStatus: http.StatusBadRequest},
		{name: "negative runs", req: types.ActionRequest{Action: "run", Value: "-1"}, wantStatus: http.StatusBadRequest},
		{name: "too many runs", req: types.ActionRequest{Action: "run", Value: "8"}, wantStatus: http.StatusBadRequest},
		{name: "unknown action", req: types.ActionRequest{Action: "appeal"}, wantStatus: http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, msg := do(t, http.MethodPost, url, tc.req)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			assert.Equal(t, "Error", msg.Type)
		})
	}

	_, msg := do(t, http.MethodGet, srv.URL+"/innings/"+code, nil)
	assert.Equal(t, 0, msg.Version)
	assert.Equal(t, 0, msg.State.TotalRuns)
}

func TestInningsOverReturnsConflict(t *testing.T) {
	srv := newTestServer(t)
	code := createInnings(t, srv, nil)
	url := srv.URL + "/innings/" + code + "/actions"

	for i := 0; i < engine.MaxWickets; i++ {
		resp, _ := do(t, http.MethodPost, url, types.ActionRequest{Action: "lbw"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, msg := do(t, http.MethodPost, url, types.ActionRequest{Action: "run", Value: "1"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	require.NotNil(t, msg.State)
	assert.True(t, msg.State.InningsOver)
	assert.Equal(t, 0, msg.State.TotalRuns)

	resp, msg = do(t, http.MethodPost, url, types.ActionRequest{Action: "reset"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, msg.State.InningsOver)
	assert.Equal(t, "Reset. Ready.", msg.State.Status)
}

func TestUnknownAndDeletedInnings(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := do(t, http.MethodGet, srv.URL+"/innings/NOPE00", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	code := createInnings(t, srv, nil)
	resp, _ = do(t, http.MethodDelete, srv.URL+"/innings/"+code, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, http.MethodGet, srv.URL+"/innings/"+code, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
