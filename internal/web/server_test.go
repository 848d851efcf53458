package web

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expediente/config"
	"expediente/internal/api"
	"expediente/internal/game"
)

type stubService struct{}

func (stubService) StartGame(context.Context) (*api.Game, error) {
	return &api.Game{
		Scenario:      "manor",
		Opening:       "a dark night",
		StartTime:     "2026-08-29T10:00:00",
		IntroNarrator: "Welcome.",
		Suspects:      []api.Suspect{{Name: "Elena", Personality: "icy", Alibi: "library"}},
	}, nil
}

func (stubService) AskNarrator(context.Context, *api.NarratorRequest) (*api.NarratorResponse, error) {
	return &api.NarratorResponse{Answer: "Indeed.", Type: "respuesta"}, nil
}

func (stubService) AskSuspect(context.Context, *api.SuspectRequest) (string, error) {
	return "Home", nil
}

type stubResolver struct{}

func (stubResolver) ResolveAll(_ context.Context, descs []string) []string {
	return make([]string, len(descs))
}

func testServer(t *testing.T, start bool) *Server {
	t.Helper()

	cfg := &config.Config{
		Game: config.GameConfig{Attempts: 5, LoadStepMillis: 1, HighlightMillis: 5000},
		Web:  config.WebConfig{Addr: ":0", Static: "../../static"},
	}
	srv := New(cfg)
	srv.Bind(game.NewSession(cfg, stubService{}, stubResolver{}, srv))
	if start {
		require.NoError(t, srv.session.Start(context.Background()))
	}
	return srv
}

func TestStateBeforeAndAfterStartup(t *testing.T) {
	t.Run("loading", func(t *testing.T) {
		srv := testServer(t, false)

		resp, err := srv.app.Test(httptest.NewRequest("GET", "/api/state", nil), -1)
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)

		var state stateResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
		assert.False(t, state.Ready)
		assert.Empty(t, state.Suspects)
	})

	t.Run("ready", func(t *testing.T) {
		srv := testServer(t, true)

		resp, err := srv.app.Test(httptest.NewRequest("GET", "/api/state", nil), -1)
		require.NoError(t, err)

		var state stateResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
		assert.True(t, state.Ready)
		assert.Equal(t, 0, state.Active)
		assert.Equal(t, 5, state.Attempts)
		require.Len(t, state.Suspects, 1)
		assert.Equal(t, "Elena", state.Suspects[0].Name)
		require.Len(t, state.Histories, 2)
		require.Len(t, state.Histories[0], 1)
		assert.Equal(t, "Welcome.", state.Histories[0][0].Text)
	})
}

func TestPostMessage(t *testing.T) {
	srv := testServer(t, true)

	t.Run("empty message rejected", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/message", strings.NewReader(`{"text":"  "}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := srv.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("question answered", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/message", strings.NewReader(`{"text":"Who did it?"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := srv.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 204, resp.StatusCode)
		assert.Len(t, srv.session.HistoryFor(game.Narrator), 3)
	})
}

func TestPostSpeaker(t *testing.T) {
	srv := testServer(t, true)

	req := httptest.NewRequest("POST", "/api/speaker", strings.NewReader(`{"speaker":1}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)
	assert.Equal(t, game.SuspectAt(0), srv.session.ActiveSpeaker())

	t.Run("unknown speaker", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/speaker", strings.NewReader(`{"speaker":9}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := srv.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})
}
