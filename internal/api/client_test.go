package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartGame(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/start_game", r.URL.Path)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"scenario":       "A storm-locked manor",
				"inicio":         "The lights went out at nine.",
				"start_time":     "2026-08-29T10:00:00",
				"intro_narrator": "Welcome, detective.",
				"suspects": []map[string]any{
					{"name": "Elena", "personality": "icy", "descripcion": "tall, grey coat", "coartada": "library", "detalles_adicionales": "limps"},
				},
				"murder_details":  map[string]string{"arma": "candelabro"},
				"humor_character": "dry",
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	g, err := c.StartGame(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "A storm-locked manor", g.Scenario)
	assert.Equal(t, "Welcome, detective.", g.IntroNarrator)
	require.Len(t, g.Suspects, 1)
	assert.Equal(t, "Elena", g.Suspects[0].Name)
	assert.Equal(t, "library", g.Suspects[0].Alibi)
	assert.Equal(t, "candelabro", g.MurderDetails["arma"])
}

func TestStartGameNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "generation failed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.StartGame(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestGeneratePortrait(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/generate_pfp", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Portrait of Elena, tall", body["description"])

		_ = json.NewEncoder(w).Encode(map[string]string{"image": "https://img/elena.png"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	img, err := c.GeneratePortrait(context.Background(), "Portrait of Elena, tall")

	require.NoError(t, err)
	assert.Equal(t, "https://img/elena.png", img)
}

func TestAskNarratorPayloadAndResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ask/narrator", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Who found the body?", body["question"])
		assert.EqualValues(t, 5, body["attempts_remaining"])
		assert.EqualValues(t, 1, body["detectives_count"])
		assert.Equal(t, []any{"Detective: hello"}, body["history"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"answer":             "The maid did.",
			"type":               "tutorial:personajes",
			"warning":            "One attempt lost.",
			"feedback":           map[string]bool{"arma": false},
			"attempts_remaining": 4,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	resp, err := c.AskNarrator(context.Background(), &NarratorRequest{
		Question:          "Who found the body?",
		History:           []string{"Detective: hello"},
		AttemptsRemaining: 5,
		DetectivesCount:   1,
	})

	require.NoError(t, err)
	assert.Equal(t, "The maid did.", resp.Answer)
	assert.Equal(t, "tutorial:personajes", resp.Type)
	assert.Equal(t, "One attempt lost.", resp.Warning)
	require.NotNil(t, resp.AttemptsRemaining)
	assert.Equal(t, 4, *resp.AttemptsRemaining)
	assert.Equal(t, map[string]bool{"arma": false}, resp.Feedback)
}

func TestAskSuspect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ask", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 0, body["suspect_index"])

		_ = json.NewEncoder(w).Encode(map[string]string{"answer": "Home"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	answer, err := c.AskSuspect(context.Background(), &SuspectRequest{
		Question:     "Where were you?",
		SuspectIndex: 0,
	})

	require.NoError(t, err)
	assert.Equal(t, "Home", answer)
}

func TestTransportFailure(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 200*time.Millisecond)

	_, err := c.AskSuspect(context.Background(), &SuspectRequest{Question: "hi"})
	require.Error(t, err)
}
