package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func turnstileServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	server := httptest.NewServer(handler)
	oldURL := turnstileVerifyURL
	turnstileVerifyURL = server.URL
	t.Cleanup(func() {
		turnstileVerifyURL = oldURL
		server.Close()
	})
}

func TestVerifyTurnstileToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing inputs", func(t *testing.T) {
		err := VerifyTurnstileToken(ctx, "", "secret", "127.0.0.1")
		assert.ErrorContains(t, err, "missing token")
	})

	t.Run("Accepted token", func(t *testing.T) {
		turnstileServer(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "secret", r.PostForm.Get("secret"))
			assert.Equal(t, "valid-token", r.PostForm.Get("response"))
			assert.Equal(t, "203.0.113.9", r.PostForm.Get("remoteip"))
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(TurnstileResponse{Success: true})
		})

		assert.NoError(t, VerifyTurnstileToken(ctx, "valid-token", "secret", "203.0.113.9"))
	})

	t.Run("Rejected token", func(t *testing.T) {
		turnstileServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(TurnstileResponse{
				ErrorCodes: []string{"invalid-input-response", "timeout-or-duplicate"},
			})
		})

		err := VerifyTurnstileToken(ctx, "stale-token", "secret", "")
		assert.ErrorIs(t, err, ErrTurnstileRejected)
		assert.ErrorContains(t, err, "timeout-or-duplicate")
	})

	t.Run("Malformed response", func(t *testing.T) {
		turnstileServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("{ malformed json }"))
		})

		err := VerifyTurnstileToken(ctx, "token", "secret", "")
		assert.ErrorContains(t, err, "failed to decode")
		assert.NotErrorIs(t, err, ErrTurnstileRejected)
	})

	t.Run("Cancelled request", func(t *testing.T) {
		turnstileServer(t, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(TurnstileResponse{Success: true})
		})
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		assert.Error(t, VerifyTurnstileToken(cancelled, "token", "secret", ""))
	})
}
