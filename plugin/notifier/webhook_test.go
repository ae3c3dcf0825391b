package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/patitas/patitas/internal/match"
)

func TestWebhookNotifyAlert(t *testing.T) {
	var got WebhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewWebhookNotifier(server.URL)
	err := n.NotifyAlert(context.Background(), &match.Alert{
		SourceID:    12,
		MatchedID:   7,
		MatchedName: "Rocky",
		FusedScore:  0.91,
	}, "Luna")
	require.NoError(t, err)

	require.Equal(t, "pet.alert", got.ActivityType)
	require.Equal(t, int64(12), got.SourceID)
	require.Equal(t, "Luna", got.SourceName)
	require.Equal(t, int64(7), got.MatchedID)
	require.Equal(t, "Rocky", got.MatchedName)
	require.InDelta(t, 0.91, got.FusedScore, 1e-9)
}

func TestWebhookNotifyAlertNonOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	n := NewWebhookNotifier(server.URL)
	err := n.NotifyAlert(context.Background(), &match.Alert{}, "Luna")
	require.Error(t, err)
}

type stubNotifier struct {
	calls int
	err   error
}

func (s *stubNotifier) NotifyAlert(context.Context, *match.Alert, string) error {
	s.calls++
	return s.err
}

func TestMultiAttemptsEveryChannel(t *testing.T) {
	failing := &stubNotifier{err: context.DeadlineExceeded}
	working := &stubNotifier{}

	err := Multi{failing, working}.NotifyAlert(context.Background(), &match.Alert{}, "Luna")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, 1, failing.calls)
	require.Equal(t, 1, working.calls)
}
