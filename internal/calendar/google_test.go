package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func newTestClient(t *testing.T, handler http.Handler) *GoogleClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewGoogle(context.Background(), GoogleOptions{
		BaseURL:     srv.URL,
		TokenSource: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"}),
	})
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func TestGoogleClient_CreateEvent(t *testing.T) {
	t.Parallel()

	starts := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	ends := starts.Add(time.Hour)

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/calendars/primary/events" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("unexpected authorization header: %q", got)
		}

		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["summary"] != "Working Session" {
			t.Errorf("unexpected summary: %v", body["summary"])
		}

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "evt-123",
			"summary": "Working Session",
			"start":   map[string]string{"dateTime": starts.Format(time.RFC3339)},
			"end":     map[string]string{"dateTime": ends.Format(time.RFC3339)},
		})
	}))

	event, err := client.CreateEvent(context.Background(), EventRequest{
		Summary:  "Working Session",
		StartsAt: starts,
		EndsAt:   ends,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if event.ID != "evt-123" {
		t.Fatalf("expected evt-123, got %q", event.ID)
	}
	if !event.StartsAt.Equal(starts) || !event.EndsAt.Equal(ends) {
		t.Fatalf("unexpected event window: %v-%v", event.StartsAt, event.EndsAt)
	}
}

func TestGoogleClient_CreateEvent_APIError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))

	if _, err := client.CreateEvent(context.Background(), EventRequest{Summary: "x"}); err == nil {
		t.Fatalf("expected error on non-200 response")
	}
}

func TestGoogleClient_ListUpcoming(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/calendars/primary/events" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("maxResults") != "5" || q.Get("orderBy") != "startTime" || q.Get("singleEvents") != "true" {
			t.Errorf("unexpected query: %v", q)
		}

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"items": []map[string]interface{}{
				{
					"id":      "evt-1",
					"summary": "Deep Consult",
					"start":   map[string]string{"dateTime": "2025-06-02T12:00:00Z"},
					"end":     map[string]string{"dateTime": "2025-06-02T13:00:00Z"},
				},
				{
					"id":      "evt-2",
					"summary": "Rubber Duck",
					"start":   map[string]string{"dateTime": "2025-06-02T14:00:00Z"},
					"end":     map[string]string{"dateTime": "2025-06-02T15:00:00Z"},
				},
			},
		})
	}))

	events, err := client.ListUpcoming(context.Background(), 5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].ID != "evt-1" || events[0].Summary != "Deep Consult" {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
}

func TestGoogleClient_DeleteEvent(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/calendars/primary/events/evt-9" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.DeleteEvent(context.Background(), "evt-9"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	path := t.TempDir() + "/token.json"
	tok := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		Expiry:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	if err := writeToken(path, tok); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	loaded, err := readToken(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if loaded.AccessToken != tok.AccessToken || loaded.RefreshToken != tok.RefreshToken {
		t.Fatalf("token did not survive round trip: %+v", loaded)
	}
}
