package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	defaultBaseURL = "https://www.googleapis.com/calendar/v3"
	calendarScope  = "https://www.googleapis.com/auth/calendar"
)

type GoogleOptions struct {
	ClientID     string
	ClientSecret string
	TokenPath    string
	Timeout      time.Duration
	// BaseURL and TokenSource override the Google API endpoint and
	// credential source; tests use these.
	BaseURL     string
	TokenSource oauth2.TokenSource
}

// GoogleClient implements Client against the Google Calendar REST API on
// the primary calendar. Credentials come from a token file persisted at
// TokenPath; refreshed tokens are written back so the next process start
// skips re-authorization.
type GoogleClient struct {
	http    *http.Client
	baseURL string
}

func NewGoogle(ctx context.Context, opts GoogleOptions) (*GoogleClient, error) {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	source := opts.TokenSource
	if source == nil {
		tok, err := readToken(opts.TokenPath)
		if err != nil {
			return nil, errors.Wrap(err, "load calendar token")
		}
		conf := &oauth2.Config{
			ClientID:     opts.ClientID,
			ClientSecret: opts.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{calendarScope},
		}
		source = &persistingTokenSource{
			source: conf.TokenSource(ctx, tok),
			path:   opts.TokenPath,
			last:   tok.AccessToken,
		}
	}

	return &GoogleClient{
		http: &http.Client{
			Transport: &oauth2.Transport{Source: source},
			Timeout:   timeout,
		},
		baseURL: baseURL,
	}, nil
}

func (c *GoogleClient) CreateEvent(ctx context.Context, req EventRequest) (Event, error) {
	body := map[string]interface{}{
		"summary": req.Summary,
		"start":   map[string]string{"dateTime": req.StartsAt.Format(time.RFC3339)},
		"end":     map[string]string{"dateTime": req.EndsAt.Format(time.RFC3339)},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return Event{}, errors.Wrap(err, "marshal event")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/calendars/primary/events", bytes.NewReader(payload))
	if err != nil {
		return Event{}, errors.Wrap(err, "build create event request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Event{}, errors.Wrap(err, "create event")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Event{}, apiError(resp)
	}

	var doc eventDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return Event{}, errors.Wrap(err, "decode event")
	}
	return doc.toEvent(), nil
}

func (c *GoogleClient) ListUpcoming(ctx context.Context, max int) ([]Event, error) {
	params := url.Values{}
	params.Set("timeMin", time.Now().UTC().Format(time.RFC3339))
	params.Set("maxResults", strconv.Itoa(max))
	params.Set("singleEvents", "true")
	params.Set("orderBy", "startTime")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/calendars/primary/events?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build list events request")
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "list events")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var list struct {
		Items []eventDoc `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, errors.Wrap(err, "decode events")
	}

	events := make([]Event, 0, len(list.Items))
	for _, item := range list.Items {
		events = append(events, item.toEvent())
	}
	return events, nil
}

func (c *GoogleClient) DeleteEvent(ctx context.Context, eventID string) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/calendars/primary/events/"+url.PathEscape(eventID), nil)
	if err != nil {
		return errors.Wrap(err, "build delete event request")
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return errors.Wrap(err, "delete event")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return nil
}

type eventDoc struct {
	ID      string `json:"id"`
	Summary string `json:"summary"`
	Start   struct {
		DateTime string `json:"dateTime"`
	} `json:"start"`
	End struct {
		DateTime string `json:"dateTime"`
	} `json:"end"`
}

func (d eventDoc) toEvent() Event {
	starts, _ := time.Parse(time.RFC3339, d.Start.DateTime)
	ends, _ := time.Parse(time.RFC3339, d.End.DateTime)
	return Event{ID: d.ID, Summary: d.Summary, StartsAt: starts, EndsAt: ends}
}

func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return errors.Newf("google calendar: status %d: %s", resp.StatusCode, body)
}

// persistingTokenSource writes refreshed tokens back to disk so a
// restart does not need re-authorization.
type persistingTokenSource struct {
	mu     sync.Mutex
	source oauth2.TokenSource
	path   string
	last   string
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tok, err := s.source.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != s.last {
		if err := writeToken(s.path, tok); err != nil {
			return nil, errors.Wrap(err, "persist refreshed token")
		}
		s.last = tok.AccessToken
	}
	return tok, nil
}

func readToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

func writeToken(path string, tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
