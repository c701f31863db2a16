package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/casting-agent/internal/apply"
	"github.com/jonathan/casting-agent/internal/mail"
	"github.com/jonathan/casting-agent/internal/types"
)

type stubSender struct {
	failFor map[string]bool
	sends   int
}

func (s *stubSender) Send(_ context.Context, msg mail.Message) error {
	s.sends++
	if s.failFor[msg.To] {
		return errors.New("rejected")
	}
	return nil
}

func fixedCastings() []types.Casting {
	return []types.Casting{
		{ID: "111", Title: "Runway show", URL: "https://cl.test/d/111.html", Email: "a@x.com", Compensation: "Not specified", Source: types.SourceCraigslist},
		{ID: "222", Title: "Music video", URL: "https://cl.test/d/222.html", Email: "b@x.com", Compensation: "compensation: $200", Source: types.SourceCraigslist},
	}
}

func newTestServer(collect CollectFunc, sender mail.Sender) *Server {
	return New(Config{
		Port:       0,
		Collect:    collect,
		Dispatcher: &apply.Dispatcher{Sender: sender, Delay: time.Millisecond},
	})
}

func collectFixed(_ context.Context) ([]types.Casting, error) {
	return fixedCastings(), nil
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(collectFixed, &stubSender{})
	rec := do(t, s, "GET", "/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Casting Agent Running", resp.Status)
	assert.NotEmpty(t, resp.Timestamp)
}

func TestHandleScrape_Success(t *testing.T) {
	s := newTestServer(collectFixed, &stubSender{})
	rec := do(t, s, "GET", "/scrape", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ScrapeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Castings, 2)
	assert.Equal(t, "111", resp.Castings[0].ID)
	assert.NotEmpty(t, resp.Timestamp)
}

func TestHandleScrape_CollectionFailure(t *testing.T) {
	s := newTestServer(func(context.Context) ([]types.Casting, error) {
		return nil, errors.New("browser launch failed")
	}, &stubSender{})

	rec := do(t, s, "GET", "/scrape", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp ScrapeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "browser launch failed")
	assert.NotNil(t, resp.Castings)
	assert.Empty(t, resp.Castings)
	// The error body serializes castings as an empty array, not null.
	assert.Contains(t, rec.Body.String(), `"castings":[]`)
}

func TestHandleScrapeAndApply_Success(t *testing.T) {
	sender := &stubSender{}
	s := newTestServer(collectFixed, sender)

	rec := do(t, s, "POST", "/scrape-and-apply",
		`{"profile": {"name": "Jane Doe", "email": "jane@example.com"}, "limit": 5}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ApplyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Applied)
	assert.Equal(t, 0, resp.Failed)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "111", resp.Results[0].CastingID)
	assert.Equal(t, 2, sender.sends)
}

func TestHandleScrapeAndApply_PartialFailure(t *testing.T) {
	sender := &stubSender{failFor: map[string]bool{"b@x.com": true}}
	s := newTestServer(collectFixed, sender)

	rec := do(t, s, "POST", "/scrape-and-apply",
		`{"profile": {"email": "jane@example.com"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ApplyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Applied)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Results, 2)
	assert.True(t, resp.Results[0].Success)
	assert.False(t, resp.Results[1].Success)
}

func TestHandleScrapeAndApply_MissingEmail(t *testing.T) {
	sender := &stubSender{}
	collected := false
	s := newTestServer(func(context.Context) ([]types.Casting, error) {
		collected = true
		return fixedCastings(), nil
	}, sender)

	rec := do(t, s, "POST", "/scrape-and-apply", `{"profile": {"name": "No Email"}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ApplyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Profile with email required", resp.Error)
	// Validation failures must precede any side effects.
	assert.False(t, collected)
	assert.Zero(t, sender.sends)
}

func TestHandleScrapeAndApply_BadBody(t *testing.T) {
	s := newTestServer(collectFixed, &stubSender{})
	rec := do(t, s, "POST", "/scrape-and-apply", `{"profile": `)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleScrapeAndApply_CollectionFailure(t *testing.T) {
	s := newTestServer(func(context.Context) ([]types.Casting, error) {
		return nil, errors.New("endpoint unreachable")
	}, &stubSender{})

	rec := do(t, s, "POST", "/scrape-and-apply", `{"profile": {"email": "jane@example.com"}}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp ApplyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(collectFixed, &stubSender{})
	rec := do(t, s, "OPTIONS", "/scrape", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
