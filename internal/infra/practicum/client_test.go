package practicum

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"homework_status_bot/internal/domain/homework"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newTestClient(url string) (*Client, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return NewClient(url, "secret", 5*time.Second, logrus.NewEntry(logger)), hook
}

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "OAuth secret" {
			t.Errorf("Authorization = %q, want %q", got, "OAuth secret")
		}
		if got := r.URL.Query().Get("from_date"); got != "1700000000" {
			t.Errorf("from_date = %q, want 1700000000", got)
		}
		w.Write([]byte(`{"homeworks":[{"status":"approved","homework_name":"Project 1"}],"current_date":1700000100}`))
	}))
	defer srv.Close()

	c, hook := newTestClient(srv.URL)
	answer, err := c.Fetch(context.Background(), 1700000000)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	resp, err := homework.ValidateResponse(answer)
	if err != nil {
		t.Fatalf("ValidateResponse() error = %v", err)
	}
	if resp.CurrentDate != 1700000100 {
		t.Fatalf("CurrentDate = %d, want 1700000100", resp.CurrentDate)
	}

	last := hook.LastEntry()
	if last == nil || last.Level != logrus.DebugLevel {
		t.Fatalf("expected a debug entry after a successful fetch, got %+v", last)
	}
}

func TestFetch_KeepsEndpointQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("lang") != "ru" || q.Get("from_date") != "5" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{"homeworks":[],"current_date":6}`))
	}))
	defer srv.Close()

	c, _ := newTestClient(srv.URL + "/?lang=ru")
	if _, err := c.Fetch(context.Background(), 5); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
}

func TestFetch_ErrorClassification(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		want    error
		mention string
	}{
		{"server error payload", http.StatusServiceUnavailable, `{"error":"bad_auth","code":5}`, homework.ErrServerFailure, "bad_auth"},
		{"error payload with extra key", http.StatusBadRequest, `{"error":"x","code":1,"detail":"y"}`, homework.ErrUnexpectedStatus, "detail"},
		{"arbitrary json", http.StatusInternalServerError, `{"message":"boom"}`, homework.ErrUnexpectedStatus, "boom"},
		{"json array", http.StatusNotFound, `[]`, homework.ErrUnexpectedStatus, "404"},
		{"not json on error", http.StatusBadGateway, `<html>bad gateway</html>`, homework.ErrMalformedResponse, ""},
		{"not json on success", http.StatusOK, `definitely not json`, homework.ErrMalformedResponse, ""},
		{"empty body", http.StatusOK, ``, homework.ErrMalformedResponse, ""},
		{"trailing garbage", http.StatusOK, `{"homeworks":[],"current_date":5} <html>oops</html>`, homework.ErrMalformedResponse, ""},
		{"two json values", http.StatusOK, `{"homeworks":[],"current_date":5}{"homeworks":[],"current_date":6}`, homework.ErrMalformedResponse, "after top-level"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			srv := serve(t, tc.status, tc.body)
			c, _ := newTestClient(srv.URL)

			answer, err := c.Fetch(context.Background(), 0)
			if err == nil {
				t.Fatalf("expected error, got %v", answer)
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("error = %v (kind %s), want kind %s", err, homework.KindOf(err), homework.KindOf(tc.want))
			}
			if tc.mention != "" && !strings.Contains(err.Error(), tc.mention) {
				t.Fatalf("error %q should mention %q", err, tc.mention)
			}
		})
	}
}

func TestFetch_ServerFailureCarriesCodes(t *testing.T) {
	srv := serve(t, http.StatusServiceUnavailable, `{"error":"bad_auth","code":5}`)
	c, _ := newTestClient(srv.URL)

	_, err := c.Fetch(context.Background(), 0)

	var apiErr *homework.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error %v is not a *homework.Error", err)
	}
	if apiErr.StatusCode != http.StatusServiceUnavailable || apiErr.Code != "5" {
		t.Fatalf("StatusCode/Code = %d/%q, want 503/\"5\"", apiErr.StatusCode, apiErr.Code)
	}
}

func TestFetch_NetworkFailure(t *testing.T) {
	c, _ := newTestClient("http://example")
	c.http = &http.Client{Transport: roundTripperFunc(func(_ *http.Request) (*http.Response, error) {
		return nil, fmt.Errorf("connection refused")
	})}

	_, err := c.Fetch(context.Background(), 0)
	if !errors.Is(err, homework.ErrNetworkFailure) {
		t.Fatalf("error = %v, want network failure", err)
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("error %q should carry the cause", err)
	}
}

func TestFetch_TimeoutIsNetworkFailure(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c, _ := newTestClient(srv.URL)
	c.http.Timeout = 50 * time.Millisecond

	_, err := c.Fetch(context.Background(), 0)
	if !errors.Is(err, homework.ErrNetworkFailure) {
		t.Fatalf("error = %v, want network failure", err)
	}
}
