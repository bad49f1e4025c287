package generation

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newServer(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewHTTPClient(srv.URL+"/", 0)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestGenerateRoundTrip(t *testing.T) {
	var got Request
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != Path {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type: %q", ct)
		}
		if r.Header.Get("Authorization") != "" {
			t.Errorf("no authorization header expected")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"cover_letter": "X"}`)
	})

	letter, err := client.Generate(context.Background(), "Alice\nEngineer\n", "Go developer")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if letter != "X" {
		t.Fatalf("expected %q, got %q", "X", letter)
	}
	if got.CVText != "Alice\nEngineer\n" || got.JobDescription != "Go developer" {
		t.Fatalf("unexpected request body: %+v", got)
	}
}

func TestRequestWireFormat(t *testing.T) {
	data, err := json.Marshal(Request{CVText: "cv", JobDescription: "jd"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"cv_text":"cv","job_description":"jd"}` {
		t.Fatalf("unexpected wire format: %s", data)
	}
}

func TestGenerateDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "<html>oops</html>"},
		{name: "array", body: `["X"]`},
		{name: "missing field", body: `{"letter": "X"}`},
		{name: "wrong type", body: `{"cover_letter": 42}`},
		{name: "null field", body: `{"cover_letter": null}`},
		{name: "empty body", body: ""},
		{name: "trailing garbage", body: `{"cover_letter":"X"} trailing`},
		{name: "two objects", body: `{"cover_letter":"X"}{"cover_letter":"Y"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, tt.body)
			})
			_, err := client.Generate(context.Background(), "cv", "jd")
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("expected DecodeError, got %T %v", err, err)
			}
		})
	}
}

func TestGenerateServerErrorIsTransportError(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"cover_letter": "should be ignored"}`)
	})

	_, err := client.Generate(context.Background(), "cv", "jd")
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %T %v", err, err)
	}
	if Placeholder(err) != "unexpected status 500" {
		t.Fatalf("unexpected placeholder: %q", Placeholder(err))
	}
}

func TestGenerateConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	client, err := NewHTTPClient(base, 0)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.Generate(context.Background(), "cv", "jd")
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %T %v", err, err)
	}
	if Placeholder(err) == "" {
		t.Fatalf("expected transport message to be shown verbatim")
	}
}

func TestGenerateTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	client, err := NewHTTPClient(srv.URL, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.Generate(context.Background(), "cv", "jd")
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %T %v", err, err)
	}
	if !strings.Contains(err.Error(), "timeout") {
		t.Fatalf("expected timeout message, got %q", err.Error())
	}
}

func TestGenerateSingleAttempt(t *testing.T) {
	calls := 0
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	})
	_, _ = client.Generate(context.Background(), "cv", "jd")
	if calls != 1 {
		t.Fatalf("expected exactly one request, got %d", calls)
	}
}

func TestNewHTTPClientRejectsBadURL(t *testing.T) {
	for _, raw := range []string{"", "not a url", "/relative"} {
		if _, err := NewHTTPClient(raw, 0); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestGenerateAsync(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"cover_letter": "Dear team"}`)
	})
	f := GenerateAsync(context.Background(), client, "cv", "jd")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	letter, err := f.Wait(ctx)
	if err != nil || letter != "Dear team" {
		t.Fatalf("unexpected outcome: %q %v", letter, err)
	}
}
