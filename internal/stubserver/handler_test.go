package stubserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"coverletter/internal/cvsections"
	"coverletter/internal/generation"
	"coverletter/internal/shared/server/middleware"
)

func postJSON(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, generation.Path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestGenerateReturnsMockLetter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(Options{})

	resp := postJSON(r, `{"cv_text":"Alice","job_description":"Go developer"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["cover_letter"] != MockLetter {
		t.Fatalf("unexpected letter: %v", body["cover_letter"])
	}
	if _, ok := body["sections"]; ok {
		t.Fatalf("sections should be omitted when not verbose: %s", resp.Body.String())
	}
}

func TestGenerateRejectsMalformedBodies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(Options{})

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "cv"},
		{name: "wrong type", body: `{"cv_text":1,"job_description":"x"}`},
		{name: "missing job description", body: `{"cv_text":"x"}`},
		{name: "missing cv text", body: `{"job_description":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(r, tt.body)
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.Code)
			}
			if !strings.Contains(resp.Body.String(), `"code":"invalid_request"`) {
				t.Fatalf("unexpected body: %s", resp.Body.String())
			}
		})
	}
}

func TestGenerateVerboseListsSections(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(Options{Verbose: true})

	cv := "Alice\nEducation\nMIT\nSkills\nGo, SQL\n"
	payload, _ := json.Marshal(map[string]string{"cv_text": cv, "job_description": ""})
	resp := postJSON(r, string(payload))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body generateResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if want := []string{cvsections.Education, cvsections.Skills}; !reflect.DeepEqual(body.Sections, want) {
		t.Fatalf("sections = %v, want %v", body.Sections, want)
	}
}

func TestGenerateRateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(Options{RateLimit: middleware.RateLimitRule{Rate: 0.001, Burst: 1}})

	body := `{"cv_text":"","job_description":""}`
	if resp := postJSON(r, body); resp.Code != http.StatusOK {
		t.Fatalf("first request expected 200, got %d", resp.Code)
	}
	if resp := postJSON(r, body); resp.Code != http.StatusTooManyRequests {
		t.Fatalf("second request expected 429, got %d", resp.Code)
	}
}

func TestHTTPClientAgainstStub(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(NewRouter(Options{}))
	defer srv.Close()

	client, err := generation.NewHTTPClient(srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	letter, err := client.Generate(context.Background(), "Alice\nEngineer\n", "Backend role")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if letter != MockLetter {
		t.Fatalf("unexpected letter: %q", letter)
	}
}
