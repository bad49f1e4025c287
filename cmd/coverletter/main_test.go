package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"coverletter/internal/extract/extracttest"
	"coverletter/internal/ocr"
	"coverletter/internal/shared/config"
	"coverletter/internal/stubserver"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{name: "cv only", args: []string{"-cv", "resume.pdf"}},
		{name: "cv and jd text", args: []string{"-cv", "resume.pdf", "-jd-text", "Go role", "-html"}},
		{name: "missing cv", args: []string{"-jd-text", "Go role"}, wantErr: true},
		{name: "both jd forms", args: []string{"-cv", "a.pdf", "-jd", "jd.txt", "-jd-text", "x"}, wantErr: true},
		{name: "unknown flag", args: []string{"-cv", "a.pdf", "-model", "x"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags(tt.args, io.Discard)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFlags(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
		})
	}
}

func testConfig(t *testing.T, baseURL string) config.Config {
	t.Helper()
	return config.Config{
		GenerationBaseURL: baseURL,
		GenerationTimeout: 5 * time.Second,
		OCRLanguages:      []string{"eng"},
		StagingDir:        t.TempDir(),
		LogLevel:          "error",
	}
}

func TestRunPrintsLetter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(stubserver.NewRouter(stubserver.Options{}))
	defer srv.Close()

	cv := extracttest.WriteFile(t, "resume.pdf", extracttest.BuildPDF("Education", "MIT"))
	jd := filepath.Join(t.TempDir(), "jd.txt")
	if err := os.WriteFile(jd, []byte("Backend engineer"), 0o644); err != nil {
		t.Fatalf("write jd: %v", err)
	}

	var stdout, stderr bytes.Buffer
	opts := cliOptions{cvPath: cv, jdPath: jd, sections: true}
	if err := run(context.Background(), testConfig(t, srv.URL), opts, ocr.PlaceholderRecognizer{}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v (stderr %q)", err, stderr.String())
	}

	out := stdout.String()
	if !strings.HasSuffix(out, stubserver.MockLetter+"\n") {
		t.Fatalf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "== Education ==\nMIT") {
		t.Fatalf("missing sections: %q", out)
	}
}

func TestRunReportsGenerationFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cv := extracttest.WriteFile(t, "notes.txt", []byte("plain"))
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), testConfig(t, srv.URL), cliOptions{cvPath: cv}, nil, &stdout, &stderr)
	if err == nil || !strings.Contains(err.Error(), "unexpected status 502") {
		t.Fatalf("expected status error, got %v", err)
	}
	if !strings.Contains(stderr.String(), "Unsupported file type.") {
		t.Fatalf("expected extraction warning, got %q", stderr.String())
	}
}
