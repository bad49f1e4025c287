package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		wantStatus int
		wantOrigin string
		wantCreds  string
	}{
		{name: "preflight allowed", allowed: []string{"http://localhost:5173"}, method: http.MethodOptions, origin: "http://localhost:5173", wantStatus: http.StatusNoContent, wantOrigin: "http://localhost:5173", wantCreds: "true"},
		{name: "post allowed", allowed: []string{"http://localhost:5173"}, method: http.MethodPost, origin: "http://localhost:5173", wantStatus: http.StatusOK, wantOrigin: "http://localhost:5173", wantCreds: "true"},
		{name: "unknown origin", allowed: []string{"http://localhost:5173"}, method: http.MethodPost, origin: "http://evil.example", wantStatus: http.StatusOK},
		{name: "wildcard", allowed: []string{"*"}, method: http.MethodPost, origin: "http://any.example", wantStatus: http.StatusOK, wantOrigin: "*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CORS(tt.allowed))
			router.POST("/generate-cover-letter", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"ok": true})
			})

			req := httptest.NewRequest(tt.method, "/generate-cover-letter", nil)
			req.Header.Set("Origin", tt.origin)
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, resp.Code)
			}
			if got := resp.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Fatalf("unexpected allow origin: %q", got)
			}
			if got := resp.Header().Get("Access-Control-Allow-Credentials"); got != tt.wantCreds {
				t.Fatalf("unexpected allow credentials: %q", got)
			}
		})
	}
}
