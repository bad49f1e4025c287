// Package stubserver answers cover letter generation requests locally with a
// fixed letter, for exercising the client without the real generator.
package stubserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coverletter/internal/cvsections"
	"coverletter/internal/generation"
	"coverletter/internal/shared/metrics"
	"coverletter/internal/shared/server"
	"coverletter/internal/shared/server/middleware"
	"coverletter/internal/shared/server/respond"
	"coverletter/internal/shared/telemetry"
)

// MockLetter is returned for every well-formed request.
const MockLetter = "This is a mock cover letter based on your CV and job description."

// Options configures the stub router.
type Options struct {
	CORSAllowOrigins []string
	RateLimit        middleware.RateLimitRule
	// Verbose adds the résumé sections found in cv_text to each response.
	Verbose bool
}

type generateRequest struct {
	CVText         *string `json:"cv_text"`
	JobDescription *string `json:"job_description"`
}

type generateResponse struct {
	CoverLetter string   `json:"cover_letter"`
	Sections    []string `json:"sections,omitempty"`
}

// NewRouter returns the stub engine.
func NewRouter(opts Options) *gin.Engine {
	r := server.NewEngine(opts.CORSAllowOrigins)
	h := &handler{verbose: opts.Verbose}
	r.POST(generation.Path, middleware.RateLimit(middleware.NewRateLimiter(nil), opts.RateLimit), h.generate)
	return r
}

type handler struct {
	verbose bool
}

func (h *handler) generate(c *gin.Context) {
	metrics.IncStubRequests()

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	if req.CVText == nil || req.JobDescription == nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "cv_text and job_description are required", nil)
		return
	}
	middleware.SetPayloadSizes(c, len(*req.CVText), len(*req.JobDescription))

	resp := generateResponse{CoverLetter: MockLetter}
	if h.verbose {
		resp.Sections = cvsections.Extract(*req.CVText).Found()
		telemetry.Debug("stub.sections", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"sections":   resp.Sections,
		})
	}
	respond.OK(c, resp)
}
