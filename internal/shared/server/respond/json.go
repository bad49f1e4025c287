package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}

// BadRequest reports a malformed request body.
func BadRequest(c *gin.Context, err error) {
	Error(c, http.StatusBadRequest, "invalid_request", "Request body must be a JSON object with cv_text and job_description strings", gin.H{"reason": err.Error()})
}
