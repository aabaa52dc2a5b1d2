package util

import (
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// SafeErrorResponse writes {"error": userMessage}. The underlying error is
// always logged but only echoed back as "details" outside release mode.
func SafeErrorResponse(c *gin.Context, statusCode int, userMessage string, err error) {
	if err != nil {
		log.Error("Request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "status", statusCode, "err", err)
	}

	response := gin.H{
		"error": userMessage,
	}

	if gin.Mode() != gin.ReleaseMode && err != nil {
		response["details"] = err.Error()
	}

	c.AbortWithStatusJSON(statusCode, response)
}
