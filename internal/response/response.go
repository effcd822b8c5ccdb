// Package response holds the error body helpers and request tracing
// middleware shared by all handlers. Error bodies are always the flat
// {"error": "<message>"} shape.
package response

import "github.com/gin-gonic/gin"

// Canonical client-facing error messages.
const (
	MsgNotFound    = "not found"
	MsgFileMissing = "file missing"
	MsgInvalidID   = "invalid course id"
	MsgInternal    = "internal error"
)

// Error sends a structured error body with the given status code.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

// AbortError aborts the middleware chain and sends an error body.
func AbortError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{"error": message})
}
