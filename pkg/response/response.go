package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/Muazzam0101/neurolearn-amep/pkg/errors"
)

// JSON sends a success payload as-is.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, payload)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusCreated, payload)
}

// Message sends a bare {"message": ...} body.
func Message(c *gin.Context, status int, message string) {
	JSON(c, status, gin.H{"message": message})
}

// Error converts the error into the common shape. Error bodies carry a
// short human-readable message only, never codes or internals.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, gin.H{"message": appErr.Message})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
