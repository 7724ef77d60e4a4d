package handlers

import (
	"errors"
	"net/http"

	"wellness-go/internal/client"

	"github.com/gin-gonic/gin"
)

// respondError maps the engine's error taxonomy onto HTTP statuses. A bad
// session is fatal to the flow and tells the user to sign in again; a
// transport failure on a user-initiated write is a blocking 502.
func respondError(c *gin.Context, err error) {
	if errors.Is(err, client.ErrSessionInvalid) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired. Please sign in again."})
		return
	}
	if client.IsTransport(err) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "The wellness service is unreachable. Your action was not saved."})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
