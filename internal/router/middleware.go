package router

import (
	"net/http"

	"wellness-go/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// UserLoaderMiddleware checks for an identity in the session. If found, it
// reconstructs the user and adds it to the context. A malformed session is
// cleared rather than half-trusted.
func UserLoaderMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		userID, ok := sess.Get("userID").(int)
		if !ok {
			// No user ID in session, proceed as a guest.
			c.Next()
			return
		}

		email, emailOK := sess.Get("userEmail").(string)
		if userID <= 0 || !emailOK {
			// Malformed session; clear it and treat as a guest.
			sess.Clear()
			sess.Options(sessions.Options{Path: "/", MaxAge: -1})
			sess.Save()
			c.Next()
			return
		}

		name, _ := sess.Get("userName").(string)
		c.Set("user", models.User{ID: userID, Email: email, FullName: name})
		c.Next()
	}
}

// AuthRequired checks if a valid user was loaded into the context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("user"); !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired. Please sign in again."})
			c.Abort()
			return
		}
		c.Next()
	}
}
