package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"learnhub/internal/infrastructure/security"
)

const (
	SessionCookie = "learnhub_session"
	SessionKey    = "sessionId"
)

// Session attaches a dashboard session id to every request. A missing or
// invalid cookie starts a new session; a valid one is re-issued once half
// of its lifetime has passed, so an active visitor keeps the same id.
func Session(tokens *security.SessionTokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, err := c.Cookie(SessionCookie); err == nil {
			id, renewed, err := tokens.Renew(raw)
			if err == nil {
				if renewed != "" {
					setSessionCookie(c, tokens, renewed)
				}
				c.Set(SessionKey, id)
				c.Next()
				return
			}
		}

		id := uuid.New().String()
		token, err := tokens.Generate(id)
		if err != nil {
			log.Printf("Failed to sign session token: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Session unavailable"})
			return
		}

		setSessionCookie(c, tokens, token)
		c.Set(SessionKey, id)
		c.Next()
	}
}

func setSessionCookie(c *gin.Context, tokens *security.SessionTokens, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(tokens.TTL().Seconds()), "/", "", false, true)
}
