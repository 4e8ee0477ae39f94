package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const userCtxKey = "userId"

var errUserGone = errors.New("token user no longer exists")

const (
	msgMissingAuthHeader = "missing Authorization header"
	msgBadAuthHeader     = "invalid Authorization header format"
	msgBadToken          = "invalid or expired token"
)

// userIdMiddleware resolves the caller identity from the bearer token.
// The token's subject alone is not proof the user still exists, so the
// id is re-resolved against the user store before the request proceeds.
func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": msgMissingAuthHeader})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": msgBadAuthHeader})
		return
	}

	userId, err := h.resolveUser(parts[1])
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_token_rejected", "err", err)
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": msgBadToken})
		return
	}

	// store in Gin context
	c.Set(userCtxKey, userId)
	c.Next()
}

// resolveUser parses the token and checks the embedded id still maps to
// a user. Any failure collapses to an auth error for the client.
func (h *Handler) resolveUser(accessToken string) (int, error) {
	userId, err := h.services.ParseToken(accessToken)
	if err != nil {
		return 0, err
	}
	u, err := h.services.UserByID(userId)
	if err != nil {
		return 0, err
	}
	if u == nil {
		return 0, errUserGone
	}
	return userId, nil
}

// userID reads the authenticated user id stored by userIdMiddleware.
func userID(c *gin.Context) int {
	return c.GetInt(userCtxKey)
}
