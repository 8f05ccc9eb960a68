package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vinimqsz/projeto-eng-software/internal/api/middleware"
	"github.com/vinimqsz/projeto-eng-software/pkg/response"
)

// MustGetUserID extracts the caller injected by JWTAuth.
// On failure it writes 401 and returns false; callers should return at once.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.CtxUserID)
	if !exists {
		response.Unauthorized(c, 11002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 11002, "not authenticated")
		return "", false
	}
	return s, true
}

// tokenOf returns the token id and expiry of the current request, zero values
// when absent.
func tokenOf(c *gin.Context) (string, time.Time) {
	jti := c.GetString(middleware.CtxTokenID)
	exp, _ := c.Get(middleware.CtxTokenExp)
	t, _ := exp.(time.Time)
	return jti, t
}
