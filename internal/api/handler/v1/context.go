package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/expopass/expopass-api/internal/api/middleware"
)

// currentUserID reads the authenticated user's ID set by the JWT
// middleware.
func currentUserID(ctx *gin.Context) (uint, bool) {
	v, ok := ctx.Get(middleware.ContextKeyUserID)
	if !ok {
		return 0, false
	}

	id, ok := v.(uint)
	if !ok || id == 0 {
		return 0, false
	}

	return id, true
}
