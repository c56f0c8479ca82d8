package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/devxkamlesh/dailyos-payments/internal/server/http/dto"
	"github.com/devxkamlesh/dailyos-payments/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) string {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return ""
	}
	id, _ := val.(string)
	return id
}

func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Success: false, Error: message})
}
