package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/idu-staffing-board/internal/middleware"
	"github.com/noah-isme/idu-staffing-board/internal/models"
)

func claimsFromContext(c *gin.Context) *models.StaffClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.StaffClaims)
	if !ok {
		return nil
	}
	return claims
}

// editorMeta names the authenticated editor of a mutation, when there is one.
func editorMeta(c *gin.Context) map[string]interface{} {
	claims := claimsFromContext(c)
	if claims == nil || claims.Name == "" {
		return nil
	}
	return map[string]interface{}{"editedBy": claims.Name}
}
