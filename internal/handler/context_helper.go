package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Muazzam0101/neurolearn-amep/internal/middleware"
	"github.com/Muazzam0101/neurolearn-amep/internal/models"
)

// claimsFromContext pulls the verified JWT claims the auth middleware
// stored. Nil means the route was reached without passing through it.
func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, _ := value.(*models.JWTClaims)
	return claims
}
