package user

import (
	"corehr/onboarding-api/internal"
	"corehr/onboarding-api/internal/model"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Me returns the profile of the authenticated user
func Me(c *gin.Context, d *internal.Deps) {
	user := c.MustGet("user").(model.User)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}
