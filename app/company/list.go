package company

import (
	"corehr/onboarding-api/internal"
	"corehr/onboarding-api/internal/model"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// List returns every company. Admin only, the route gates on role
func List(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var companies []model.Company

	if err := d.DB.Find(&companies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list companies", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(companies),
		"data":    companies,
	})
}
