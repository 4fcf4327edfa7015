package department

import (
	"corehr/onboarding-api/internal"
	"corehr/onboarding-api/internal/model"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// List returns the departments of the caller's company
func List(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("user").(model.User)

	var departments []model.Department

	err := d.DB.
		Where("company_id = ?", user.CompanyID).
		Order("created_at desc").
		Find(&departments).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list departments", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(departments),
		"data":    departments,
	})
}
