package department

import (
	"corehr/onboarding-api/internal"
	"corehr/onboarding-api/internal/model"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Delete removes a department owned by the caller's company
func Delete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("user").(model.User)

	department, ok := fetchOwned(c, d, user, requestID)
	if !ok {
		return
	}

	if err := d.DB.Delete(&model.Department{}, "id = ?", department.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete department", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{},
	})
}
