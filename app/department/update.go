package department

import (
	"corehr/onboarding-api/internal"
	"corehr/onboarding-api/internal/model"
	"corehr/onboarding-api/pkg/validators"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type updateBody struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Lead  *string `json:"lead,omitempty"`
}

// Update edits a department owned by the caller's company
func Update(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("user").(model.User)

	department, ok := fetchOwned(c, d, user, requestID)
	if !ok {
		return
	}

	var data updateBody
	if err := c.BindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":   false,
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})
		return
	}

	if data.Name == nil && data.Email == nil && data.Lead == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":   false,
			"error":     "No fields to update",
			"requestID": requestID,
		})
		return
	}

	if data.Name != nil {
		if err := validators.NameValidator(*data.Name); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success":   false,
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}
		department.Name = *data.Name
	}

	if data.Email != nil {
		if *data.Email != "" {
			if err := validators.EmailValidator(*data.Email); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"success":   false,
					"error":     err.Error(),
					"requestID": requestID,
				})
				return
			}
		}
		department.Email = *data.Email
	}

	if data.Lead != nil {
		department.Lead = *data.Lead
	}

	err := d.DB.Model(&model.Department{}).
		Where("id = ?", department.ID).
		Updates(map[string]any{
			"name":  department.Name,
			"email": department.Email,
			"lead":  department.Lead,
		}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update department", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    department,
	})
}

// fetchOwned loads the department and enforces the tenant boundary.
// Writes the error response itself when ok is false
func fetchOwned(c *gin.Context, d *internal.Deps, user model.User, requestID string) (*model.Department, bool) {
	var department model.Department

	err := d.DB.Where("id = ?", c.Param("id")).First(&department).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success":   false,
				"error":     "Department not found",
				"requestID": requestID,
			})
			return nil, false
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch department", zap.Error(err), zap.String("requestID", requestID))
		return nil, false
	}

	if department.CompanyID != user.CompanyID {
		c.JSON(http.StatusForbidden, gin.H{
			"success":   false,
			"error":     "Not authorized to access this department",
			"requestID": requestID,
		})
		return nil, false
	}

	return &department, true
}
