package company

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
	Name           *string `json:"name,omitempty"`
	EmployeesCount *string `json:"employeesCount,omitempty"`
}

// Update edits a company record. Callers may only touch their own
// tenant unless they're an admin
func Update(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("user").(model.User)

	var company model.Company

	err := d.DB.Where("id = ?", c.Param("id")).First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success":   false,
				"error":     "Company not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch company", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if user.CompanyID != company.ID && user.Role != model.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{
			"success":   false,
			"error":     "Not authorized to update this company",
			"requestID": requestID,
		})
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

	if data.Name == nil && data.EmployeesCount == nil {
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
		company.Name = *data.Name
	}

	if data.EmployeesCount != nil {
		if err := validators.EmployeesCountValidator(*data.EmployeesCount); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success":   false,
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}
		company.EmployeesCount = *data.EmployeesCount
	}

	err = d.DB.Model(&model.Company{}).
		Where("id = ?", company.ID).
		Updates(map[string]any{
			"name":            company.Name,
			"employees_count": company.EmployeesCount,
		}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success":   false,
				"error":     "Company name already registered",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update company", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    company,
	})
}
