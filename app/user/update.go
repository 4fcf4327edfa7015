package user

import (
	"corehr/onboarding-api/internal"
	"corehr/onboarding-api/internal/model"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type updateBody struct {
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
}

// Update changes profile details. Email changes go through the
// update-email flow instead since they re-trigger verification
func Update(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("user").(model.User)

	var data updateBody
	if err := c.BindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":   false,
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})
		return
	}

	if data.FirstName == nil && data.LastName == nil && data.PhoneNumber == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":   false,
			"error":     "No fields to update",
			"requestID": requestID,
		})
		return
	}

	if data.FirstName != nil {
		if *data.FirstName == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"success":   false,
				"error":     "First name can't be empty",
				"requestID": requestID,
			})
			return
		}
		user.FirstName = *data.FirstName
	}

	if data.LastName != nil {
		if *data.LastName == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"success":   false,
				"error":     "Last name can't be empty",
				"requestID": requestID,
			})
			return
		}
		user.LastName = *data.LastName
	}

	if data.PhoneNumber != nil {
		user.PhoneNumber = *data.PhoneNumber
	}

	err := d.DB.Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"first_name":   user.FirstName,
			"last_name":    user.LastName,
			"phone_number": user.PhoneNumber,
		}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}
