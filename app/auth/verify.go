package auth

import (
	"corehr/onboarding-api/internal"
	"corehr/onboarding-api/internal/model"
	"corehr/onboarding-api/pkg/security"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VerifyEmail consumes a verification token from the mailed link. The
// token is matched by its deterministic hash, and success clears the
// stored hash and expiry so it can never verify twice
func VerifyEmail(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	plain := c.Param("token")
	if plain == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":   false,
			"error":     "No verification token provided",
			"requestID": requestID,
		})
		return
	}

	var user model.User

	err := d.DB.
		Where("email_verification_token_hash = ? AND email_verification_token_expiry > ?",
			security.HashToken(plain), time.Now()).
		First(&user).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success":   false,
				"error":     "Invalid or expired token",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up verification token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !security.VerifyToken(plain, user.EmailVerificationTokenHash, user.EmailVerificationTokenExpiry) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":   false,
			"error":     "Invalid or expired token",
			"requestID": requestID,
		})
		return
	}

	err = d.DB.Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"is_email_verified":               true,
			"email_verification_token_hash":   nil,
			"email_verification_token_expiry": nil,
			"expires_at":                      nil,
		}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to mark email as verified", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Email verified successfully",
		"userId":  user.ID,
		"email":   user.Email,
	})
}
