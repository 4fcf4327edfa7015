package service

import (
	"corehr/onboarding-api/internal/model"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AccountCleanup automatically deletes accounts that were registered
// but never verified their email before the GC deadline. Verification
// clears the deadline so verified accounts are never touched
func AccountCleanup(t time.Duration, db *gorm.DB) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Account cleanup attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			res := db.
				Where("is_email_verified = ? AND expires_at IS NOT NULL AND expires_at < ?", false, time.Now()).
				Delete(&model.User{})
			if res.Error != nil {
				zap.L().Error("Failed to clean up stale accounts", zap.Error(res.Error))
				continue
			}

			if res.RowsAffected > 0 {
				zap.L().Debug("Account cleanup finished", zap.Int64("deleted", res.RowsAffected))
			}
		}
	}()
}
