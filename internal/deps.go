package internal

import (
	"corehr/onboarding-api/internal/service"
	"corehr/onboarding-api/pkg/security"

	"gorm.io/gorm"
)

// Deps holds everything handlers need. Constructed once in the router
// and passed explicitly, never reached through globals
type Deps struct {
	DB     *gorm.DB
	Hasher *security.Hasher
	Mail   service.Mailer
}
