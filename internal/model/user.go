package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	FirstName    string `gorm:"not null" json:"firstName"`
	LastName     string `gorm:"not null" json:"lastName"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:user" json:"role"`

	IsEmailVerified              bool       `gorm:"default:false" json:"isEmailVerified"`
	EmailVerificationTokenHash   *string    `gorm:"index" json:"-"`
	EmailVerificationTokenExpiry *time.Time `json:"-"`

	// Unverified accounts are garbage collected after this deadline.
	// Cleared once the email is verified
	ExpiresAt *time.Time `json:"-"`

	CompanyID string  `gorm:"index;not null" json:"companyId"`
	Company   Company `gorm:"foreignKey:CompanyID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}
