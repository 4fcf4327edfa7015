package model

import "time"

type Department struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `json:"email,omitempty"`
	Lead      string    `json:"lead,omitempty"`
	CompanyID string    `gorm:"index;not null" json:"companyId"`
	CreatedAt time.Time `json:"createdAt"`
}
