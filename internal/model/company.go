package model

import "time"

type Company struct {
	ID   string `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	// External tenant key, e.g. a company registration number
	CompanyID string `gorm:"uniqueIndex;not null" json:"companyId"`

	EmployeesCount string    `gorm:"not null" json:"employeesCount"`
	CreatedAt      time.Time `json:"createdAt"`

	Users       []User       `gorm:"foreignKey:CompanyID" json:"-"`
	Departments []Department `gorm:"foreignKey:CompanyID" json:"-"`
}
