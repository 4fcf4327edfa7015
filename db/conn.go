// Package db contains things related to database setup
package db

import (
	"corehr/onboarding-api/internal/model"
	"fmt"

	v "github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New opens the configured database and migrates the schema. The
// unique indexes created here are the backstop for every duplicate
// check done in the handlers
func New() (*gorm.DB, error) {
	var dial gorm.Dialector

	switch v.GetString("db.driver") {
	case "postgres":
		dial = postgres.Open(v.GetString("db.dsn"))
	default:
		dial = sqlite.Open(v.GetString("db.path"))
	}

	db, err := gorm.Open(dial, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	err = db.AutoMigrate(model.User{}, model.Company{}, model.Department{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
