package service

import (
	"corehr/onboarding-api/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestAccountCleanupDeletesOnlyStaleUnverified(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:TestAccountCleanup?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.User{}, model.Company{}, model.Department{}))

	company := model.Company{ID: "comp", Name: "Acme", CompanyID: "C1", EmployeesCount: "11-50"}
	require.NoError(t, db.Create(&company).Error)

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	users := []model.User{
		{ID: "stale", Email: "stale@x.com", FirstName: "A", LastName: "B", PasswordHash: "x", CompanyID: company.ID, ExpiresAt: &past},
		{ID: "fresh", Email: "fresh@x.com", FirstName: "A", LastName: "B", PasswordHash: "x", CompanyID: company.ID, ExpiresAt: &future},
		// A leftover deadline must never delete a verified account
		{ID: "verified", Email: "verified@x.com", FirstName: "A", LastName: "B", PasswordHash: "x", CompanyID: company.ID, IsEmailVerified: true, ExpiresAt: &past},
	}
	require.NoError(t, db.Create(&users).Error)

	AccountCleanup(10*time.Millisecond, db)

	require.Eventually(t, func() bool {
		var n int64
		err := db.Model(model.User{}).Where("id = ?", "stale").Count(&n).Error
		return err == nil && n == 0
	}, 2*time.Second, 20*time.Millisecond, "expected the stale unverified account to be deleted")

	var remaining []model.User
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 2)
	for _, u := range remaining {
		assert.NotEqual(t, "stale", u.ID)
	}
}
