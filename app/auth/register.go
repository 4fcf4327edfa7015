package auth

import (
	"corehr/onboarding-api/internal"
	"corehr/onboarding-api/internal/model"
	"corehr/onboarding-api/internal/service"
	"corehr/onboarding-api/pkg/security"
	"corehr/onboarding-api/pkg/validators"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

type registerCompany struct {
	CompanyID      string `json:"companyId"`
	EmployeesCount string `json:"employeesCount"`
	Name           string `json:"name"`
}

type registerBody struct {
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
	Email       string          `json:"email"`
	PhoneNumber string          `json:"phoneNumber"`
	Company     registerCompany `json:"company"`
}

func verificationTTL() time.Duration {
	return time.Duration(v.GetInt("security.verification_ttl_minutes")) * time.Minute
}

// Register creates the company (if its companyId is unseen), the user
// with a random unusable placeholder password, and mails a verification
// link. The real password is only set after verification via the
// create-password step
func Register(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data registerBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":   false,
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validateRegistration(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":   false,
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	var found bool

	r := d.DB.Model(model.User{}).
		Select("count(*) > 0").
		Where("email = ?", data.Email).
		First(&found)
	if r.Error != nil && r.Error != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check if user is registered", zap.Error(r.Error), zap.String("requestID", requestID))
		return
	}

	if found {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":   false,
			"error":     "Email already registered",
			"requestID": requestID,
		})
		return
	}

	company, err := findOrCreateCompany(d.DB, &data)
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

		zap.L().Error("Failed to resolve company", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// The placeholder password is random and thrown away, so the
	// account can't be logged into before create-password
	hash, err := d.Hasher.GenerateFromPassword(randomPassword())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to hash placeholder password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	userID, err := gonanoid.Generate(idCharset, 16)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate user ID", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	verifToken, err := security.MakeVerificationToken(verificationTTL())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate verification token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	gcDeadline := time.Now().Add(time.Hour * 24 * time.Duration(v.GetInt("cleanup.retention_days")))

	user := model.User{
		ID:                           userID,
		Email:                        data.Email,
		FirstName:                    data.FirstName,
		LastName:                     data.LastName,
		PhoneNumber:                  data.PhoneNumber,
		PasswordHash:                 hash,
		Role:                         model.RoleUser,
		EmailVerificationTokenHash:   &verifToken.Hash,
		EmailVerificationTokenExpiry: &verifToken.ExpiresAt,
		ExpiresAt:                    &gcDeadline,
		CompanyID:                    company.ID,
	}

	if err := d.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success":   false,
				"error":     "Email already registered",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// Mail failure leaves the user row in place. Verification can be
	// retried through resend-verification
	if err := service.SendVerificationMail(d.Mail, user.Email, verifToken.Plain); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"error":     "Email could not be sent",
			"requestID": requestID,
		})

		zap.L().Error("Failed to send verification email", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Verification email sent",
	})
}

func validateRegistration(data *registerBody) error {
	if err := validators.EmailValidator(data.Email); err != nil {
		return err
	}

	if data.FirstName == "" || data.LastName == "" {
		return errors.New("first and last name are required")
	}

	if data.Company.CompanyID == "" {
		return validators.ErrCompanyIDEmpty
	}

	return validators.EmployeesCountValidator(data.Company.EmployeesCount)
}

// findOrCreateCompany looks up the tenant by its external companyId and
// creates it on first registration. Two concurrent registrations with
// the same new companyId can both miss the lookup, so the loser of the
// insert retries as a lookup. A duplicate key error that survives the
// retry means the collision was on the company name
func findOrCreateCompany(db *gorm.DB, data *registerBody) (*model.Company, error) {
	var company model.Company

	err := db.Where("company_id = ?", data.Company.CompanyID).First(&company).Error
	if err == nil {
		return &company, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	name := data.Company.Name
	if name == "" {
		name = fmt.Sprintf("%s's Company", data.FirstName)
	}

	companyID, err := gonanoid.Generate(idCharset, 16)
	if err != nil {
		return nil, err
	}

	company = model.Company{
		ID:             companyID,
		Name:           name,
		CompanyID:      data.Company.CompanyID,
		EmployeesCount: data.Company.EmployeesCount,
	}

	err = db.Create(&company).Error
	if err == nil {
		return &company, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}

	var existing model.Company
	if lookupErr := db.Where("company_id = ?", data.Company.CompanyID).First(&existing).Error; lookupErr == nil {
		return &existing, nil
	}

	return nil, err
}

func randomPassword() string {
	b := make([]byte, 20)
	rand.Read(b)
	return hex.EncodeToString(b)
}
