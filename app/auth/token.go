package auth

import (
	"corehr/onboarding-api/internal/model"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	v "github.com/spf13/viper"
)

const sessionTTL = time.Hour * 24 * 30

func makeSessionToken(u *model.User) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": u.ID,
		"role":    u.Role,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(sessionTTL).Unix(),
	})

	return t.SignedString([]byte(v.GetString("jwt.secret")))
}

// sendTokenResponse issues a signed session token and writes it out
// with a minimal profile. The password hash never leaves the server
func sendTokenResponse(c *gin.Context, u *model.User, status int) error {
	token, err := makeSessionToken(u)
	if err != nil {
		return err
	}

	c.JSON(status, gin.H{
		"success": true,
		"token":   token,
		"user": gin.H{
			"id":        u.ID,
			"firstName": u.FirstName,
			"lastName":  u.LastName,
			"email":     u.Email,
			"role":      u.Role,
		},
	})

	return nil
}
