package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Logout is stateless. The server keeps no session table, so the
// client discards its token and this just acknowledges
func Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{},
	})
}
