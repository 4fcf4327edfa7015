// Package app wires the HTTP surface together
package app

import (
	"corehr/onboarding-api/app/auth"
	"corehr/onboarding-api/app/company"
	"corehr/onboarding-api/app/department"
	"corehr/onboarding-api/app/root"
	"corehr/onboarding-api/app/user"
	"corehr/onboarding-api/db"
	"corehr/onboarding-api/internal"
	"corehr/onboarding-api/internal/model"
	"corehr/onboarding-api/internal/service"
	"corehr/onboarding-api/pkg/middleware"
	"corehr/onboarding-api/pkg/security"
	"fmt"
	"strings"
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
)

var store = persist.NewMemoryStore(time.Minute)

// NewRouter builds the production router: opens the configured
// database, constructs the dependency set and attaches background
// cleanup
func NewRouter() (*gin.Engine, error) {
	conn, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	d := &internal.Deps{
		DB:     conn,
		Hasher: security.NewHasher(),
		Mail:   service.NewMailer(),
	}

	service.AccountCleanup(time.Duration(v.GetInt("cleanup.interval_minutes"))*time.Minute, conn)

	return NewRouterWithDeps(d), nil
}

// NewRouterWithDeps wires the routes around an explicit dependency
// set. Tests use this directly with an in-memory database and a fake
// mailer
func NewRouterWithDeps(d *internal.Deps) *gin.Engine {
	router := gin.New()

	origins := strings.Split(v.GetString("host.cors"), ",")

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		ginzap.RecoveryWithZap(zap.L(), true),
		middleware.NewRequestIDMiddleware(),
		ginzap.Ginzap(zap.L(), time.RFC3339, true),
	)

	router.HandleMethodNotAllowed = true

	rateLimit := v.GetInt("security.rate_limit")

	session := middleware.NewAuthMiddleware(d.DB)
	adminOnly := middleware.RequireRoles(model.RoleAdmin)
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: rateLimit,
		Burst:             rateLimit * 2,
		CleanupInterval:   time.Second,
	})

	m := router.Group("/api", rateLimiter)
	{
		// HEAD /api/heartbeat		-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)
	}

	a := m.Group("/auth")
	{
		// POST /api/auth/register			-> Registers a new user and company
		a.POST("/register", func(c *gin.Context) { auth.Register(c, d) })

		// GET /api/auth/verify-email/:token		-> Consumes an emailed verification token
		a.GET("/verify-email/:token", func(c *gin.Context) { auth.VerifyEmail(c, d) })

		// PUT /api/auth/create-password		-> Sets the real password after verification
		a.PUT("/create-password", func(c *gin.Context) { auth.CreatePassword(c, d) })

		// POST /api/auth/login				-> Logs in a user and returns a session token
		a.POST("/login", func(c *gin.Context) { auth.Login(c, d) })

		// POST /api/auth/resend-verification		-> Issues and mails a fresh verification token
		a.POST("/resend-verification", func(c *gin.Context) { auth.ResendVerification(c, d) })

		// PUT /api/auth/update-email			-> Replaces the email, back through verification
		a.PUT("/update-email", func(c *gin.Context) { auth.UpdateEmail(c, d) })

		// GET /api/auth/logout				-> Stateless logout ack
		a.GET("/logout", session, auth.Logout)
	}

	u := m.Group("/users", session)
	{
		// GET /api/users/me		-> Returns the caller's profile
		u.GET("/me", func(c *gin.Context) { user.Me(c, d) })

		// PUT /api/users/me		-> Updates profile details
		u.PUT("/me", func(c *gin.Context) { user.Update(c, d) })

		// PUT /api/users/password	-> Changes the password
		u.PUT("/password", func(c *gin.Context) { user.UpdatePassword(c, d) })
	}

	co := m.Group("/companies", session)
	{
		// GET /api/companies		-> Lists every company (admin)
		co.GET("", adminOnly, func(c *gin.Context) { company.List(c, d) })

		// GET /api/companies/:id	-> Returns a company record
		co.GET("/:id", cacheFor(15), func(c *gin.Context) { company.Fetch(c, d) })

		// PUT /api/companies/:id	-> Updates a company (own tenant or admin)
		co.PUT("/:id", func(c *gin.Context) { company.Update(c, d) })
	}

	de := m.Group("/departments", session)
	{
		// GET /api/departments		-> Lists the caller's departments
		de.GET("", func(c *gin.Context) { department.List(c, d) })

		// POST /api/departments	-> Creates a department in the caller's company
		de.POST("", func(c *gin.Context) { department.Create(c, d) })

		// PUT /api/departments/:id	-> Updates an owned department
		de.PUT("/:id", func(c *gin.Context) { department.Update(c, d) })

		// DELETE /api/departments/:id	-> Deletes an owned department
		de.DELETE("/:id", func(c *gin.Context) { department.Delete(c, d) })
	}

	return router
}

func cacheFor(seconds int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Duration(seconds)*time.Second)
}
