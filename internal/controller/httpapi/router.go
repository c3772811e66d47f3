package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps зависимости HTTP слоя
type Deps struct {
	Professionals ProfessionalService
	Sessions      SessionService
	Booking       BookingService
	Auth          AuthService
	RateLimiter   *RateLimiter
	Location      *time.Location
	Logger        *zap.Logger
}

// NewRouter собирает gin engine со всеми маршрутами
func NewRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(Recovery(deps.Logger))
	router.Use(RequestID())
	router.Use(AccessLog(deps.Logger))
	router.Use(CORS())
	if deps.RateLimiter != nil {
		router.Use(deps.RateLimiter.Middleware(deps.Logger))
	}

	professionals := NewProfessionalHandler(deps.Professionals, deps.Logger)
	sessions := NewSessionHandler(deps.Sessions, deps.Booking, deps.Location, deps.Logger)
	auth := NewAuthHandler(deps.Auth, deps.Logger)
	requireAuth := Authenticate(deps.Auth, deps.Logger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/login", auth.Login)

	p := router.Group("/professionals")
	{
		p.POST("", professionals.Create)
		p.GET("", professionals.Find)
		p.GET("/:id", professionals.FindOne)
		p.PUT("/:id", professionals.Update)
		p.DELETE("/:id", professionals.Destroy)
	}

	s := router.Group("/sessions")
	{
		s.POST("", requireAuth, sessions.Create)
		s.GET("", sessions.Find)
		s.GET("/available", sessions.FindAvailable)
		s.GET("/:id", sessions.FindOne)
		s.DELETE("/:id", requireAuth, sessions.Destroy)
		s.PUT("/:id/schedule", sessions.Schedule)
	}

	return router
}
