package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inkpost/inkpost/internal/container"
	repo "github.com/inkpost/inkpost/internal/domain/repository"
	handlers "github.com/inkpost/inkpost/internal/interface/http"
	"github.com/inkpost/inkpost/internal/interface/middleware"
	"github.com/inkpost/inkpost/pkg/helpers"
)

// AuthModule wires registration, login, and the protected profile route.
// Public: POST /api/auth/register, POST /api/auth/login
// Protected: GET /api/auth/profile
type AuthModule struct {
	Handler *handlers.AuthHandler
	Users   repo.UserRepository
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, users repo.UserRepository, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, Users: users, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Users, m.JWT))
	{
		auth.GET("/auth/profile", m.Handler.GetProfile)
	}
}
