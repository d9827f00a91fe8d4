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

// BlogModule wires blog routes. Reads are public; every mutation sits behind
// the session verifier.
type BlogModule struct {
	Handler *handlers.BlogHandler
	Users   repo.UserRepository
	JWT     *helpers.JWTManager
}

func NewBlogModule(h *handlers.BlogHandler, users repo.UserRepository, jwt *helpers.JWTManager) *BlogModule {
	return &BlogModule{Handler: h, Users: users, JWT: jwt}
}

func (m *BlogModule) Register(rg *gin.RouterGroup) {
	rg.GET("/blogs", m.Handler.List)
	rg.GET("/blogs/tags", m.Handler.Tags)
	rg.GET("/blogs/search", m.Handler.Search)
	rg.GET("/blogs/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Users, m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()))
	{
		auth.GET("/blogs/user/blogs", m.Handler.ListMine)
		auth.POST("/blogs", m.Handler.Create)
		auth.PUT("/blogs/:id", m.Handler.Update)
		auth.DELETE("/blogs/:id", m.Handler.Delete)
	}
}
