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

// CommentModule wires comment routes. Listing is public; creating and
// deleting require a session.
type CommentModule struct {
	Handler *handlers.CommentHandler
	Users   repo.UserRepository
	JWT     *helpers.JWTManager
}

func NewCommentModule(h *handlers.CommentHandler, users repo.UserRepository, jwt *helpers.JWTManager) *CommentModule {
	return &CommentModule{Handler: h, Users: users, JWT: jwt}
}

func (m *CommentModule) Register(rg *gin.RouterGroup) {
	rg.GET("/comments/blog/:blogId", m.Handler.ListForBlog)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Users, m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()))
	{
		auth.POST("/comments/blog/:blogId", m.Handler.Create)
		auth.DELETE("/comments/:id", m.Handler.Delete)
	}
}
