package router

import (
	"github.com/inkpost/inkpost/internal/application"
	"github.com/inkpost/inkpost/internal/container"
	"github.com/inkpost/inkpost/internal/infrastructure/postgres"
	handlers "github.com/inkpost/inkpost/internal/interface/http"
	"github.com/inkpost/inkpost/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := postgres.NewUserRepository(pool)
	blogRepo := postgres.NewBlogRepository(pool)
	commentRepo := postgres.NewCommentRepository(pool)

	authSvc := application.NewAuthService(userRepo, container.GetJWT(), container.GetEmailPub(), logger)
	blogSvc := application.NewBlogService(
		blogRepo,
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetRedis(),
		container.GetIndexPub(),
		container.GetES(),
		cfg.ESBlogsIndex,
		logger,
	)
	commentSvc := application.NewCommentService(commentRepo, blogRepo, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), userRepo, container.GetJWT()))
	r.Add(modules.NewBlogModule(handlers.NewBlogHandler(blogSvc, logger), userRepo, container.GetJWT()))
	r.Add(modules.NewCommentModule(handlers.NewCommentHandler(commentSvc, logger), userRepo, container.GetJWT()))
}
