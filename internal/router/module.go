package router

import "github.com/gin-gonic/gin"

// Module is one feature area of the API (auth, blogs, comments). Each module
// mounts its own public and session-protected routes on the shared group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
