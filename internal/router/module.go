package router

import "github.com/gin-gonic/gin"

// Module is a feature slice (catalog, favorites, admin, auth) that knows how
// to mount its own routes on the shared /api group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
