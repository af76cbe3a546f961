package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-bootcamp-directory/internal/domain/entity"
	handlers "github.com/oksasatya/go-bootcamp-directory/internal/interface/http"
	"github.com/oksasatya/go-bootcamp-directory/internal/interface/middleware"
)

// UserModule mounts the admin-only /users CRUD.
type UserModule struct {
	Handler *handlers.UserHandler
	Protect gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, protect gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, Protect: protect}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/users", m.Protect, middleware.Authorize(entity.RoleAdmin))
	{
		g.GET("", m.Handler.List)
		g.POST("", m.Handler.Create)
		g.GET("/:id", m.Handler.Get)
		g.PUT("/:id", m.Handler.Update)
		g.DELETE("/:id", m.Handler.Delete)
	}
}
