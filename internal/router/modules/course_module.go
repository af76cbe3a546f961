package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-bootcamp-directory/internal/domain/entity"
	handlers "github.com/oksasatya/go-bootcamp-directory/internal/interface/http"
	"github.com/oksasatya/go-bootcamp-directory/internal/interface/middleware"
)

type CourseModule struct {
	Handler *handlers.CourseHandler
	Protect gin.HandlerFunc
}

func NewCourseModule(h *handlers.CourseHandler, protect gin.HandlerFunc) *CourseModule {
	return &CourseModule{Handler: h, Protect: protect}
}

func (m *CourseModule) Register(rg *gin.RouterGroup) {
	publisher := []gin.HandlerFunc{m.Protect, middleware.Authorize(entity.RolePublisher, entity.RoleAdmin)}

	g := rg.Group("/courses")
	g.GET("", m.Handler.List)
	g.GET("/:id", m.Handler.Get)
	g.PUT("/:id", chain(publisher, m.Handler.Update)...)
	g.DELETE("/:id", chain(publisher, m.Handler.Delete)...)
}
