package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-bootcamp-directory/internal/domain/entity"
	handlers "github.com/oksasatya/go-bootcamp-directory/internal/interface/http"
	"github.com/oksasatya/go-bootcamp-directory/internal/interface/middleware"
)

type ReviewModule struct {
	Handler *handlers.ReviewHandler
	Protect gin.HandlerFunc
}

func NewReviewModule(h *handlers.ReviewHandler, protect gin.HandlerFunc) *ReviewModule {
	return &ReviewModule{Handler: h, Protect: protect}
}

func (m *ReviewModule) Register(rg *gin.RouterGroup) {
	reviewer := []gin.HandlerFunc{m.Protect, middleware.Authorize(entity.RoleUser, entity.RoleAdmin)}

	g := rg.Group("/reviews")
	g.GET("", m.Handler.List)
	g.GET("/:id", m.Handler.Get)
	g.PUT("/:id", chain(reviewer, m.Handler.Update)...)
	g.DELETE("/:id", chain(reviewer, m.Handler.Delete)...)
}
