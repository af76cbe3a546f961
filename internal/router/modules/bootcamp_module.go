package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-bootcamp-directory/internal/domain/entity"
	handlers "github.com/oksasatya/go-bootcamp-directory/internal/interface/http"
	"github.com/oksasatya/go-bootcamp-directory/internal/interface/middleware"
)

// BootcampModule mounts /bootcamps together with the nested course and
// review collections of a bootcamp.
type BootcampModule struct {
	Bootcamps *handlers.BootcampHandler
	Courses   *handlers.CourseHandler
	Reviews   *handlers.ReviewHandler
	Protect   gin.HandlerFunc
}

func NewBootcampModule(b *handlers.BootcampHandler, c *handlers.CourseHandler, r *handlers.ReviewHandler, protect gin.HandlerFunc) *BootcampModule {
	return &BootcampModule{Bootcamps: b, Courses: c, Reviews: r, Protect: protect}
}

func (m *BootcampModule) Register(rg *gin.RouterGroup) {
	publisher := []gin.HandlerFunc{m.Protect, middleware.Authorize(entity.RolePublisher, entity.RoleAdmin)}
	reviewer := []gin.HandlerFunc{m.Protect, middleware.Authorize(entity.RoleUser, entity.RoleAdmin)}

	g := rg.Group("/bootcamps")
	g.GET("", m.Bootcamps.List)
	g.POST("", chain(publisher, m.Bootcamps.Create)...)
	g.GET("/search", m.Bootcamps.Search)
	g.GET("/radius/:zipcode/:distance", m.Bootcamps.WithinRadius)
	g.GET("/:id", m.Bootcamps.Get)
	g.PUT("/:id", chain(publisher, m.Bootcamps.Update)...)
	g.DELETE("/:id", chain(publisher, m.Bootcamps.Delete)...)
	g.PUT("/:id/photo", chain(publisher, m.Bootcamps.UploadPhoto)...)

	// Gin needs one wildcard name per segment, so nested routes reuse :id
	// and expose it to the child handlers as :bootcampId.
	nested := g.Group("/:id", aliasParam("id", "bootcampId"))
	nested.GET("/courses", m.Courses.List)
	nested.POST("/courses", chain(publisher, m.Courses.Create)...)
	nested.GET("/reviews", m.Reviews.List)
	nested.POST("/reviews", chain(reviewer, m.Reviews.Create)...)
}

func chain(mw []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(mw)+1)
	out = append(out, mw...)
	return append(out, h)
}

// aliasParam copies a path parameter under a second name.
func aliasParam(from, to string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Params = append(c.Params, gin.Param{Key: to, Value: c.Param(from)})
		c.Next()
	}
}
