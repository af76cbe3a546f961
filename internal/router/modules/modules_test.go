package modules

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-bootcamp-directory/internal/domain/entity"
	handlers "github.com/oksasatya/go-bootcamp-directory/internal/interface/http"
	"github.com/oksasatya/go-bootcamp-directory/internal/interface/middleware"
	"github.com/oksasatya/go-bootcamp-directory/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

// asRole stands in for Protect and binds a user with the given role.
func asRole(role entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxUserKey, &entity.User{ID: "u1", Role: role})
		c.Next()
	}
}

func mountAll(protect gin.HandlerFunc) *gin.Engine {
	e := gin.New()
	e.Use(middleware.ErrorResponder(nil))
	api := e.Group("/api/v1")

	bh := handlers.NewBootcampHandler(nil, nil)
	ch := handlers.NewCourseHandler(nil, nil)
	rh := handlers.NewReviewHandler(nil, nil)
	ah := handlers.NewAuthHandler(nil, helpers.NewCookie("", false), 0, "", nil)

	for _, m := range []interface{ Register(*gin.RouterGroup) }{
		NewAuthModule(ah, protect, nil, nil),
		NewBootcampModule(bh, ch, rh, protect),
		NewCourseModule(ch, protect),
		NewReviewModule(rh, protect),
		NewUserModule(handlers.NewUserHandler(nil, nil), protect),
		NewDebugModule(nil, nil),
	} {
		m.Register(api)
	}
	return e
}

func TestRoutesRegistered(t *testing.T) {
	e := mountAll(asRole(entity.RoleAdmin))

	got := map[string]bool{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"POST /api/v1/auth/register",
		"POST /api/v1/auth/login",
		"GET /api/v1/auth/logout",
		"GET /api/v1/auth/currentUser",
		"PUT /api/v1/auth/resetPassword/:resetToken",
		"GET /api/v1/bootcamps",
		"GET /api/v1/bootcamps/radius/:zipcode/:distance",
		"PUT /api/v1/bootcamps/:id/photo",
		"GET /api/v1/bootcamps/:id/courses",
		"POST /api/v1/bootcamps/:id/reviews",
		"GET /api/v1/courses/:id",
		"DELETE /api/v1/reviews/:id",
		"GET /api/v1/users",
		"GET /api/v1/debug/vars",
	} {
		assert.True(t, got[want], want)
	}
}

func TestRoleGates(t *testing.T) {
	cases := []struct {
		role   entity.Role
		method string
		path   string
	}{
		{entity.RoleUser, http.MethodPost, "/api/v1/bootcamps"},
		{entity.RoleUser, http.MethodDelete, "/api/v1/courses/c1"},
		{entity.RolePublisher, http.MethodPost, "/api/v1/bootcamps/b1/reviews"},
		{entity.RolePublisher, http.MethodPut, "/api/v1/reviews/r1"},
		{entity.RolePublisher, http.MethodGet, "/api/v1/users"},
	}
	for _, tc := range cases {
		t.Run(string(tc.role)+" "+tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mountAll(asRole(tc.role)).ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Contains(t, w.Body.String(), "User role as a "+string(tc.role)+" is not authorized to access this route")
		})
	}
}

func TestAliasParam(t *testing.T) {
	e := gin.New()
	var got string
	e.GET("/b/:id/x", aliasParam("id", "bootcampId"), func(c *gin.Context) {
		got = c.Param("bootcampId")
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/b/42/x", nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "42", got)
}

func TestChainKeepsOrder(t *testing.T) {
	var order []string
	mk := func(s string) gin.HandlerFunc { return func(*gin.Context) { order = append(order, s) } }

	hs := chain([]gin.HandlerFunc{mk("a"), mk("b")}, mk("h"))
	require.Len(t, hs, 3)
	for _, h := range hs {
		h(nil)
	}
	assert.Equal(t, []string{"a", "b", "h"}, order)
}
