package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/go-bootcamp-directory/internal/interface/middleware"
	"github.com/oksasatya/go-bootcamp-directory/pkg/apperror"
	"github.com/oksasatya/go-bootcamp-directory/pkg/query"
	"github.com/oksasatya/go-bootcamp-directory/pkg/validation"
)

// bindJSON decodes and validates the request body. On failure it records a
// validation error and returns false.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		_ = c.Error(apperror.Wrap(apperror.KindValidation, validation.Message(err), err))
		return false
	}
	return true
}

// parseSpec turns the query string into a list specification.
func parseSpec(c *gin.Context) (query.Spec, bool) {
	spec, err := query.Parse(c.Request.URL.Query())
	if err != nil {
		_ = c.Error(err)
		return query.Spec{}, false
	}
	return spec, true
}

// principal returns the user bound by middleware.Protect.
func principal(c *gin.Context) *entity.User {
	return middleware.CurrentUser(c)
}

func fail(c *gin.Context, err error) {
	_ = c.Error(err)
}
