package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/go-bootcamp-directory/pkg/apperror"
	"github.com/oksasatya/go-bootcamp-directory/pkg/helpers"
)

// CtxUserKey holds the authenticated *entity.User.
const CtxUserKey = "user"

// Authenticator resolves the user named by a session token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

// Protect requires a Bearer token and an identical token cookie, verifies
// the token and binds the user to the request.
func Protect(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abort(c, apperror.Unauthenticated("Not authorized to access this route-Bearer"))
			return
		}
		bearer := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		cookie, err := c.Cookie(helpers.TokenCookie)
		if err != nil || cookie == "" {
			abort(c, apperror.Unauthenticated("Not authorized to access this route-Cookie"))
			return
		}
		if bearer != cookie {
			abort(c, apperror.Unauthenticated("Token mismatch"))
			return
		}

		u, err := authn.Authenticate(c.Request.Context(), bearer)
		if err != nil {
			abort(c, err)
			return
		}
		if u == nil {
			abort(c, apperror.Unauthenticated("Not authorized to access this route"))
			return
		}
		c.Set(CtxUserKey, u)
		c.Next()
	}
}

// Authorize admits only principals whose role is listed. It must run after Protect.
func Authorize(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil || u.Role == "" {
			abort(c, apperror.Forbidden("User role information not available"))
			return
		}
		for _, r := range roles {
			if u.Role == r {
				c.Next()
				return
			}
		}
		abort(c, apperror.Forbidden(fmt.Sprintf("User role as a %s is not authorized to access this route", u.Role)))
	}
}

// CurrentUser returns the user bound by Protect, or nil.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}

// abort records err for ErrorResponder and stops the chain.
func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
