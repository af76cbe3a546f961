package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-bootcamp-directory/pkg/apperror"
	"github.com/oksasatya/go-bootcamp-directory/pkg/response"
)

const serverError = "Server Error"

// ErrorResponder writes the error envelope for the last error a handler
// recorded with c.Error. Unclassified errors are reported as a generic
// server error; the cause only reaches the log.
func ErrorResponder(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		status := http.StatusInternalServerError
		message := serverError
		kind := apperror.KindUnclassified
		if ae := apperror.As(err); ae != nil {
			kind = ae.Kind
			status = kind.Status()
			message = ae.Message
		}

		if logger != nil {
			entry := logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString(CtxRequestIDKey),
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
				"status":     status,
				"kind":       kind.String(),
			})
			if status >= http.StatusInternalServerError {
				entry.Error("request failed")
			} else {
				entry.Info("request rejected")
			}
		}
		response.Error(c, status, message)
	}
}

// NotFound answers unmatched routes with the error envelope.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Route not found: "+c.Request.Method+" "+c.Request.URL.Path)
	}
}
