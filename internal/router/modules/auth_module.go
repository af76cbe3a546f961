package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	handlers "github.com/oksasatya/go-bootcamp-directory/internal/interface/http"
	"github.com/oksasatya/go-bootcamp-directory/internal/interface/middleware"
)

// AuthModule mounts /auth. Credential endpoints carry a tighter per-route limit.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Protect gin.HandlerFunc
	RDB     *redis.Client
	Logger  *logrus.Logger
}

func NewAuthModule(h *handlers.AuthHandler, protect gin.HandlerFunc, rdb *redis.Client, logger *logrus.Logger) *AuthModule {
	return &AuthModule{Handler: h, Protect: protect, RDB: rdb, Logger: logger}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	credLimiter := middleware.RateLimit(m.RDB, 10, 15*time.Minute, middleware.KeyByIPAndPath(), nil, m.Logger)
	codeLimiter := middleware.RateLimit(m.RDB, 5, 15*time.Minute, middleware.KeyByUserID(), nil, m.Logger)

	auth := rg.Group("/auth")
	auth.POST("/register", credLimiter, m.Handler.Register)
	auth.POST("/login", credLimiter, m.Handler.Login)
	auth.GET("/logout", m.Handler.Logout)
	auth.POST("/forgotPassword", credLimiter, m.Handler.ForgotPassword)
	auth.PUT("/resetPassword/:resetToken", credLimiter, m.Handler.ResetPassword)
	auth.GET("/confirmEmail", m.Handler.ConfirmEmail)

	private := auth.Group("", m.Protect)
	{
		private.GET("/currentUser", m.Handler.CurrentUser)
		private.PUT("/updateDetails", m.Handler.UpdateDetails)
		private.PUT("/updatePassword", m.Handler.UpdatePassword)
		private.POST("/sendTwoFactorCode", codeLimiter, m.Handler.SendTwoFactorCode)
		private.POST("/verifyTwoFactorCode", codeLimiter, m.Handler.VerifyTwoFactorCode)
	}
}
