package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-bootcamp-directory/internal/interface/middleware"
)

// DebugModule exposes expvar counters, including aggregate recompute failures.
type DebugModule struct {
	RDB    *redis.Client
	Logger *logrus.Logger
}

func NewDebugModule(rdb *redis.Client, logger *logrus.Logger) *DebugModule {
	return &DebugModule{RDB: rdb, Logger: logger}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.RDB, 120, time.Minute, middleware.KeyByIP(), nil, m.Logger)
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
