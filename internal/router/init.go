package router

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-bootcamp-directory/internal/application"
	"github.com/oksasatya/go-bootcamp-directory/internal/container"
	pginfra "github.com/oksasatya/go-bootcamp-directory/internal/infrastructure/postgres"
	"github.com/oksasatya/go-bootcamp-directory/internal/infrastructure/redisstore"
	"github.com/oksasatya/go-bootcamp-directory/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-bootcamp-directory/internal/interface/http"
	"github.com/oksasatya/go-bootcamp-directory/internal/interface/middleware"
	"github.com/oksasatya/go-bootcamp-directory/internal/router/modules"
	"github.com/oksasatya/go-bootcamp-directory/pkg/helpers"
)

// Services groups the application layer built from the container.
type Services struct {
	Auth      *application.AuthService
	Bootcamps *application.BootcampService
	Courses   *application.CourseService
	Reviews   *application.ReviewService
	Users     *application.UserService
}

func buildServices() Services {
	pool := container.GetPGPool()
	logger := container.GetLogger()
	cfg := container.GetConfig()

	users := pginfra.NewUserRepository(pool)
	bootcamps := pginfra.NewBootcampRepository(pool)
	courses := pginfra.NewCourseRepository(pool)
	reviews := pginfra.NewReviewRepository(pool)
	finder := pginfra.NewQueryEngine(pool, logger)
	tx := pginfra.NewTxManager(pool)
	agg := application.NewAggregates(bootcamps, courses, reviews, logger)

	return Services{
		Auth: application.NewAuthService(
			users,
			container.GetJWT(),
			container.GetMailer(),
			redisstore.NewCodeStore(container.GetRedis()),
			cfg.AppName,
			logger,
		),
		Bootcamps: application.NewBootcampService(
			bootcamps,
			courses,
			reviews,
			tx,
			finder,
			container.GetGeocoder(),
			container.GetFileStore(),
			search.NewBootcampIndex(container.GetES(), cfg.ESBootcampsIndex, logger),
			cfg.MaxFileUpload,
			logger,
		),
		Courses: application.NewCourseService(courses, bootcamps, finder, agg, logger),
		Reviews: application.NewReviewService(reviews, bootcamps, finder, agg, logger),
		Users:   application.NewUserService(users, finder, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	rdb := container.GetRedis()
	svc := buildServices()

	protect := middleware.Protect(svc.Auth)
	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)

	authH := handlers.NewAuthHandler(svc.Auth, cookies, cfg.JWTCookieExpire, cfg.PublicBaseURL, logger)
	bootcampH := handlers.NewBootcampHandler(svc.Bootcamps, logger)
	courseH := handlers.NewCourseHandler(svc.Courses, logger)
	reviewH := handlers.NewReviewHandler(svc.Reviews, logger)
	userH := handlers.NewUserHandler(svc.Users, logger)

	r.Add(modules.NewAuthModule(authH, protect, rdb, logger))
	r.Add(modules.NewBootcampModule(bootcampH, courseH, reviewH, protect))
	r.Add(modules.NewCourseModule(courseH, protect))
	r.Add(modules.NewReviewModule(reviewH, protect))
	r.Add(modules.NewUserModule(userH, protect))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(rdb, logger))
	}
}

// Engine returns a gin engine with the global middleware stack.
func Engine(extra ...gin.HandlerFunc) *gin.Engine {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	e := gin.New()
	e.Use(gin.Recovery())
	e.Use(middleware.RequestID(), middleware.RealIP(), middleware.SecurityHeaders())
	e.Use(extra...)
	if cfg.HTTPLogEnabled {
		e.Use(middleware.AccessLog(logger))
	}
	e.Use(middleware.ErrorResponder(logger))
	e.Use(middleware.RateLimit(container.GetRedis(), cfg.RateLimitMax, cfg.RateLimitWindow, middleware.KeyByIP(), nil, logger))
	e.NoRoute(middleware.NotFound())
	return e
}
