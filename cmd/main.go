package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-bootcamp-directory/config"
	"github.com/oksasatya/go-bootcamp-directory/internal/container"
	pginfra "github.com/oksasatya/go-bootcamp-directory/internal/infrastructure/postgres"
	"github.com/oksasatya/go-bootcamp-directory/internal/router"
	"github.com/oksasatya/go-bootcamp-directory/pkg/geocoder"
	"github.com/oksasatya/go-bootcamp-directory/pkg/helpers"
	"github.com/oksasatya/go-bootcamp-directory/pkg/mailer"
	"github.com/oksasatya/go-bootcamp-directory/pkg/storage"
	"github.com/oksasatya/go-bootcamp-directory/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// Initialize Postgres pool
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	// Redis: rate limits, geocode cache, two-factor codes
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()
	if err := helpers.PingRedis(ctx, rdb, 3*time.Second); err != nil {
		logger.WithError(err).Warn("redis unreachable; rate limits fail open and two-factor codes are unavailable")
	}

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetPGPool(pool)
	container.SetRedis(rdb)
	container.SetJWT(helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTExpire))
	container.SetGeocoder(newGeocoder(cfg, rdb, logger))

	files, closeFiles, err := newFileStore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to init file store: %v", err)
	}
	defer closeFiles()
	container.SetFileStore(files)

	closeMail, err := wireMailer(cfg, logger)
	if err != nil {
		log.Fatalf("failed to init mailer: %v", err)
	}
	defer closeMail()

	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err == nil {
			err = helpers.PingES(ctx, es)
		}
		if err != nil {
			logger.WithError(err).Warn("elasticsearch disabled")
		} else {
			container.SetES(es)
		}
	}

	// CORS
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowOriginFunc = func(string) bool { return true }
	}

	r := router.Engine(cors.New(corsCfg))
	if cfg.UploadDriver == "local" {
		r.Static("/uploads", cfg.FileUploadPath)
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server running in %s mode on :%s", cfg.Env, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

func newGeocoder(cfg *config.Config, rdb *redis.Client, logger *logrus.Logger) geocoder.Geocoder {
	var base geocoder.Geocoder
	switch cfg.GeocoderProvider {
	case "passthrough":
		base = geocoder.Passthrough{}
	default:
		base = geocoder.NewMapQuest(cfg.GeocoderAPIKey)
	}
	return geocoder.NewCached(base, geocoder.RedisStore{RDB: rdb}, cfg.GeocoderCacheTTL, logger)
}

func newFileStore(ctx context.Context, cfg *config.Config) (storage.FileStore, func(), error) {
	switch cfg.UploadDriver {
	case "gcs":
		client, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			return nil, nil, err
		}
		return storage.GCS{Client: client, Bucket: cfg.GCSBucket, Prefix: "bootcamps/"}, func() { _ = client.Close() }, nil
	case "minio":
		client, err := storage.NewMinIOClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
		if err != nil {
			return nil, nil, err
		}
		return storage.MinIO{Client: client, Bucket: cfg.MinIOBucket, Prefix: "bootcamps/"}, func() {}, nil
	default:
		return storage.Local{Dir: cfg.FileUploadPath}, func() {}, nil
	}
}

func wireMailer(cfg *config.Config, logger *logrus.Logger) (func(), error) {
	switch cfg.MailTransport {
	case "mailgun":
		container.SetMailer(mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.FromAddress()))
		return func() {}, nil
	case "queue":
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			return nil, err
		}
		container.SetRabbitPub(pub)
		container.SetMailer(&mailer.QueueSender{Publisher: pub})
		return pub.Close, nil
	default:
		container.SetMailer(&mailer.LogSender{Logger: logger})
		return func() {}, nil
	}
}
