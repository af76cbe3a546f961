package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-bootcamp-directory/config"
	"github.com/oksasatya/go-bootcamp-directory/pkg/geocoder"
	"github.com/oksasatya/go-bootcamp-directory/pkg/helpers"
	"github.com/oksasatya/go-bootcamp-directory/pkg/mailer"
	"github.com/oksasatya/go-bootcamp-directory/pkg/storage"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client

	jwtManager *helpers.JWTManager

	mailSender mailer.Sender
	rabbitPub  *helpers.RabbitPublisher
	esClient   *elasticsearch.Client
	fileStore  storage.FileStore
	geo        geocoder.Geocoder
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetPGPool(p *pgxpool.Pool)    { pgPool = p }
func GetPGPool() *pgxpool.Pool     { return pgPool }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager {
	if jwtManager != nil {
		return jwtManager
	}
	return helpers.DefaultJWT()
}

func SetMailer(s mailer.Sender) { mailSender = s }

// GetMailer falls back to logging messages when no transport is configured.
func GetMailer() mailer.Sender {
	if mailSender != nil {
		return mailSender
	}
	return &mailer.LogSender{Logger: logger}
}

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }
func SetFileStore(s storage.FileStore)        { fileStore = s }
func GetFileStore() storage.FileStore         { return fileStore }
func SetGeocoder(g geocoder.Geocoder)         { geo = g }
func GetGeocoder() geocoder.Geocoder          { return geo }
