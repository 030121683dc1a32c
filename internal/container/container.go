package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/anistreamdev/anistream/config"
	"github.com/anistreamdev/anistream/internal/infrastructure/postgres"
	"github.com/anistreamdev/anistream/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	store       *postgres.Store
	redisClient *redis.Client
	gcsClient   *storage.Client

	jwtManager    *helpers.JWTManager
	oauthProvider *helpers.OAuthProvider

	rabbitPub *helpers.RabbitPublisher
	esClient  *elasticsearch.Client
)

func SetConfig(c *config.Config)  { cfg = c }
func GetConfig() *config.Config   { return cfg }
func SetLogger(l *logrus.Logger)  { logger = l }
func GetLogger() *logrus.Logger   { return logger }
func SetStore(s *postgres.Store)  { store = s }
func GetStore() *postgres.Store   { return store }
func SetRedis(r *redis.Client)    { redisClient = r }
func GetRedis() *redis.Client     { return redisClient }
func SetGCS(s *storage.Client)    { gcsClient = s }
func GetGCS() *storage.Client     { return gcsClient }

func SetJWT(m *helpers.JWTManager)           { jwtManager = m }
func GetJWT() *helpers.JWTManager            { return jwtManager }
func SetOAuth(p *helpers.OAuthProvider)      { oauthProvider = p }
func GetOAuth() *helpers.OAuthProvider       { return oauthProvider }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }
