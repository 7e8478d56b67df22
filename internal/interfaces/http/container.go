package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	planUsecases "github.com/kimono-rental/kimono/internal/application/plan/usecases"
	tagUsecases "github.com/kimono-rental/kimono/internal/application/tag/usecases"
	"github.com/kimono-rental/kimono/internal/infrastructure/auth"
	"github.com/kimono-rental/kimono/internal/infrastructure/cache"
	"github.com/kimono-rental/kimono/internal/infrastructure/config"
	"github.com/kimono-rental/kimono/internal/infrastructure/permission"
	"github.com/kimono-rental/kimono/internal/infrastructure/pubsub"
	"github.com/kimono-rental/kimono/internal/infrastructure/ratelimit"
	"github.com/kimono-rental/kimono/internal/interfaces/http/middleware"
	"github.com/kimono-rental/kimono/internal/shared/logger"
)

// Container holds all infrastructure components, repositories, use cases and
// handlers. It wires everything together and releases external connections in
// Shutdown.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	// redis is nil when no Redis host is configured.
	redis *redis.Client

	// Post-commit side effects. planCache stays a nil interface without Redis.
	planCache      planUsecases.PlanCache
	publisher      planUsecases.PlanEventPublisher
	kafkaPublisher *pubsub.KafkaPlanEventPublisher

	enforcer *permission.Enforcer

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	merchantMiddleware   *middleware.MerchantMiddleware
	rateLimiter          *middleware.RateLimiter
}

// NewContainer creates a new Container with all dependencies wired together.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	if err := c.initInfrastructure(); err != nil {
		c.Shutdown()
		return nil, err
	}
	c.initRepositories()
	c.initUseCases()
	c.initHandlers()
	c.initMiddlewares()

	return c, nil
}

func (c *Container) initInfrastructure() error {
	if c.cfg.Redis.Enabled() {
		c.redis = redis.NewClient(&redis.Options{
			Addr:     c.cfg.Redis.GetAddr(),
			Password: c.cfg.Redis.Password,
			DB:       c.cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := c.redis.Ping(ctx).Err(); err != nil {
			// Cache and rate limiting degrade to no-ops per request; keep going.
			c.log.Warnw("redis ping failed", "error", err, "addr", c.cfg.Redis.GetAddr())
		}
		c.planCache = cache.NewRedisPlanCache(c.redis, c.cfg.Cache.PlanTTL())
	}

	switch {
	case c.cfg.Kafka.Enabled():
		writer := pubsub.NewKafkaWriter(c.cfg.Kafka.Brokers, c.cfg.Kafka.PlanTopic, c.cfg.Kafka.WriteTimeoutDuration())
		c.kafkaPublisher = pubsub.NewKafkaPlanEventPublisher(writer, c.cfg.Kafka.MaxRetries, c.log.With("component", "kafka_publisher"))
		c.publisher = c.kafkaPublisher
		c.log.Infow("plan events published to kafka", "topic", c.cfg.Kafka.PlanTopic)
	case c.redis != nil:
		c.publisher = pubsub.NewRedisPlanEventBus(c.redis, c.log.With("component", "redis_event_bus"))
		c.log.Infow("plan events published to redis pub/sub")
	default:
		c.publisher = pubsub.NopPublisher{}
	}

	enforcer, err := permission.NewEnforcer(c.db, c.log.With("component", "casbin"))
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := permission.InitDefaultPolicies(enforcer, c.log); err != nil {
		return fmt.Errorf("failed to seed default policies: %w", err)
	}
	c.enforcer = enforcer

	return nil
}

func (c *Container) initMiddlewares() {
	jwtSvc := auth.NewJWTService(c.cfg.Auth.JWT.Secret, c.cfg.Auth.JWT.Issuer, c.cfg.Auth.JWT.AccessExpMinutes)

	c.authMiddleware = middleware.NewAuthMiddleware(jwtSvc, c.log.With("component", "auth"))
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, c.log.With("component", "permission"))
	c.merchantMiddleware = middleware.NewMerchantMiddleware(c.ucs.merchantResolver, c.log.With("component", "merchant"))

	if c.redis != nil && c.cfg.RateLimit.Enabled {
		rule := ratelimit.Rule{
			Limit:  c.cfg.RateLimit.Requests,
			Window: time.Duration(c.cfg.RateLimit.WindowSeconds) * time.Second,
		}
		c.rateLimiter = middleware.NewRateLimiter(ratelimit.NewRedisRateLimiter(c.redis), rule, c.log.With("component", "ratelimit"))
	}
}

// AutoTagPlans exposes the batch tagging use case to the CLI.
func (c *Container) AutoTagPlans() *tagUsecases.AutoTagPlansUseCase {
	return c.ucs.autoTagPlansUC
}

// Shutdown closes the Kafka writer and the Redis client.
func (c *Container) Shutdown() {
	if c.kafkaPublisher != nil {
		if err := c.kafkaPublisher.Close(); err != nil {
			c.log.Warnw("failed to close kafka writer", "error", err)
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}

type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) PingContext(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
