package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/gdugdh24/roommate-match-backend/internal/config"
	"github.com/gdugdh24/roommate-match-backend/internal/delivery/http"
	"github.com/gdugdh24/roommate-match-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/roommate-match-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/roommate-match-backend/internal/infrastructure/database"
	"github.com/gdugdh24/roommate-match-backend/internal/infrastructure/logger"
	"github.com/gdugdh24/roommate-match-backend/internal/infrastructure/server"
	"github.com/gdugdh24/roommate-match-backend/internal/repository"
	"github.com/gdugdh24/roommate-match-backend/internal/repository/postgres"
	redisrepo "github.com/gdugdh24/roommate-match-backend/internal/repository/redis"
	"github.com/gdugdh24/roommate-match-backend/internal/usecase/auth"
	"github.com/gdugdh24/roommate-match-backend/internal/usecase/matching"
	"github.com/gdugdh24/roommate-match-backend/internal/usecase/profile"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Log    *logger.Logger
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	// Ranker config is checked before any connection is opened.
	ranker, err := matching.NewRanker(matching.NewConfig(
		cfg.Matching.RoommateWeights,
		cfg.Matching.PropertyWeights,
		cfg.Matching.RegionCredit,
	))
	if err != nil {
		return nil, fmt.Errorf("invalid matching config: %w", err)
	}

	db, err := database.NewPostgresDB(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	c := &Container{
		Config: cfg,
		DB:     db,
		Log:    log,
	}

	// Without redis, concurrent saves for one user fall back to last write wins.
	var locker repository.ProfileLocker
	if cfg.Redis.Enabled {
		redisClient, err := database.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		c.Redis = redisClient
		locker = redisrepo.NewProfileLocker(redisClient, cfg.Matching.LockTTL)
	} else {
		log.Warn("redis disabled, profile writes are not serialised per user")
	}

	// Initialize repositories
	profileRepo := postgres.NewProfileRepository(db)
	candidateRepo := postgres.NewCandidateRepository(db)

	// Initialize use cases
	tokens := auth.NewTokenService(
		cfg.JWT.AccessSecret,
		cfg.JWT.Issuer,
		time.Duration(cfg.JWT.AccessExpiryMin)*time.Minute,
	)
	profileUseCase := profile.NewProfileUseCase(profileRepo, locker, log.With("component", "profile"))
	matchingUseCase := matching.NewMatchingUseCase(
		profileRepo,
		candidateRepo,
		ranker,
		cfg.Matching.PoolSize,
		log.With("component", "matching"),
	)

	// Initialize handlers
	profileHandler := handler.NewProfileHandler(profileUseCase)
	matchHandler := handler.NewMatchHandler(matchingUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(tokens)

	router := http.NewRouter(
		profileHandler,
		matchHandler,
		authMiddleware,
		cfg.CORS.AllowedOrigins,
		log.With("component", "http"),
	)

	c.Server = server.NewServer(&cfg.Server, router.Setup(), log)
	return c, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.Warn("error closing redis", "error", err)
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
