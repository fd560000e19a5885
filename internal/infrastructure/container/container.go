package container

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gamermatch/gamermatch-backend/internal/config"
	httpdelivery "github.com/gamermatch/gamermatch-backend/internal/delivery/http"
	"github.com/gamermatch/gamermatch-backend/internal/delivery/http/handler"
	"github.com/gamermatch/gamermatch-backend/internal/delivery/http/middleware"
	"github.com/gamermatch/gamermatch-backend/internal/infrastructure/database"
	"github.com/gamermatch/gamermatch-backend/internal/infrastructure/genai"
	"github.com/gamermatch/gamermatch-backend/internal/infrastructure/jobs"
	"github.com/gamermatch/gamermatch-backend/internal/infrastructure/server"
	"github.com/gamermatch/gamermatch-backend/internal/repository/postgres"
	"github.com/gamermatch/gamermatch-backend/internal/repository/redisrepo"
	"github.com/gamermatch/gamermatch-backend/internal/usecase/admin"
	"github.com/gamermatch/gamermatch-backend/internal/usecase/auth"
	"github.com/gamermatch/gamermatch-backend/internal/usecase/chat"
	"github.com/gamermatch/gamermatch-backend/internal/usecase/discovery"
	"github.com/gamermatch/gamermatch-backend/internal/usecase/gdpr"
	"github.com/gamermatch/gamermatch-backend/internal/usecase/match"
	"github.com/gamermatch/gamermatch-backend/internal/usecase/moderation"
	"github.com/gamermatch/gamermatch-backend/internal/usecase/profile"
	"github.com/gamermatch/gamermatch-backend/internal/usecase/swipe"
)

// Container holds all application dependencies
type Container struct {
	Config    *config.Config
	DB        *sqlx.DB
	Redis     *redis.Client
	Server    *server.Server
	Scheduler *jobs.Scheduler
	GenAI     *genai.Client
}

// NewContainer wires repositories, use cases, handlers and background jobs.
func NewContainer(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// AI features are optional; run without them if the client fails.
	var genaiClient *genai.Client
	if cfg.GeminiAPIKey != "" {
		genaiClient, err = genai.NewClient(cfg.GeminiAPIKey)
		if err != nil {
			log.Warn().Err(err).Msg("genai client unavailable, icebreakers will use fallbacks")
			genaiClient = nil
		}
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	swipeRepo := postgres.NewSwipeRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	blockRepo := postgres.NewBlockRepository(db)
	reportRepo := postgres.NewReportRepository(db)
	adminRepo := postgres.NewAdminRepository(db)
	deletionRepo := postgres.NewDeletionRepository(db)
	limiter := redisrepo.NewRateLimiter(redisClient)

	// Use cases
	authUseCase := auth.NewUseCase(
		userRepo,
		sessionRepo,
		cfg.JWT.AccessSecret,
		cfg.JWT.AccessExpiry(),
		cfg.JWT.RefreshExpiry(),
	)

	profileUseCase := profile.NewUseCase(profileRepo, blockRepo)

	discoveryUseCase := discovery.NewUseCase(profileRepo, swipeRepo, blockRepo)

	swipeUseCase := swipe.NewUseCase(
		swipeRepo,
		matchRepo,
		profileRepo,
		blockRepo,
		limiter,
		log,
	)

	matchUseCase := match.NewUseCase(
		matchRepo,
		profileRepo,
		blockRepo,
		swipeRepo,
		genaiClient,
		log,
	)

	chatUseCase := chat.NewUseCase(
		messageRepo,
		matchRepo,
		profileRepo,
		limiter,
		log,
	)

	moderationUseCase := moderation.NewUseCase(
		blockRepo,
		matchRepo,
		reportRepo,
		profileRepo,
		limiter,
		log,
	)

	gdprUseCase := gdpr.NewUseCase(
		userRepo,
		sessionRepo,
		profileRepo,
		swipeRepo,
		matchRepo,
		messageRepo,
		blockRepo,
		reportRepo,
		deletionRepo,
		log,
	)

	adminUseCase := admin.NewUseCase(
		adminRepo,
		reportRepo,
		profileRepo,
		matchRepo,
		log,
	)

	// Handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	profileHandler := handler.NewProfileHandler(profileUseCase)
	discoveryHandler := handler.NewDiscoveryHandler(discoveryUseCase)
	swipeHandler := handler.NewSwipeHandler(swipeUseCase)
	matchHandler := handler.NewMatchHandler(matchUseCase)
	chatHandler := handler.NewChatHandler(chatUseCase)
	moderationHandler := handler.NewModerationHandler(moderationUseCase)
	gdprHandler := handler.NewGDPRHandler(gdprUseCase)
	adminHandler := handler.NewAdminHandler(adminUseCase)

	authMiddleware := middleware.NewAuthMiddleware(authUseCase, adminUseCase)

	router := httpdelivery.NewRouter(
		authHandler,
		profileHandler,
		discoveryHandler,
		swipeHandler,
		matchHandler,
		chatHandler,
		moderationHandler,
		gdprHandler,
		adminHandler,
		authMiddleware,
		log,
	)

	srv := server.NewServer(&cfg.Server, router.Setup())

	scheduler, err := jobs.NewScheduler(&cfg.Jobs, matchUseCase, gdprUseCase, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize scheduler: %w", err)
	}

	return &Container{
		Config:    cfg,
		DB:        db,
		Redis:     redisClient,
		Server:    srv,
		Scheduler: scheduler,
		GenAI:     genaiClient,
	}, nil
}

// Close releases held connections.
func (c *Container) Close() {
	if c.GenAI != nil {
		c.GenAI.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.DB != nil {
		_ = c.DB.Close()
	}
}
