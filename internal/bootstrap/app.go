// Package bootstrap wires configuration, storage, fetchers, and handlers
// into a runnable application.
package bootstrap

import (
	"context"
	"database/sql"

	"github.com/gin-gonic/gin"

	"devboard-backend/internal/analyze"
	googleauth "devboard-backend/internal/auth"
	"devboard-backend/internal/guidance"
	"devboard-backend/internal/history"
	"devboard-backend/internal/llm"
	"devboard-backend/internal/llm/openrouter"
	"devboard-backend/internal/platforms"
	"devboard-backend/internal/platforms/codechef"
	"devboard-backend/internal/platforms/github"
	"devboard-backend/internal/platforms/leetcode"
	"devboard-backend/internal/portfolio"
	"devboard-backend/internal/resume"
	"devboard-backend/internal/screening"
	"devboard-backend/internal/shared/cache"
	"devboard-backend/internal/shared/config"
	"devboard-backend/internal/shared/server"
	"devboard-backend/internal/shared/storage/db"
	"devboard-backend/internal/shared/telemetry"
	"devboard-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Cache  cache.Cache

	UsersService     *users.Service
	HistoryService   *history.Service
	PortfolioService *portfolio.Service
	AnalyzeService   *analyze.Service
	GuidanceService  *guidance.Service
}

// Build prepares all dependencies and the router. Absent external services
// (database, Redis, model API) degrade to in-process fallbacks.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	sqlDB := buildDB(ctx, cfg)
	profileCache := buildCache(ctx, cfg)
	llmClient := buildLLM(cfg)

	var (
		usersRepo     users.Repo
		historyRepo   history.Repo
		portfolioRepo portfolio.Repo
	)
	if sqlDB != nil {
		usersRepo = users.NewPGRepo(sqlDB)
		historyRepo = history.NewPGRepo(sqlDB)
		portfolioRepo = portfolio.NewPGRepo(sqlDB)
	} else {
		usersRepo = users.NewMemoryRepo()
		historyRepo = history.NewMemoryRepo()
		portfolioRepo = portfolio.NewMemoryRepo()
	}

	usersService := users.NewService(usersRepo)
	historyService := history.NewService(historyRepo)
	portfolioService := portfolio.NewService(portfolioRepo, historyService)
	guidanceService := guidance.NewService(llmClient)

	fetchers := []platforms.Fetcher{
		github.New(cfg.GitHubToken),
		leetcode.New(),
		codechef.New(),
	}
	parser := resume.NewParser(llmClient)
	analyzeService := analyze.NewService(parser, fetchers, profileCache)
	screeningService := screening.NewService(parser)

	googleAuth := googleauth.NewGoogleService(
		cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, cfg.UIRedirectURL,
		usersService,
	)

	router := server.NewRouter(server.Deps{
		Config: cfg,
		Handlers: []server.RouteRegistrar{
			users.NewHandler(usersService),
			googleAuth,
			analyze.NewHandler(analyzeService, historyService),
			guidance.NewHandler(guidanceService),
			history.NewHandler(historyService),
			portfolio.NewHandler(portfolioService),
			screening.NewHandler(screeningService),
		},
	})

	return &App{
		Config:           cfg,
		Router:           router,
		DB:               sqlDB,
		Cache:            profileCache,
		UsersService:     usersService,
		HistoryService:   historyService,
		PortfolioService: portfolioService,
		AnalyzeService:   analyzeService,
		GuidanceService:  guidanceService,
	}, nil
}

// Close releases held resources.
func (a *App) Close() {
	if a.DB != nil {
		_ = a.DB.Close()
	}
	if closer, ok := a.Cache.(*cache.RedisCache); ok {
		_ = closer.Close()
	}
}

func buildDB(ctx context.Context, cfg config.Config) *sql.DB {
	if cfg.DatabaseURL == "" {
		telemetry.Info("bootstrap.db", map[string]any{"mode": "memory"})
		return nil
	}
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		telemetry.Error("bootstrap.db", map[string]any{"error": err.Error(), "fallback": "memory"})
		return nil
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		telemetry.Error("bootstrap.migrations", map[string]any{"error": err.Error(), "fallback": "memory"})
		_ = sqlDB.Close()
		return nil
	}
	return sqlDB
}

func buildCache(ctx context.Context, cfg config.Config) cache.Cache {
	if cfg.RedisAddr == "" {
		return cache.NewMemory(nil)
	}
	redisCache, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		telemetry.Error("bootstrap.redis", map[string]any{"error": err.Error(), "fallback": "memory"})
		return cache.NewMemory(nil)
	}
	return redisCache
}

func buildLLM(cfg config.Config) llm.Client {
	if cfg.OpenRouterAPIKey == "" {
		telemetry.Info("bootstrap.llm", map[string]any{"mode": "fallback"})
		return llm.Placeholder{}
	}
	return openrouter.New(cfg.OpenRouterAPIKey, cfg.OpenRouterModel)
}
