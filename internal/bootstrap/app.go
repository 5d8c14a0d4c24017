package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"humanizer-backend/internal/account"
	googleauth "humanizer-backend/internal/auth"
	"humanizer-backend/internal/credits"
	"humanizer-backend/internal/humanize"
	"humanizer-backend/internal/projects"
	"humanizer-backend/internal/provider"
	"humanizer-backend/internal/provider/undetectable"
	"humanizer-backend/internal/services/health"
	"humanizer-backend/internal/shared/config"
	"humanizer-backend/internal/shared/server"
	"humanizer-backend/internal/shared/storage/db"
	"humanizer-backend/internal/users"
)

// App holds shared dependencies wired at startup.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	Provider provider.Client

	ProjectsRepo projects.Repo
	UsersRepo    users.Repo

	CreditsService  *credits.Service
	ProjectsService *projects.Service
	UsersService    *users.Service
	AccountService  *account.Service
	Humanizer       humanize.Humanizer

	HumanizeHandler *humanize.Handler
	CreditsHandler  *credits.Handler
	ProjectsHandler *projects.Handler
	UsersHandler    *users.Handler
	AccountHandler  *account.Handler
	GoogleAuth      *googleauth.GoogleService

	closers []func() error
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if err := cfg.ValidateProvider(); err != nil {
		return nil, err
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
	}

	if err := buildServices(app); err != nil {
		app.Close()
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		HumanizeHandler: app.HumanizeHandler,
		CreditsHandler:  app.CreditsHandler,
		ProjectsHandler: app.ProjectsHandler,
		UsersHandler:    app.UsersHandler,
		AccountHandler:  app.AccountHandler,
		GoogleAuth:      app.GoogleAuth,
		Health:          health.NewService(),
	})

	return app, nil
}

// Close releases held resources in reverse acquisition order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Printf("bootstrap: close: %v", err)
		}
	}
	a.closers = nil
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			log.Printf("bootstrap: close db: %v", err)
		}
		a.DB = nil
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildGuestStore(app *App) credits.BalanceStore {
	store, err := credits.OpenBadgerStore(app.Config.GuestStoreDir)
	if err != nil {
		if isDevLike(app.Config.Env) {
			log.Printf("bootstrap: guest store open failed; using in-memory pool: %v", err)
			return credits.NewSeededMemoryStore(credits.GuestSeedCredits)
		}
		log.Printf("bootstrap: guest store open failed: %v", err)
		return credits.NewSeededMemoryStore(credits.GuestSeedCredits)
	}
	app.closers = append(app.closers, store.Close)
	return store
}

func buildServices(app *App) error {
	var userBalances credits.BalanceStore
	var usageLog credits.UsageLogRepo
	var projectRepo projects.Repo
	var userRepo users.Repo

	if app.DB != nil {
		userBalances = credits.NewPGStore(app.DB)
		usageLog = &credits.PGUsageLog{DB: app.DB}
		projectRepo = &projects.PGRepo{DB: app.DB}
		userRepo = &users.PGRepo{DB: app.DB}
	} else {
		userBalances = credits.NewSeededMemoryStore(credits.DefaultUserCredits)
		usageLog = credits.NewMemoryUsageLog()
		projectRepo = projects.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
	}

	guestBalances := buildGuestStore(app)
	creditsSvc := credits.NewService(userBalances, guestBalances, usageLog)
	projectsSvc := projects.NewService(projectRepo)
	usersSvc := users.NewService(userRepo)

	var humanizer humanize.Humanizer
	if app.Config.Humanizer == "mock" {
		humanizer = humanize.NewMockService(creditsSvc)
	} else {
		client, err := undetectable.NewClient(
			app.Config.ProviderBaseURL,
			app.Config.ProviderAPIKey,
			app.Config.ProviderTimeout,
		)
		if err != nil {
			return err
		}
		poller := humanize.NewPoller(
			client,
			app.Config.PollMaxAttempts,
			app.Config.PollBaseDelay,
			app.Config.PollDelayStep,
			app.Config.PollMaxDelay,
		)
		humanizer = humanize.NewService(client, creditsSvc, poller)
		app.Provider = client
	}

	googleAuthSvc := googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		usersSvc,
	)

	app.ProjectsRepo = projectRepo
	app.UsersRepo = userRepo
	app.CreditsService = creditsSvc
	app.ProjectsService = projectsSvc
	app.UsersService = usersSvc
	app.AccountService = account.NewService(projectRepo)
	app.Humanizer = humanizer
	app.HumanizeHandler = humanize.NewHandler(humanizer, creditsSvc, projectsSvc)
	app.CreditsHandler = credits.NewHandler(creditsSvc)
	app.ProjectsHandler = projects.NewHandler(projectsSvc)
	app.UsersHandler = users.NewHandler(usersSvc)
	app.AccountHandler = account.NewHandler(app.AccountService)
	app.GoogleAuth = googleAuthSvc

	return nil
}
