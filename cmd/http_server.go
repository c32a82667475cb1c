package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mwicaksana/construction-management/internal"
	"github.com/mwicaksana/construction-management/internal/auth"
	authpg "github.com/mwicaksana/construction-management/internal/auth/postgres"
	"github.com/mwicaksana/construction-management/internal/core/events"
	"github.com/mwicaksana/construction-management/internal/dashboard"
	"github.com/mwicaksana/construction-management/internal/materialspec"
	materialspecpg "github.com/mwicaksana/construction-management/internal/materialspec/postgres"
	"github.com/mwicaksana/construction-management/internal/notification"
	notificationpg "github.com/mwicaksana/construction-management/internal/notification/postgres"
	"github.com/mwicaksana/construction-management/internal/permissions"
	"github.com/mwicaksana/construction-management/internal/project"
	projectpg "github.com/mwicaksana/construction-management/internal/project/postgres"
	"github.com/mwicaksana/construction-management/internal/scope"
	scopepg "github.com/mwicaksana/construction-management/internal/scope/postgres"
	"github.com/mwicaksana/construction-management/internal/shopdrawing"
	shopdrawingpg "github.com/mwicaksana/construction-management/internal/shopdrawing/postgres"
	"github.com/mwicaksana/construction-management/internal/task"
	taskpg "github.com/mwicaksana/construction-management/internal/task/postgres"
	"github.com/mwicaksana/construction-management/internal/transport/rest"
	"github.com/mwicaksana/construction-management/internal/user"
	userpg "github.com/mwicaksana/construction-management/internal/user/postgres"
	"github.com/mwicaksana/construction-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	GormDB   *gorm.DB
	Redis    *redis.Client
	EventBus *events.EventBus
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	isDevelopment := os.Getenv("APP_ENV") != "production"
	router := rest.NewRouter(deps.Config, deps.Handlers, isDevelopment)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
		if err := deps.Redis.Close(); err != nil {
			deps.Logger.Error("redis close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"), config.Observability.Logging.Level)
	log := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: config.Redis.Addr})

	eventBus := events.NewEventBus(log)
	checker := permissions.NewChecker()

	// Auth and sessions.
	sessionStore := auth.NewRedisSessionStore(redisClient, config.Redis.SessionTTL, log)
	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authpg.NewRepository(gormDB), tokenGen, sessionStore, log)

	// Domain services.
	userService := user.NewService(userpg.NewUserRepository(gormDB), authService, config.Security.BCryptCost, log)
	projectService := project.NewService(projectpg.NewProjectRepository(gormDB), log)
	scopeService := scope.NewService(scopepg.NewScopeRepository(gormDB), log)
	taskService := task.NewService(taskpg.NewTaskRepository(gormDB), eventBus, log)
	drawingService := shopdrawing.NewService(shopdrawingpg.NewDrawingRepository(gormDB), checker, eventBus, log)
	specService := materialspec.NewService(materialspecpg.NewSpecRepository(gormDB), checker, eventBus, log)
	dashboardService := dashboard.NewService(db, redisClient, config.Redis.DashboardTTL, log)

	notificationService := notification.NewService(notificationpg.NewNotificationRepository(gormDB), log)
	notificationService.RegisterSubscribers(eventBus)

	handlers := rest.Handlers{
		Auth:         auth.NewHandler(authService),
		User:         user.NewHandler(userService),
		Project:      project.NewHandler(projectService),
		Scope:        scope.NewHandler(scopeService),
		Task:         task.NewHandler(taskService),
		Drawing:      shopdrawing.NewHandler(drawingService),
		Spec:         materialspec.NewHandler(specService),
		Notification: notification.NewHandler(notificationService),
		Dashboard:    dashboard.NewHandler(dashboardService),
		Health:       rest.NewHealthHandler(db.DB, redisClient),
	}

	return &Dependencies{
		Config:   config,
		DB:       db,
		GormDB:   gormDB,
		Redis:    redisClient,
		EventBus: eventBus,
		Handlers: handlers,
		Logger:   log,
	}, nil
}

func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
