package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/rat-api/internal/config"
	"github.com/aidar/rat-api/internal/handler"
	"github.com/aidar/rat-api/internal/middleware"
	"github.com/aidar/rat-api/internal/repository/postgres"
	"github.com/aidar/rat-api/internal/service"
	"github.com/aidar/rat-api/migrations"
)

// App представляет приложение со всеми зависимостями
type App struct {
	config *config.Config
	db     *pgxpool.Pool
	server *http.Server
	logger *slog.Logger
}

// New создает новый экземпляр приложения
func New(cfg *config.Config) (*App, error) {
	// Инициализируем структурированный логгер (JSON формат)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	app := &App{
		config: cfg,
		logger: logger,
	}

	return app, nil
}

// Initialize инициализирует все компоненты приложения
func (a *App) Initialize(ctx context.Context) error {
	// Подключаемся к базе данных
	if err := a.connectDB(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Применяем миграции схемы
	if a.config.Database.AutoMigrate {
		applied, err := postgres.Migrate(ctx, a.db, migrations.FS)
		if err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		a.logger.Info("Migrations applied", "count", applied)
	}

	// Настраиваем HTTP сервер и роутинг
	a.setupServer()

	a.logger.Info("Application initialized successfully")
	return nil
}

// connectDB устанавливает подключение к PostgreSQL с connection pool
func (a *App) connectDB(ctx context.Context) error {
	poolConfig, err := pgxpool.ParseConfig(a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	// Настраиваем размеры connection pool
	poolConfig.MaxConns = a.config.Database.MaxConns
	poolConfig.MinConns = a.config.Database.MinConns

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Проверяем подключение к БД
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = pool
	a.logger.Info("Connected to database")
	return nil
}

// setupServer инициализирует HTTP роутер и обработчики
func (a *App) setupServer() {
	// Инициализируем слой репозиториев (работа с БД)
	projectRepo := postgres.NewProjectRepository(a.db)
	projectTypeRepo := postgres.NewProjectTypeRepository(a.db)
	memberRepo := postgres.NewMemberRepository(a.db)

	// Инициализируем слой сервисов (бизнес-логика)
	authService := service.NewAuthService(a.config.Auth.JWTSecret, a.config.Auth.GetTokenTTL())
	resolver := service.NewIdentityResolver(memberRepo, a.config.Audit.SystemOperatorID)
	projectService := service.NewProjectService(projectRepo, projectTypeRepo, memberRepo)

	// Инициализируем HTTP обработчики
	projectHandler := handler.NewProjectHandler(projectService, resolver)
	healthHandler := handler.NewHealthHandler(a.db)

	identityMiddleware := middleware.IdentityMiddleware(authService, a.config.Auth.IdentityHeader)

	r := newRouter(projectHandler, healthHandler, identityMiddleware, a.config.Server.RequestTimeout)

	// Создаем HTTP сервер с настройками таймаутов
	addr := fmt.Sprintf("%s:%s", a.config.Server.Host, a.config.Server.Port)
	a.server = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: a.config.Server.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	a.logger.Info("HTTP server configured", "addr", addr)
}

// newRouter собирает маршруты API
func newRouter(
	projectHandler *handler.ProjectHandler,
	healthHandler *handler.HealthHandler,
	identityMiddleware func(http.Handler) http.Handler,
	requestTimeout time.Duration,
) chi.Router {
	r := chi.NewRouter()

	// Глобальные middleware (применяются ко всем запросам)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.StripSlashes)
	// Отмена контекста прерывает незавершенные запросы к БД
	if requestTimeout > 0 {
		r.Use(chimiddleware.Timeout(requestTimeout))
	}

	// Health check для мониторинга
	r.Get("/health", healthHandler.Health)

	// Справочник не зависит от пользователя
	r.Get("/project-types", projectHandler.ListProjectTypes)

	r.Group(func(r chi.Router) {
		r.Use(identityMiddleware)

		r.Get("/projects", projectHandler.ListProjects)
		r.Post("/projects", projectHandler.CreateProject)
		r.Get("/projects/{id}", projectHandler.GetProject)
	})

	return r
}

// Run запускает HTTP сервер
func (a *App) Run() error {
	a.logger.Info("Starting HTTP server", "addr", a.server.Addr)
	return a.server.ListenAndServe()
}

// Shutdown корректно останавливает приложение
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application")

	// Останавливаем HTTP сервер (ждем завершения текущих запросов)
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	// Закрываем подключения к базе данных
	if a.db != nil {
		a.db.Close()
	}

	a.logger.Info("Application stopped gracefully")
	return nil
}
