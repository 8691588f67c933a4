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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/workdayz/workdayz-api/internal/config"
	"github.com/workdayz/workdayz-api/internal/handler"
	"github.com/workdayz/workdayz-api/internal/metrics"
	"github.com/workdayz/workdayz-api/internal/middleware"
	"github.com/workdayz/workdayz-api/internal/repository/postgres"
	"github.com/workdayz/workdayz-api/internal/service"
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
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = pool
	a.logger.Info("Connected to database")
	return nil
}

// setupServer инициализирует HTTP роутер и обработчики
func (a *App) setupServer() {
	// Инициализируем слой репозиториев (работа с БД)
	userRepo := postgres.NewUserRepository(a.db)
	projectRepo := postgres.NewProjectRepository(a.db)
	phaseRepo := postgres.NewPhaseRepository(a.db)
	taskRepo := postgres.NewTaskRepository(a.db)

	// Инициализируем слой сервисов (бизнес-логика)
	authService := service.NewAuthService(
		a.config.JWT.Secret,
		a.config.JWT.GetExpiration(),
	)
	access := service.NewAccessChecker(projectRepo)
	userService := service.NewUserService(userRepo, authService)
	projectService := service.NewProjectService(projectRepo, access)
	phaseService := service.NewPhaseService(phaseRepo, access)
	taskService := service.NewTaskService(taskRepo, access)

	// Инициализируем HTTP обработчики
	userHandler := handler.NewUserHandler(userService)
	projectHandler := handler.NewProjectHandler(projectService, phaseService)
	phaseHandler := handler.NewPhaseHandler(phaseService)
	taskHandler := handler.NewTaskHandler(taskService)

	// Инициализируем middleware для JWT авторизации
	authMiddleware := middleware.AuthMiddleware(authService)

	// Настраиваем роутер
	r := chi.NewRouter()

	// Глобальные middleware (применяются ко всем запросам)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(metrics.Middleware)

	// Health check для мониторинга
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			a.logger.Error("Failed to write health check response", "error", err)
		}
	})

	// Метрики Prometheus
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	// Эндпоинты пользователей
	r.Route("/users", func(r chi.Router) {
		// Публичные эндпоинты (без авторизации)
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)
		r.Get("/search/{query}", userHandler.Search)

		// Защищенные эндпоинты (требуют JWT токен в заголовке Authorization)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/update", userHandler.Update)
		})
	})

	// Эндпоинты проектов
	r.Route("/projects", func(r chi.Router) {
		r.Get("/{projectId}/members", projectHandler.Members)
		r.Get("/active/user/{userId}", projectHandler.Active)
		r.Get("/previous/user/{userId}", projectHandler.Previous)
		r.Get("/progress/{projectId}", projectHandler.Progress)
		r.Get("/details/{projectId}", projectHandler.Details)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/new", projectHandler.Create)
			r.Post("/close", projectHandler.Close)
			r.Post("/member/add", projectHandler.AddMember)
			r.Post("/member/remove", projectHandler.RemoveMember)
		})
	})

	// Эндпоинты фаз
	r.Route("/phases", func(r chi.Router) {
		r.Get("/{projectId}/phases", phaseHandler.List)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/new", phaseHandler.Create)
			r.Post("/update/status", phaseHandler.UpdateStatus)
			r.Post("/delete", phaseHandler.Delete)
		})
	})

	// Эндпоинты задач
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/{phaseId}/tasks", taskHandler.List)
		r.Get("/{phaseId}/tasks/{userId}", taskHandler.ListMine)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/new", taskHandler.Create)
			r.Post("/update/status", taskHandler.UpdateStatus)
			r.Post("/delete", taskHandler.Delete)
			r.Post("/reassign", taskHandler.Reassign)
		})
	})

	// Создаем HTTP сервер с настройками таймаутов
	addr := fmt.Sprintf("%s:%s", a.config.Server.Host, a.config.Server.Port)
	a.server = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	a.logger.Info("HTTP server configured", "addr", addr)
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
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	// Закрываем подключения к базе данных
	if a.db != nil {
		a.db.Close()
	}

	a.logger.Info("Application stopped gracefully")
	return nil
}
