package app

import (
	"context"
	"fmt"
	"net/http"

	"taskBoard/internal/auth"
	"taskBoard/internal/config"
	"taskBoard/internal/handlers"
	"taskBoard/internal/logger"
	"taskBoard/internal/middleware"
	"taskBoard/internal/repository/inmemory"
	"taskBoard/internal/repository/postgres"
	"taskBoard/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type App struct {
	config    *config.Config
	server    *http.Server
	router    *chi.Mux
	shutdowns []func() // функции для graceful shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	var taskRepo service.TaskRepository
	var teamRepo service.TeamRepository
	var userRepo service.UserRepository

	switch a.config.Repository.Type {
	case "postgres":
		storage, err := postgres.New(ctx,
			a.config.Database.URL,
			a.config.Database.MaxConnections,
			a.config.Database.MinConnections,
			a.config.Database.IdleTimeout,
		)
		if err != nil {
			return fmt.Errorf("подключение к PostgreSQL: %w", err)
		}
		if err := storage.Migrate(); err != nil {
			return fmt.Errorf("миграции: %w", err)
		}
		a.shutdowns = append(a.shutdowns, storage.Close)

		taskRepo = storage
		teamRepo = storage
		userRepo = storage
	case "inmemory":
		taskRepo = inmemory.NewTaskStorage()
		teamRepo = inmemory.NewTeamStorage()
		userRepo = inmemory.NewUserStorage()
	default:
		return fmt.Errorf("неизвестный тип репозитория: %s", a.config.Repository.Type)
	}

	tokens := auth.NewJWTManager(a.config.Auth.Secret, a.config.Auth.TokenTTL, a.config.Auth.Issuer)

	taskService := service.NewTaskService(taskRepo, teamRepo, userRepo)
	authService := service.NewAuthService(userRepo, tokens)

	taskHandler := handlers.NewTaskHandler(&taskService)
	authHandler := handlers.NewAuthHandler(&authService)

	a.router = NewRouter(&taskHandler, &authHandler, tokens, a.config.RateLimit.RPM)

	a.server = &http.Server{
		Addr:    a.config.GetServerAddr(),
		Handler: a.router,
	}

	return nil
}

// NewRouter собирает явную таблицу маршрутов; общий сегмент {id}
// в командных и задачных маршрутах читается по-разному — см. DESIGN.md
func NewRouter(taskHandler *handlers.TaskHandler, authHandler *handlers.AuthHandler, tokens *auth.JWTManager, rpm int) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.RateLimit(rpm))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register) // POST /api/auth/register
			r.Post("/login", authHandler.Login)       // POST /api/auth/login
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Use(middleware.Auth(tokens))

			r.Get("/", taskHandler.ListTasks) // GET /api/tasks
			r.Post("/", taskHandler.PostTask) // POST /api/tasks

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", taskHandler.ListTeamTasks)  // GET /api/tasks/{teamId}
				r.Post("/", taskHandler.PostTeamTask)  // POST /api/tasks/{teamId}
				r.Put("/", taskHandler.UpdateTask)     // PUT /api/tasks/{id}
				r.Delete("/", taskHandler.DeleteTask)  // DELETE /api/tasks/{id}

				r.Put("/status", taskHandler.UpdateTaskStatus) // PUT /api/tasks/{id}/status
			})
		})
	})

	return r
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		logger.Info("Сервер запущен: " + a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("работа сервера: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка остановки сервера", err)
	}

	a.Shutdown()
	return nil
}

func (a *App) Shutdown() {
	// в обратном порядке: последним закрывается логгер
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}
