// Package server is the composition root: it opens the database, builds
// services and handlers, and mounts them on a chi router.
//
//	config → sqlite.DB → services → handlers → routes
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/codeclass/internal/auth"
	"github.com/sakif/codeclass/internal/catalog"
	"github.com/sakif/codeclass/internal/chat"
	"github.com/sakif/codeclass/internal/config"
	"github.com/sakif/codeclass/internal/executor"
	"github.com/sakif/codeclass/internal/executor/simulated"
	"github.com/sakif/codeclass/internal/handler"
	"github.com/sakif/codeclass/internal/middleware"
	sqliteRepo "github.com/sakif/codeclass/internal/repository/sqlite"
	"github.com/sakif/codeclass/internal/service"
)

// Deps are the collaborators built outside the server. A nil Completer
// turns chat off.
type Deps struct {
	Catalog   *catalog.Catalog
	Completer chat.Completer
	Logger    *slog.Logger
}

// Server owns the router and the database connection, which it closes on
// shutdown.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database and wires every route.
func New(cfg *config.Config, deps Deps) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: deps.Logger,
		db:     db,
	}

	if err := s.setupRoutes(deps); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// Handler exposes the router, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database.
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes mounts:
//
//	GET    /healthz
//	POST   /api/execute                  GET /api/languages
//	GET    /api/courses[/{id}]           GET|POST /api/courses/{id}/reviews
//	GET    /api/curriculum[/{slug}]      GET /api/resources
//	POST   /api/chat                     (rate limited per IP)
//	GET    /api/certificates/{number}
//	       /api/me/...                   (sign-in required)
//	       /api/snippets/...             (sign-in required to write)
//
// Middleware order: request id, real IP, recoverer, then logging.
func (s *Server) setupRoutes(deps Deps) error {
	if deps.Catalog == nil {
		return fmt.Errorf("catalog is required")
	}

	var tokens *auth.TokenService
	if s.config.JWTSecret != "" {
		ts, err := auth.NewTokenService(s.config.JWTSecret, s.config.JWTIssuer)
		if err != nil {
			return err
		}
		tokens = ts
	} else {
		s.logger.Warn("JWT_SECRET not set; sign-in routes will answer 401")
	}

	engine := executor.WithLimit(
		executor.WithDelay(simulated.New(), s.config.ExecuteDelay),
		s.config.ExecuteMaxConcurrent,
	)

	snippetService := service.NewSnippetService(s.db, engine, s.logger)
	learningService := service.NewLearningService(s.db, deps.Catalog, s.logger)
	chatService := chat.NewService(deps.Completer, s.logger)
	if !chatService.Enabled() {
		s.logger.Warn("GEMINI_API_KEY not set; /api/chat will answer 501")
	}

	executeHandler := handler.NewExecuteHandler(engine, s.logger)
	snippetHandler := handler.NewSnippetHandler(snippetService, s.logger)
	catalogHandler := handler.NewCatalogHandler(deps.Catalog, learningService, s.logger)
	learningHandler := handler.NewLearningHandler(learningService, s.logger)
	chatHandler := handler.NewChatHandler(chatService, s.logger)

	chatLimiter := middleware.NewRateLimiter(s.config.ChatRatePerMinute, s.config.ChatBurst, s.logger)
	requireAuth := auth.RequireAuth(tokens)

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	s.router.Get("/healthz", handler.HandleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/execute", executeHandler.HandleExecute)
		r.Get("/languages", executeHandler.HandleLanguages)

		r.Get("/courses", catalogHandler.HandleCourses)
		r.Get("/courses/{id}", catalogHandler.HandleCourse)
		r.Get("/courses/{id}/reviews", learningHandler.HandleListReviews)
		r.With(requireAuth).Post("/courses/{id}/reviews", learningHandler.HandlePostReview)

		r.Get("/curriculum", catalogHandler.HandleCurriculum)
		r.Get("/curriculum/{slug}", catalogHandler.HandleModule)
		r.Get("/resources", catalogHandler.HandleResources)

		r.With(chatLimiter.Middleware).Post("/chat", chatHandler.HandleChat)

		r.Get("/certificates/{number}", learningHandler.HandleVerifyCertificate)

		r.Route("/me", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/profile", learningHandler.HandleGetProfile)
			r.Put("/profile", learningHandler.HandleSaveProfile)
			r.Get("/enrollments", learningHandler.HandleListEnrollments)
			r.Post("/enrollments", learningHandler.HandleEnroll)
			r.Put("/enrollments/{courseId}", learningHandler.HandleUpdateProgress)
			r.Get("/certificates", learningHandler.HandleListCertificates)
			r.Post("/certificates", learningHandler.HandleIssueCertificate)
		})

		r.Route("/snippets", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(auth.OptionalAuth(tokens))
				r.Get("/", snippetHandler.HandleList)
				r.Get("/{id}", snippetHandler.HandleGetByID)
				r.Post("/{id}/run", snippetHandler.HandleRun)
			})
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", snippetHandler.HandleCreate)
				r.Put("/{id}", snippetHandler.HandleUpdate)
				r.Delete("/{id}", snippetHandler.HandleDelete)
			})
		})
	})

	return nil
}

// Start serves until SIGINT or SIGTERM, then drains in-flight requests for
// up to 30 seconds and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	// WriteTimeout leaves room for EXECUTE_DELAY and a slow model reply.
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
