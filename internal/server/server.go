package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/config"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/auth"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/db"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/handlers"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/logging"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/mq"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/services"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/storage"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/store"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/store/memory"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const requestTimeout = 60 * time.Second

// Server wraps the HTTP server, router and the infrastructure they own.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	events     *mq.EventBus
	media      *storage.Storage
	logger     *slog.Logger
}

type repositories struct {
	users         services.UserRepository
	posts         services.PostRepository
	likes         services.LikeRepository
	comments      services.CommentRepository
	messages      services.MessageRepository
	requests      services.FriendRequestRepository
	notifications services.NotificationRepository
}

// New validates cfg, connects every backend it names and builds the router.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	tokens, err := auth.NewTokenManager(cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	s := &Server{logger: logger}
	repos, err := s.openRepositories(ctx, cfg)
	if err != nil {
		return nil, err
	}

	s.media, err = storage.Open(ctx, cfg)
	if err != nil {
		s.close()
		return nil, fmt.Errorf("open media storage: %w", err)
	}

	var publisher services.EventPublisher
	backend, err := mq.OpenBackend(ctx, cfg)
	if err != nil {
		s.close()
		return nil, fmt.Errorf("open events backend: %w", err)
	}
	if backend != nil {
		if s.events, err = mq.NewEventBus(backend, cfg.Events.Channel); err != nil {
			_ = backend.Close()
			s.close()
			return nil, err
		}
		publisher = s.events
	}

	mediaService := services.NewMediaService(s.media, cfg.Media.MaxBytes)
	userService := services.NewUserService(repos.users, mediaService)
	postService := services.NewPostService(repos.posts, repos.likes, mediaService, publisher)
	commentService := services.NewCommentService(repos.comments, repos.posts, publisher)
	messageService := services.NewMessageService(repos.messages, repos.users, publisher)
	requestService := services.NewFriendRequestService(repos.requests, repos.users, publisher)
	notificationService := services.NewNotificationService(repos.notifications)

	guard := handlers.NewGuard(tokens)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		logging.RequestLogger(logger),
		middleware.Recoverer,
		middleware.Timeout(requestTimeout),
		cors.Handler(corsOptions(cfg.CORS)),
	)

	var pinger handlers.Pinger
	if s.db != nil {
		pinger = s.db
	}
	router.Get("/", handlers.Welcome)
	router.Get("/healthz", handlers.Health(pinger))
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, handlers.NewAuthHandler(userService, tokens, cfg.TokenTTL), guard)
	})
	router.Route("/users", func(r chi.Router) {
		handlers.UserRouter(r, handlers.NewUserHandler(userService), guard)
	})
	router.Route("/posts", func(r chi.Router) {
		handlers.PostRouter(r, handlers.NewPostHandler(postService, mediaService.MaxBytes()), guard)
	})
	router.Route("/comments", func(r chi.Router) {
		handlers.CommentRouter(r, handlers.NewCommentHandler(commentService), guard)
	})
	router.Route("/messages", func(r chi.Router) {
		handlers.MessageRouter(r, handlers.NewMessageHandler(messageService), guard)
	})
	router.Route("/friend-requests", func(r chi.Router) {
		handlers.FriendRequestRouter(r, handlers.NewFriendRequestHandler(requestService), guard)
	})
	router.Route("/notifications", func(r chi.Router) {
		handlers.NotificationRouter(r, handlers.NewNotificationHandler(notificationService), guard)
	})
	router.Route("/admin", func(r chi.Router) {
		handlers.AdminRouter(r, handlers.NewAdminHandler(userService, tokens, cfg.AdminTokenTTL), guard)
	})
	router.Route("/adminAuth", func(r chi.Router) {
		handlers.AdminRouter(r, handlers.NewAdminHandler(userService, tokens, cfg.AdminAuthTokenTTL), guard)
	})
	router.Route("/uploads", func(r chi.Router) {
		handlers.MediaRouter(r, handlers.NewMediaHandler(s.media))
	})
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"Not found"}`+"\n")
	})

	s.router = router
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}
	return s, nil
}

func (s *Server) openRepositories(ctx context.Context, cfg config.Config) (repositories, error) {
	if cfg.Database.Driver == config.DriverMemory {
		s.logger.Warn("using in-memory database; data is lost on exit")
		mem := memory.New()
		return repositories{
			users:         mem.Users(),
			posts:         mem.Posts(),
			likes:         mem.Likes(),
			comments:      mem.Comments(),
			messages:      mem.Messages(),
			requests:      mem.FriendRequests(),
			notifications: mem.Notifications(),
		}, nil
	}

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(cfg.Database, db.Up); err != nil {
			return repositories{}, fmt.Errorf("auto-migrate: %w", err)
		}
	}

	conn, err := db.Open(ctx, cfg)
	if err != nil {
		return repositories{}, fmt.Errorf("open database: %w", err)
	}
	s.db = conn
	return repositories{
		users:         store.NewUserRepository(conn),
		posts:         store.NewPostRepository(conn),
		likes:         store.NewLikeRepository(conn),
		comments:      store.NewCommentRepository(conn),
		messages:      store.NewMessageRepository(conn),
		requests:      store.NewFriendRequestRepository(conn),
		notifications: store.NewNotificationRepository(conn),
	}, nil
}

func corsOptions(cfg config.CORSConfig) cors.Options {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	wildcard := false
	for _, origin := range origins {
		if origin == "*" {
			wildcard = true
		}
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: !wildcard,
		MaxAge:           300,
	}
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections, waits for in-flight requests until
// ctx expires and then releases every backend.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	s.close()
	return err
}

func (s *Server) close() {
	if s.events != nil {
		if err := s.events.Close(); err != nil {
			s.logger.Warn("close events backend", "err", err)
		}
	}
	if s.media != nil {
		if closer, ok := s.media.Backend().(io.Closer); ok {
			if err := closer.Close(); err != nil {
				s.logger.Warn("close media backend", "err", err)
			}
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Warn("close database", "err", err)
		}
	}
}
