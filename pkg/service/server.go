package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"
	fiberadaptor "github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/logger"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/theapemachine/hybrid-travel/pkg/errors"
	"github.com/theapemachine/hybrid-travel/pkg/metrics"
	"github.com/theapemachine/hybrid-travel/pkg/rag"
	"github.com/theapemachine/hybrid-travel/pkg/ratelimit"
	"github.com/theapemachine/hybrid-travel/pkg/stores"
)

// Assistant is the part of rag.Assistant the HTTP surface depends on.
type Assistant interface {
	Answer(ctx context.Context, query string) (rag.Answer, error)
	Health(ctx context.Context) (rag.Health, error)
}

/*
ChatServer exposes the travel assistant over HTTP. Each browser session is
identified by a cookie and keeps its own conversation history.
*/
type ChatServer struct {
	app       *fiber.App
	assistant Assistant
	store     stores.ConversationStore
	metrics   *metrics.Collector
	limiter   *ratelimit.Limiter
	addr      string
}

type ChatServerOption func(*ChatServer)

func NewChatServer(assistant Assistant, options ...ChatServerOption) *ChatServer {
	srv := &ChatServer{
		assistant: assistant,
		addr:      "0.0.0.0:5000",
	}

	for _, option := range options {
		option(srv)
	}

	if srv.store == nil {
		srv.store = stores.NewInMemoryConversationStore()
	}

	if srv.metrics == nil {
		srv.metrics = metrics.NewCollector()
	}

	srv.app = fiber.New(fiber.Config{
		AppName:      "Hybrid Travel Assistant",
		ServerHeader: "Hybrid-Travel-Server",
		ErrorHandler: srv.handleError,
	})

	srv.routes()

	return srv
}

func (srv *ChatServer) routes() {
	srv.app.Use(recoverer.New(), logger.New(logger.Config{
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/metrics"
		},
	}))

	srv.app.Use("/api/chat", fiber.Handler(srv.limit))

	srv.app.Get("/", srv.handleRoot)
	srv.app.Post("/api/chat", srv.handleChat)
	srv.app.Get("/api/health", srv.handleHealth)
	srv.app.Get("/api/conversation", srv.handleConversation)
	srv.app.Post("/api/clear", srv.handleClear)
	srv.app.Get("/api/stats", srv.handleStats)
	srv.app.Get("/metrics", fiberadaptor.HTTPHandler(srv.metrics.Handler()))

	srv.app.Use(fiber.Handler(func(ctx fiber.Ctx) error {
		return errors.ErrNotFound
	}))
}

// App returns the underlying fiber app, so tests can drive it directly.
func (srv *ChatServer) App() *fiber.App {
	return srv.app
}

// Start listens until the server is shut down.
func (srv *ChatServer) Start() error {
	log.Info("listening", "addr", srv.addr)
	return srv.app.Listen(srv.addr, fiber.ListenConfig{DisableStartupMessage: true})
}

func (srv *ChatServer) Shutdown(ctx context.Context) error {
	return srv.app.ShutdownWithContext(ctx)
}

/*
handleError renders every error as {"error": ...}. API errors carry their
own status; routing errors from fiber keep theirs; everything else is a 500.
*/
func (srv *ChatServer) handleError(ctx fiber.Ctx, err error) error {
	var apiErr *errors.APIError

	if stderrors.As(err, &apiErr) {
		return ctx.Status(apiErr.Status).JSON(apiErr)
	}

	var fiberErr *fiber.Error

	if stderrors.As(err, &fiberErr) {
		switch fiberErr.Code {
		case fiber.StatusNotFound:
			return ctx.Status(fiber.StatusNotFound).JSON(errors.ErrNotFound)
		case fiber.StatusMethodNotAllowed, fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}
	}

	log.Error("unhandled error", "path", ctx.Path(), "error", err)

	return ctx.Status(fiber.StatusInternalServerError).JSON(errors.ErrInternal)
}

func WithConversationStore(store stores.ConversationStore) ChatServerOption {
	return func(srv *ChatServer) {
		srv.store = store
	}
}

func WithMetrics(collector *metrics.Collector) ChatServerOption {
	return func(srv *ChatServer) {
		srv.metrics = collector
	}
}

// WithRateLimiter limits chat requests per client IP.
func WithRateLimiter(limiter *ratelimit.Limiter) ChatServerOption {
	return func(srv *ChatServer) {
		srv.limiter = limiter
	}
}

func WithAddr(host string, port int) ChatServerOption {
	return func(srv *ChatServer) {
		srv.addr = fmt.Sprintf("%s:%d", host, port)
	}
}
