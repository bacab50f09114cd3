package service

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/theapemachine/hybrid-travel/pkg/errors"
	"github.com/theapemachine/hybrid-travel/pkg/types"
	"github.com/theapemachine/hybrid-travel/pkg/utils"
)

// SessionCookie names the cookie that carries the session id.
const SessionCookie = "session_id"

const banner = "Hybrid Travel Assistant: POST /api/chat with {\"message\": \"...\"} to ask about Vietnam."

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// ChatResponse is the body returned for an answered question.
type ChatResponse struct {
	Response  string        `json:"response"`
	Sources   types.Sources `json:"sources"`
	Timestamp string        `json:"timestamp"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Services  any    `json:"services,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

// StatsResponse is the body of GET /api/stats.
type StatsResponse struct {
	TotalConversations int    `json:"total_conversations"`
	TotalMessages      int    `json:"total_messages"`
	ActiveSessions     int    `json:"active_sessions"`
	SystemStatus       string `json:"system_status"`
}

func (srv *ChatServer) handleRoot(ctx fiber.Ctx) error {
	return ctx.SendString(banner)
}

// limit rejects a client that asks faster than the limiter allows.
func (srv *ChatServer) limit(ctx fiber.Ctx) error {
	if srv.limiter == nil {
		return ctx.Next()
	}

	ok, wait := srv.limiter.Allow(ctx.IP())
	if !ok {
		ctx.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		return errors.ErrRateLimited
	}

	return ctx.Next()
}

func (srv *ChatServer) handleChat(ctx fiber.Ctx) error {
	var req ChatRequest

	if err := ctx.Bind().Body(&req); err != nil {
		return errors.ErrInvalidBody
	}

	req.Message = strings.TrimSpace(req.Message)

	if err := utils.ValidateStruct(req); err != nil {
		return errors.ErrEmptyMessage
	}

	sessionID := srv.session(ctx)
	srv.store.Append(sessionID, types.NewUserEntry(req.Message))

	log.Info("processing query", "session", sessionID, "query", req.Message)

	answer, err := srv.assistant.Answer(ctx, req.Message)
	if err != nil {
		log.Error("chat pipeline failed", "session", sessionID, "error", err)
		return errors.ErrProcessing
	}

	entry := types.NewAssistantEntry(answer.Response, answer.Sources())
	srv.store.Append(sessionID, entry)

	return ctx.JSON(ChatResponse{
		Response:  answer.Response,
		Sources:   answer.Sources(),
		Timestamp: entry.Timestamp,
	})
}

func (srv *ChatServer) handleHealth(ctx fiber.Ctx) error {
	health, err := srv.assistant.Health(ctx)
	if err != nil {
		log.Error("health check failed", "error", err)

		return ctx.Status(fiber.StatusInternalServerError).JSON(HealthResponse{
			Status:    "error",
			Error:     err.Error(),
			Timestamp: types.Timestamp(time.Now()),
		})
	}

	return ctx.JSON(HealthResponse{
		Status:    health.Status(),
		Services:  health,
		Timestamp: types.Timestamp(time.Now()),
	})
}

func (srv *ChatServer) handleConversation(ctx fiber.Ctx) error {
	entries, ok := srv.store.Get(ctx.Cookies(SessionCookie))
	if !ok || entries == nil {
		entries = []types.ConversationEntry{}
	}

	return ctx.JSON(entries)
}

func (srv *ChatServer) handleClear(ctx fiber.Ctx) error {
	if sessionID := ctx.Cookies(SessionCookie); sessionID != "" {
		srv.store.Delete(sessionID)
	}

	ctx.ClearCookie(SessionCookie)

	return ctx.JSON(fiber.Map{"status": "cleared"})
}

func (srv *ChatServer) handleStats(ctx fiber.Ctx) error {
	stats := srv.store.Stats()

	return ctx.JSON(StatsResponse{
		TotalConversations: stats.TotalConversations,
		TotalMessages:      stats.TotalMessages,
		ActiveSessions:     stats.ActiveSessions,
		SystemStatus:       "operational",
	})
}

// session returns the caller's session id, minting one and setting the
// cookie when the request carries none.
func (srv *ChatServer) session(ctx fiber.Ctx) string {
	if sessionID := ctx.Cookies(SessionCookie); sessionID != "" {
		if _, err := uuid.Parse(sessionID); err == nil {
			return sessionID
		}
	}

	sessionID := uuid.NewString()

	ctx.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    sessionID,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return sessionID
}
