package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ahmed-sobhani/rag-chat-be-core/internal/apperr"
	"github.com/ahmed-sobhani/rag-chat-be-core/internal/domain"
	"github.com/ahmed-sobhani/rag-chat-be-core/internal/service"
	"github.com/ahmed-sobhani/rag-chat-be-core/pkg/log"
	"github.com/ahmed-sobhani/rag-chat-be-core/pkg/middleware"
	"github.com/ahmed-sobhani/rag-chat-be-core/pkg/response"
)

const appName = "RAG Chat API"

// Handler handles HTTP requests for the chat API.
type Handler struct {
	sessionService service.SessionService
	messageService service.MessageService
	authMiddleware *middleware.AuthMiddleware
	db             *gorm.DB
	startedAt      time.Time
}

// NewHandler creates a new HTTP handler.
func NewHandler(
	sessionService service.SessionService,
	messageService service.MessageService,
	authMiddleware *middleware.AuthMiddleware,
	db *gorm.DB,
) *Handler {
	return &Handler{
		sessionService: sessionService,
		messageService: messageService,
		authMiddleware: authMiddleware,
		db:             db,
		startedAt:      time.Now(),
	}
}

// RegisterRoutes registers all routes.
func (h *Handler) RegisterRoutes(r *gin.Engine, extra ...gin.HandlerFunc) {
	r.GET("/", h.AppInfo)
	r.GET("/health", h.Health)

	api := r.Group("/api/v1")
	api.Use(extra...)
	{
		sessions := api.Group("/chat/sessions", h.authMiddleware.RequireAPIKey())
		{
			sessions.POST("", h.CreateSession)
			sessions.GET("", h.ListSessions)
			sessions.GET("/:id", h.GetSession)
			sessions.PATCH("/:id", h.UpdateSession)
			sessions.PATCH("/:id/favorite", h.ToggleFavorite)
			sessions.DELETE("/:id", h.DeleteSession)

			sessions.POST("/:id/messages", h.CreateMessage)
			sessions.GET("/:id/messages", h.ListMessages)
		}
	}
}

// AppInfo returns the application banner.
func (h *Handler) AppInfo(c *gin.Context) {
	c.JSON(200, gin.H{
		"app":       appName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Health reports readiness: 200 with DB latency when the database is
// reachable, 503 otherwise.
func (h *Handler) Health(c *gin.Context) {
	started := time.Now()

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(503, gin.H{
			"status": "error",
			"checks": gin.H{
				"database": gin.H{"status": "down", "error": err.Error()},
			},
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	c.JSON(200, gin.H{
		"status": "ok",
		"checks": gin.H{
			"database": gin.H{"status": "up", "latencyMs": time.Since(started).Milliseconds()},
		},
		"uptime":    time.Since(h.startedAt).Seconds(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// CreateSession creates a new chat session.
func (h *Handler) CreateSession(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	user := middleware.GetUser(c)

	var req domain.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("failed to bind create session request")
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.sessionService.Create(ctx, user, &req)
	if err != nil {
		h.renderError(c, err, "failed to create session")
		return
	}

	response.Created(c, session)
}

// GetSession retrieves a session by ID.
func (h *Handler) GetSession(c *gin.Context) {
	ctx := c.Request.Context()

	session, err := h.sessionService.Get(ctx, c.Param("id"), middleware.GetUser(c))
	if err != nil {
		h.renderError(c, err, "failed to get session")
		return
	}

	response.Success(c, session)
}

// ListSessions lists the caller's sessions with filtering and pagination.
func (h *Handler) ListSessions(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.ListSessionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		l.Warn().Err(err).Msg("failed to bind list sessions request")
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.sessionService.List(ctx, middleware.GetUser(c), &req)
	if err != nil {
		h.renderError(c, err, "failed to list sessions")
		return
	}

	response.Success(c, result)
}

// UpdateSession patches a session's title and/or favorite flag.
func (h *Handler) UpdateSession(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("failed to bind update session request")
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.sessionService.Patch(ctx, c.Param("id"), middleware.GetUser(c), &req)
	if err != nil {
		h.renderError(c, err, "failed to update session")
		return
	}

	response.Success(c, session)
}

// ToggleFavorite flips a session's favorite flag.
func (h *Handler) ToggleFavorite(c *gin.Context) {
	ctx := c.Request.Context()

	session, err := h.sessionService.ToggleFavorite(ctx, c.Param("id"), middleware.GetUser(c))
	if err != nil {
		h.renderError(c, err, "failed to toggle session favorite")
		return
	}

	response.Success(c, session)
}

// DeleteSession soft-deletes a session.
func (h *Handler) DeleteSession(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.sessionService.Delete(ctx, c.Param("id"), middleware.GetUser(c)); err != nil {
		h.renderError(c, err, "failed to delete session")
		return
	}

	response.Success(c, gin.H{"message": "session deleted successfully"})
}

// CreateMessage sends a message to a chat session.
func (h *Handler) CreateMessage(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("failed to bind create message request")
		response.BadRequest(c, err.Error())
		return
	}

	message, err := h.messageService.Create(ctx, c.Param("id"), middleware.GetUser(c), &req)
	if err != nil {
		h.renderError(c, err, "failed to create message")
		return
	}

	response.Created(c, message)
}

// ListMessages lists a session's messages with filtering and pagination.
func (h *Handler) ListMessages(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.ListMessagesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		l.Warn().Err(err).Msg("failed to bind list messages request")
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.messageService.List(ctx, c.Param("id"), middleware.GetUser(c), &req)
	if err != nil {
		h.renderError(c, err, "failed to list messages")
		return
	}

	response.Success(c, result)
}

// renderError maps the domain error taxonomy to HTTP status codes.
// Anything outside the taxonomy is a store-level failure and surfaces
// as a 500 without leaking details.
func (h *Handler) renderError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, apperr.ErrInvalidArgument):
		response.BadRequest(c, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, apperr.ErrForbidden):
		response.Forbidden(c, err.Error())
	default:
		logger := log.Ctx(c.Request.Context())
		logger.Error().Err(err).Msg(logMsg)
		response.InternalError(c, logMsg)
	}
}
