package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bestchance/orderdesk/internal/pkg/auth"
	"github.com/bestchance/orderdesk/internal/server/http/dto"
)

// AuthHandler processes login and logout.
type AuthHandler struct {
	facade   AuthFacade
	sessions auth.SessionStore
	logger   *slog.Logger
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade, sessions auth.SessionStore, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{facade: facade, sessions: sessions, logger: logger}
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	session, err := h.facade.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.sessions.Save(c.Writer, c.Request, session); err != nil {
		h.logger.Error("session save failed", slog.String("username", session.Username), slog.Any("error", err))
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.SessionResponse{Username: session.Username})
}

// Logout handles POST /api/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Clear(c.Writer, c.Request); err != nil {
		h.logger.Warn("session clear failed", slog.Any("error", err))
	}
	c.Status(http.StatusNoContent)
}

// Session handles GET /api/session.
func (h *AuthHandler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, dto.SessionResponse{Username: CurrentSession(c).Username})
}
