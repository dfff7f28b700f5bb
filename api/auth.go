package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/service/auth"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service auth.AuthUseCase
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func NewAuthHandler(service auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register mounts login on public and logout on protected.
func (h *AuthHandler) Register(public, protected *gin.RouterGroup) {
	public.POST("/auth/login", h.login)
	protected.POST("/auth/logout", h.logout)
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			failure(c, http.StatusUnauthorized, codeUnauthorized, "invalid username or password")
			return
		}
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, session)
}

func (h *AuthHandler) logout(c *gin.Context) {
	h.service.Logout(c.Request.Context(), actorFrom(c))
	success(c, http.StatusOK, gin.H{"message": "logged out"})
}
