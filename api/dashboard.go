package api

import (
	"net/http"

	"github.com/Domenick1991/hotelbooking/internal/service/dashboard"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service dashboard.DashboardUseCase
}

func NewDashboardHandler(service dashboard.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) Register(router *gin.RouterGroup) {
	router.GET("/dashboard", h.summary)
}

func (h *DashboardHandler) summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, summary)
}
