package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/hotelbooking/internal/service/rooms"
	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	service rooms.RoomUseCase
}

type availabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

func NewRoomHandler(service rooms.RoomUseCase) *RoomHandler {
	return &RoomHandler{service: service}
}

func (h *RoomHandler) Register(router *gin.RouterGroup) {
	router.GET("/rooms", h.list)
	router.GET("/rooms/:id", h.get)
	router.GET("/rooms/:id/quote", h.quote)
	router.POST("/rooms", AdminOnly(), h.create)
	router.PATCH("/rooms/:id/availability", AdminOnly(), h.setAvailability)
	router.DELETE("/rooms/:id", AdminOnly(), h.delete)
}

func (h *RoomHandler) list(c *gin.Context) {
	var filter rooms.ListFilter
	if v := c.Query("available"); v != "" {
		onlyAvailable, err := strconv.ParseBool(v)
		if err != nil {
			failure(c, http.StatusBadRequest, codeInvalidBody, "available must be true or false")
			return
		}
		filter.OnlyAvailable = onlyAvailable
	}

	list, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, list)
}

func (h *RoomHandler) get(c *gin.Context) {
	room, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, room)
}

// quote prices ?check_in=&check_out= in the room.
func (h *RoomHandler) quote(c *gin.Context) {
	quote, err := h.service.Quote(c.Request.Context(), c.Param("id"), c.Query("check_in"), c.Query("check_out"))
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, quote)
}

func (h *RoomHandler) create(c *gin.Context) {
	var req rooms.CreateRoomInput
	if !bindJSON(c, &req) {
		return
	}

	room, err := h.service.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusCreated, room)
}

func (h *RoomHandler) setAvailability(c *gin.Context) {
	var req availabilityRequest
	if !bindJSON(c, &req) {
		return
	}

	room, err := h.service.SetAvailability(c.Request.Context(), actorFrom(c), c.Param("id"), *req.IsAvailable)
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, room)
}

func (h *RoomHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"room_id": c.Param("id")})
}
