package api

import (
	"net/http"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("/bookings", h.list)
	router.GET("/bookings/:id", h.get)
	router.POST("/bookings", h.create)
	router.PATCH("/bookings/:id/dates", h.editDates)
	router.PATCH("/bookings/:id/status", h.setStatus)
	router.POST("/bookings/:id/cancel", h.cancel)
	router.DELETE("/bookings/:id", h.delete)
}

// list returns every booking to admins and their own bookings to guests.
// Admins may narrow the list with ?user_id=.
func (h *BookingHandler) list(c *gin.Context) {
	actor := actorFrom(c)
	var (
		bookings []domain.Booking
		err      error
	)
	switch userID := c.Query("user_id"); {
	case userID != "":
		bookings, err = h.service.ListForUser(c.Request.Context(), actor, userID)
	case actor.IsAdmin():
		bookings, err = h.service.ListAll(c.Request.Context(), actor)
	default:
		bookings, err = h.service.ListForUser(c.Request.Context(), actor, actor.UserID)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, bookings)
}

func (h *BookingHandler) get(c *gin.Context) {
	details, err := h.service.Get(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, details)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req booking.CreateBookingInput
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.service.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusCreated, created)
}

func (h *BookingHandler) editDates(c *gin.Context) {
	var req booking.EditDatesInput
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.service.EditDates(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, updated)
}

func (h *BookingHandler) setStatus(c *gin.Context) {
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}
	h.changeStatus(c, req.Status)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	h.changeStatus(c, string(domain.BookingStatusCancelled))
}

func (h *BookingHandler) changeStatus(c *gin.Context, status string) {
	updated, err := h.service.SetStatus(c.Request.Context(), actorFrom(c), c.Param("id"), status)
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, updated)
}

func (h *BookingHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"booking_id": c.Param("id")})
}
