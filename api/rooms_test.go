package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/pricing"
	"github.com/Domenick1991/hotelbooking/internal/service/rooms"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRoomUseCase struct {
	mock.Mock
}

func (m *MockRoomUseCase) Create(ctx context.Context, actor domain.Actor, input rooms.CreateRoomInput) (*domain.Room, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomUseCase) Get(ctx context.Context, roomID string) (*domain.Room, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomUseCase) List(ctx context.Context, filter rooms.ListFilter) ([]domain.Room, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockRoomUseCase) Quote(ctx context.Context, roomID, checkIn, checkOut string) (*pricing.Quote, error) {
	args := m.Called(ctx, roomID, checkIn, checkOut)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Quote), args.Error(1)
}

func (m *MockRoomUseCase) SetAvailability(ctx context.Context, actor domain.Actor, roomID string, available bool) (*domain.Room, error) {
	args := m.Called(ctx, actor, roomID, available)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomUseCase) Delete(ctx context.Context, actor domain.Actor, roomID string) error {
	args := m.Called(ctx, actor, roomID)
	return args.Error(0)
}

func TestRoomHandler_list(t *testing.T) {
	mockService := &MockRoomUseCase{}
	handler := NewRoomHandler(mockService)

	c, w := newTestContext("GET", "/api/v1/rooms?available=true", nil, testGuest)
	mockService.On("List", c.Request.Context(), rooms.ListFilter{OnlyAvailable: true}).
		Return([]domain.Room{domain.NewRoom("R001", "101", domain.RoomVariantStandard)}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"room_type":"Standard"`)
	assert.Contains(t, w.Body.String(), `"base_price":500000`)
	mockService.AssertExpectations(t)
}

func TestRoomHandler_list_BadFilter(t *testing.T) {
	mockService := &MockRoomUseCase{}
	handler := NewRoomHandler(mockService)
	c, w := newTestContext("GET", "/api/v1/rooms?available=maybe", nil, testGuest)

	handler.list(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestRoomHandler_create(t *testing.T) {
	mockService := &MockRoomUseCase{}
	handler := NewRoomHandler(mockService)

	input := rooms.CreateRoomInput{RoomType: "Suite", RoomNumber: "301"}
	c, w := newTestContext("POST", "/api/v1/rooms", input, testAdmin)
	room := domain.NewRoom("R001", "301", domain.RoomVariantSuite)
	mockService.On("Create", c.Request.Context(), testAdmin, input).Return(&room, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)
	assert.Contains(t, string(resp.Data), `"capacity":4`)
	mockService.AssertExpectations(t)
}

func TestRoomHandler_create_Duplicate(t *testing.T) {
	mockService := &MockRoomUseCase{}
	handler := NewRoomHandler(mockService)

	input := rooms.CreateRoomInput{RoomType: "Deluxe", RoomNumber: "301"}
	c, w := newTestContext("POST", "/api/v1/rooms", input, testAdmin)
	mockService.On("Create", c.Request.Context(), testAdmin, input).Return(nil, domain.ErrDuplicateRoomNumber)

	handler.create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeEnvelope(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, domain.CodeDuplicateRoomNumber, resp.Error.Code)
}

func TestRoomHandler_setAvailability(t *testing.T) {
	mockService := &MockRoomUseCase{}
	handler := NewRoomHandler(mockService)

	c, w := newTestContext("PATCH", "/api/v1/rooms/R001/availability", gin.H{"is_available": false}, testAdmin)
	c.Params = gin.Params{{Key: "id", Value: "R001"}}
	room := domain.NewRoom("R001", "101", domain.RoomVariantStandard)
	room.IsAvailable = false
	mockService.On("SetAvailability", c.Request.Context(), testAdmin, "R001", false).Return(&room, nil)

	handler.setAvailability(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_available":false`)
	mockService.AssertExpectations(t)
}

func TestRoomHandler_setAvailability_MissingFlag(t *testing.T) {
	mockService := &MockRoomUseCase{}
	handler := NewRoomHandler(mockService)

	c, w := newTestContext("PATCH", "/api/v1/rooms/R001/availability", gin.H{}, testAdmin)
	c.Params = gin.Params{{Key: "id", Value: "R001"}}

	handler.setAvailability(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "SetAvailability", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRoomHandler_getAndDelete(t *testing.T) {
	mockService := &MockRoomUseCase{}
	handler := NewRoomHandler(mockService)

	c, w := newTestContext("GET", "/api/v1/rooms/R404", nil, testGuest)
	c.Params = gin.Params{{Key: "id", Value: "R404"}}
	mockService.On("Get", c.Request.Context(), "R404").Return(nil, domain.ErrRoomNotFound)

	handler.get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	c, w = newTestContext("DELETE", "/api/v1/rooms/R001", nil, testAdmin)
	c.Params = gin.Params{{Key: "id", Value: "R001"}}
	mockService.On("Delete", c.Request.Context(), testAdmin, "R001").Return(nil)

	handler.delete(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"room_id":"R001"`)
	mockService.AssertExpectations(t)
}

func TestRoomHandler_quote(t *testing.T) {
	mockService := &MockRoomUseCase{}
	handler := NewRoomHandler(mockService)

	c, w := newTestContext("GET", "/api/v1/rooms/R001/quote?check_in=2025-12-25&check_out=2025-12-30", nil, testGuest)
	c.Params = gin.Params{{Key: "id", Value: "R001"}}
	quote := pricing.QuoteStay(domain.RoomVariantSuite, 5)
	mockService.On("Quote", c.Request.Context(), "R001", "2025-12-25", "2025-12-30").Return(&quote, nil)

	handler.quote(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":6375000`)

	c, w = newTestContext("GET", "/api/v1/rooms/R001/quote?check_in=2025-12-30&check_out=2025-12-25", nil, testGuest)
	c.Params = gin.Params{{Key: "id", Value: "R001"}}
	mockService.On("Quote", c.Request.Context(), "R001", "2025-12-30", "2025-12-25").Return(nil, domain.ErrInvalidDateRange)

	handler.quote(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertExpectations(t)
}
