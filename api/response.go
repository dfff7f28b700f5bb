package api

import (
	"log"
	"net/http"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	codeUnauthorized = "UNAUTHORIZED"
	codeInvalidBody  = "INVALID_REQUEST"
)

type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func success(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{Success: true, Data: data})
}

func failure(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, envelope{Success: false, Error: &errorBody{Code: code, Message: message}})
}

// respondError maps a service error to its status code. Internal errors are logged
// and their details hidden from the client.
func respondError(c *gin.Context, err error) {
	code := domain.Kind(err)
	status := statusFor(code)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.FullPath(), err)
		message = "internal server error"
	}
	failure(c, status, code, message)
}

func statusFor(code string) int {
	switch code {
	case domain.CodeValidation:
		return http.StatusBadRequest
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeDuplicateRoomNumber, domain.CodeRoomUnavailable:
		return http.StatusConflict
	case domain.CodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func bindJSON(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		failure(c, http.StatusBadRequest, codeInvalidBody, err.Error())
		return false
	}
	return true
}
