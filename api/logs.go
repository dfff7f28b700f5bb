package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type LogReader interface {
	Tail(n int) ([]string, error)
}

type LogHandler struct {
	reader       LogReader
	defaultLimit int
}

func NewLogHandler(reader LogReader, defaultLimit int) *LogHandler {
	if defaultLimit <= 0 {
		defaultLimit = 100
	}
	return &LogHandler{reader: reader, defaultLimit: defaultLimit}
}

func (h *LogHandler) Register(router *gin.RouterGroup) {
	router.GET("/logs", AdminOnly(), h.tail)
}

// tail returns the newest lines first.
func (h *LogHandler) tail(c *gin.Context) {
	limit := h.defaultLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			failure(c, http.StatusBadRequest, codeInvalidBody, "limit must be a positive integer")
			return
		}
		limit = n
	}

	lines, err := h.reader.Tail(limit)
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"lines": lines})
}
