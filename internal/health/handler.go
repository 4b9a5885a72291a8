package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const pingTimeout = 5 * time.Second

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves GET /api/health. No auth.
type Handler struct {
	pinger Pinger
}

// NewHandler creates a health handler.
func NewHandler(pinger Pinger) *Handler {
	return &Handler{pinger: pinger}
}

// Check reports store connectivity.
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	status := "connected"
	code := http.StatusOK
	if err := h.pinger.Ping(ctx); err != nil {
		status = "disconnected"
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC(),
	})
}
