package audit

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/apex-fest/backend/internal/models"
	"github.com/apex-fest/backend/pkg/response"
)

// Reader lists recent audit entries.
type Reader interface {
	ListRecent(ctx context.Context) ([]models.AuditLog, error)
}

// Handler serves the audit read endpoint.
type Handler struct {
	reader Reader
	logger *zap.Logger
}

// NewHandler creates an audit handler.
func NewHandler(reader Reader, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{reader: reader, logger: logger}
}

// List handles GET /api/audit. Shared-secret auth is applied by
// middleware before this runs.
func (h *Handler) List(c *gin.Context) {
	logs, err := h.reader.ListRecent(c.Request.Context())
	if err != nil {
		h.logger.Error("list audit logs failed", zap.Error(err))
		response.Internal(c, "Error fetching audit logs")
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}
	response.OK(c, gin.H{
		"logs":  logs,
		"count": len(logs),
	})
}
