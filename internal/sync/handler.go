// Package sync serves the authenticated bulk export consumed by the
// spreadsheet automation.
package sync

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/apex-fest/backend/internal/models"
	"github.com/apex-fest/backend/internal/registrations"
	"github.com/apex-fest/backend/pkg/database"
	"github.com/apex-fest/backend/pkg/response"
)

// Store lists registrations for export.
type Store interface {
	List(ctx context.Context, f registrations.Filter) ([]models.Registration, error)
}

// Recorder appends audit entries. Best-effort: a Record failure never
// fails the export.
type Recorder interface {
	Record(ctx context.Context, entry models.AuditLog) error
}

// Handler serves GET /api/sync.
type Handler struct {
	store    Store
	recorder Recorder
	logger   *zap.Logger
}

// NewHandler creates a sync handler. recorder may be nil.
func NewHandler(store Store, recorder Recorder, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, recorder: recorder, logger: logger}
}

// Export handles GET /api/sync. Shared-secret auth is applied by
// middleware; optional query filters: status, program, startDate,
// endDate. Records are returned newest first with every documented field
// present so the sheet script can parse rows without key checks.
func (h *Handler) Export(c *gin.Context) {
	filter := registrations.Filter{
		Status:  c.Query("status"),
		Program: c.Query("program"),
	}
	var err error
	if filter.StartDate, err = parseDate(c.Query("startDate"), false); err != nil {
		response.BadRequest(c, "Invalid startDate")
		return
	}
	if filter.EndDate, err = parseDate(c.Query("endDate"), true); err != nil {
		response.BadRequest(c, "Invalid endDate")
		return
	}

	regs, err := h.store.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("sync export failed", zap.Error(err))
		if errors.Is(err, database.ErrUnavailable) {
			response.ServiceUnavailable(c, "Service temporarily unavailable")
			return
		}
		response.Internal(c, "Database operation failed")
		return
	}
	if regs == nil {
		regs = []models.Registration{}
	}
	for i := range regs {
		if regs[i].Status == "" {
			regs[i].Status = models.StatusUnknown
		}
	}

	if h.recorder != nil {
		entry := models.AuditLog{
			Action:  models.AuditActionSheetSync,
			Records: len(regs),
			Actor:   c.ClientIP(),
		}
		if err := h.recorder.Record(c.Request.Context(), entry); err != nil {
			h.logger.Warn("audit record failed", zap.Error(err))
		}
	}

	response.OK(c, gin.H{
		"data":      regs,
		"count":     len(regs),
		"timestamp": time.Now().UTC(),
	})
}

// parseDate accepts RFC3339 or plain dates; a bare endDate covers the
// whole day.
func parseDate(s string, endOfDay bool) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
