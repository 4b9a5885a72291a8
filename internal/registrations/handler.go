package registrations

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/apex-fest/backend/internal/models"
	"github.com/apex-fest/backend/pkg/database"
	"github.com/apex-fest/backend/pkg/response"
)

// idAttempts bounds registrationId regeneration when the small random
// space collides.
const idAttempts = 3

// Store is the persistence surface the intake workflow needs.
type Store interface {
	Exists(ctx context.Context, email, contact string) (bool, error)
	Insert(ctx context.Context, reg *models.Registration) error
}

// Notifier forwards a created registration without blocking the response.
type Notifier interface {
	Dispatch(reg models.Registration)
}

// RegisterRequest is the body for POST /api/registrations. reelLink is a
// legacy alias for profileLink kept for the old form.
type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Contact     string `json:"contact"`
	Program     string `json:"program"`
	Semester    string `json:"semester"`
	ProfileLink string `json:"profileLink"`
	ReelLink    string `json:"reelLink"`
}

// Handler handles registration intake.
type Handler struct {
	store    Store
	notifier Notifier
	linkMode LinkMode
	logger   *zap.Logger
}

// NewHandler creates a registrations handler.
func NewHandler(store Store, notifier Notifier, linkMode LinkMode, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, notifier: notifier, linkMode: linkMode, logger: logger}
}

// Register handles POST /api/registrations: validate, duplicate
// pre-check, insert (regenerating the id on collision), then hand off to
// the notifier and respond. The unique indexes remain authoritative for
// duplicates; the pre-check only gives a friendlier fast path.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	link := req.ProfileLink
	if link == "" {
		link = req.ReelLink
	}
	norm, verr := Validate(Input{
		Name:        req.Name,
		Email:       req.Email,
		Contact:     req.Contact,
		Program:     req.Program,
		Semester:    req.Semester,
		ProfileLink: link,
	}, h.linkMode)
	if verr != nil {
		response.BadRequest(c, verr.Error())
		return
	}

	ctx := c.Request.Context()

	if exists, err := h.store.Exists(ctx, norm.Email, ""); err != nil {
		h.fail(c, err)
		return
	} else if exists {
		response.BadRequest(c, "This email is already registered")
		return
	}
	if exists, err := h.store.Exists(ctx, "", norm.Contact); err != nil {
		h.fail(c, err)
		return
	} else if exists {
		response.BadRequest(c, "This phone number is already registered")
		return
	}

	reg := models.Registration{
		FullName:    norm.FullName,
		Email:       norm.Email,
		Contact:     norm.Contact,
		Program:     norm.Program,
		Semester:    norm.Semester,
		ProfileLink: norm.ProfileLink,
		Status:      models.StatusSubmitted,
		CreatedAt:   time.Now().UTC(),
	}

	var insertErr error
	for attempt := 0; attempt < idAttempts; attempt++ {
		reg.RegistrationID = NewID(reg.CreatedAt)
		insertErr = h.store.Insert(ctx, &reg)
		if !errors.Is(insertErr, ErrDuplicateID) {
			break
		}
		h.logger.Warn("registration id collision, regenerating",
			zap.String("registration_id", reg.RegistrationID), zap.Int("attempt", attempt+1))
	}
	if insertErr != nil {
		switch {
		case errors.Is(insertErr, ErrDuplicateEmail):
			response.BadRequest(c, "This email is already registered")
		case errors.Is(insertErr, ErrDuplicateContact):
			response.BadRequest(c, "This phone number is already registered")
		default:
			h.fail(c, insertErr)
		}
		return
	}

	if h.notifier != nil {
		h.notifier.Dispatch(reg)
	}

	h.logger.Info("registration created",
		zap.String("registration_id", reg.RegistrationID), zap.String("program", reg.Program))
	response.Created(c, gin.H{
		"registrationId": reg.RegistrationID,
		"timestamp":      reg.CreatedAt,
	})
}

func (h *Handler) fail(c *gin.Context, err error) {
	h.logger.Error("registration failed", zap.Error(err))
	if errors.Is(err, database.ErrUnavailable) {
		response.ServiceUnavailable(c, "Service temporarily unavailable")
		return
	}
	response.Internal(c, "Server error during registration")
}
