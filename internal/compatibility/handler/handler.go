package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"lahu/internal/bloodtype"
	dErrors "lahu/pkg/domain-errors"
	"lahu/pkg/platform/httputil"
	"lahu/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the compatibility operations the handler needs.
type Service interface {
	Check(ctx context.Context, donor, recipient string) (bloodtype.Result, error)
	Profile(ctx context.Context, bloodType string) (bloodtype.Profile, error)
}

// Handler serves the public compatibility endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register registers the compatibility routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/compatibility", h.HandleCheck)
	r.Get("/compatibility/{bloodType}", h.HandleProfile)
}

// HandleCheck answers whether donorType can give blood to recipientType.
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CheckRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Check(ctx, req.DonorType, req.RecipientType)
	if err != nil {
		var invalid *bloodtype.InvalidBloodTypeError
		if errors.As(err, &invalid) {
			h.logger.WarnContext(ctx, "invalid blood type in compatibility check",
				"request_id", requestID,
				"value", invalid.Value,
			)
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, invalid.Error()))
			return
		}
		h.logger.ErrorContext(ctx, "compatibility check failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toCheckResponse(result))
}

// HandleProfile returns the donate/receive lists for one blood type.
func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	raw := chi.URLParam(r, "bloodType")
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}

	profile, err := h.service.Profile(ctx, raw)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.InfoContext(ctx, "unknown blood type requested",
				"request_id", requestID,
				"value", raw,
			)
		} else {
			h.logger.ErrorContext(ctx, "failed to load blood type profile",
				"request_id", requestID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toProfileResponse(profile))
}
