package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"lahu/internal/donation"
	id "lahu/pkg/domain"
	dErrors "lahu/pkg/domain-errors"
	"lahu/pkg/platform/httputil"
	"lahu/pkg/platform/middleware/admin"
	"lahu/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the donation operations the handler needs.
type Service interface {
	Record(ctx context.Context, actor donation.Actor, cmd donation.RecordCommand) (*donation.Donation, error)
	Get(ctx context.Context, actor donation.Actor, donationID id.DonationID) (*donation.Donation, error)
	List(ctx context.Context, actor donation.Actor, filter donation.Filter) ([]*donation.Donation, error)
	ListForDonor(ctx context.Context, actor donation.Actor, donorID id.UserID) ([]*donation.Donation, error)
	UpdateStatus(ctx context.Context, actor donation.Actor, donationID id.DonationID, next donation.Status) (*donation.Donation, error)
}

// Handler serves the donation history endpoints. Every route requires a
// bearer token.
type Handler struct {
	service     Service
	logger      *slog.Logger
	requireAuth func(http.Handler) http.Handler
}

func New(service Service, logger *slog.Logger, requireAuth func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, logger: logger, requireAuth: requireAuth}
}

// Register registers the donation routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Post("/donations", h.HandleRecord)
		r.Get("/donations", h.HandleList)
		r.Get("/donations/{id}", h.HandleGet)
		r.Put("/donations/{id}/status", h.HandleUpdateStatus)
		r.Get("/users/{id}/donations", h.HandleListForDonor)
	})
}

func actorFrom(ctx context.Context) donation.Actor {
	return donation.Actor{
		UserID:  requestcontext.UserID(ctx),
		IsAdmin: requestcontext.Role(ctx) == admin.RoleAdmin,
	}
}

func (h *Handler) HandleRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RecordDonationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	d, err := h.service.Record(ctx, actorFrom(ctx), req.toCommand())
	if err != nil {
		h.logFailure(ctx, "failed to record donation", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toDonationResponse(d))
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var filter donation.Filter
	if raw := r.URL.Query().Get("status"); raw != "" {
		st, err := donation.ParseStatus(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, err.Error()))
			return
		}
		filter.Status = &st
	}

	ds, err := h.service.List(ctx, actorFrom(ctx), filter)
	if err != nil {
		h.logFailure(ctx, "failed to list donations", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toDonationResponses(ds))
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	donationID, ok := h.donationIDParam(w, r)
	if !ok {
		return
	}

	d, err := h.service.Get(ctx, actorFrom(ctx), donationID)
	if err != nil {
		h.logFailure(ctx, "failed to load donation", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toDonationResponse(d))
}

func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	donationID, ok := h.donationIDParam(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateStatusRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	d, err := h.service.UpdateStatus(ctx, actorFrom(ctx), donationID, req.parsedStatus)
	if err != nil {
		h.logFailure(ctx, "donation status update failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toDonationResponse(d))
}

func (h *Handler) HandleListForDonor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	donorID, err := id.ParseUserID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid user id"))
		return
	}

	ds, err := h.service.ListForDonor(ctx, actorFrom(ctx), donorID)
	if err != nil {
		h.logFailure(ctx, "failed to list donor history", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toDonationResponses(ds))
}

func (h *Handler) donationIDParam(w http.ResponseWriter, r *http.Request) (id.DonationID, bool) {
	donationID, err := id.ParseDonationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid donation id"))
		return id.DonationID{}, false
	}
	return donationID, true
}

func (h *Handler) logFailure(ctx context.Context, msg string, err error) {
	level := slog.LevelError
	if de, ok := dErrors.As(err); ok && httputil.StatusFor(de.Code) < http.StatusInternalServerError {
		level = slog.LevelWarn
	}
	h.logger.Log(ctx, level, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
}
