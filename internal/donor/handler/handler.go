package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"lahu/internal/donor"
	id "lahu/pkg/domain"
	dErrors "lahu/pkg/domain-errors"
	"lahu/pkg/platform/httputil"
	"lahu/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the registry operations the handler needs.
type Service interface {
	Register(ctx context.Context, cmd donor.RegisterCommand) (*donor.Donor, error)
	Get(ctx context.Context, donorID id.DonorID) (*donor.Donor, error)
	Search(ctx context.Context, q donor.SearchQuery) ([]*donor.Donor, error)
}

// Handler serves the donor registry. Reads are public; registering requires
// an authenticated caller.
type Handler struct {
	service     Service
	logger      *slog.Logger
	requireAuth func(http.Handler) http.Handler
}

func New(service Service, logger *slog.Logger, requireAuth func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, logger: logger, requireAuth: requireAuth}
}

// Register registers the donor routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/donors", h.HandleSearch)
	r.Get("/donors/{id}", h.HandleGet)
	r.With(h.requireAuth).Post("/donors", h.HandleRegister)
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RegisterDonorRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	d, err := h.service.Register(ctx, req.toCommand())
	if err != nil {
		h.logFailure(ctx, "donor registration failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toDonorResponse(d))
}

func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	q, err := parseSearchQuery(query.Get("bloodType"), query.Get("compatibleWith"), query.Get("location"))
	if err != nil {
		h.logFailure(ctx, "invalid donor search", err)
		httputil.WriteError(w, err)
		return
	}

	donors, err := h.service.Search(ctx, q)
	if err != nil {
		h.logFailure(ctx, "donor search failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toDonorResponses(donors))
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	donorID, err := id.ParseDonorID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid donor id"))
		return
	}

	d, err := h.service.Get(ctx, donorID)
	if err != nil {
		h.logFailure(ctx, "failed to load donor", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toDonorResponse(d))
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
