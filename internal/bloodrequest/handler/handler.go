package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"lahu/internal/bloodrequest"
	"lahu/internal/donor"
	id "lahu/pkg/domain"
	dErrors "lahu/pkg/domain-errors"
	"lahu/pkg/platform/httputil"
	"lahu/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the blood request operations the handler needs.
type Service interface {
	Create(ctx context.Context, cmd bloodrequest.CreateCommand) (*bloodrequest.Request, error)
	Get(ctx context.Context, requestID id.BloodRequestID) (*bloodrequest.Request, error)
	List(ctx context.Context, filter bloodrequest.Filter) ([]*bloodrequest.Request, error)
	UpdateStatus(ctx context.Context, requestID id.BloodRequestID, next bloodrequest.Status) (*bloodrequest.Request, error)
	Matches(ctx context.Context, requestID id.BloodRequestID) ([]*donor.Donor, error)
}

// Handler serves the blood request endpoints. Hospitals file requests
// without an account, so every route is public.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register registers the blood request routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/requests", h.HandleCreate)
	r.Get("/requests", h.HandleList)
	r.Get("/requests/{id}", h.HandleGet)
	r.Put("/requests/{id}/status", h.HandleUpdateStatus)
	r.Get("/requests/{id}/matches", h.HandleMatches)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	created, err := h.service.Create(ctx, req.toCommand())
	if err != nil {
		h.logFailure(ctx, "blood request creation failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toRequestResponse(created))
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	filter, err := parseFilter(query.Get("status"), query.Get("bloodType"))
	if err != nil {
		h.logFailure(ctx, "invalid blood request filter", err)
		httputil.WriteError(w, err)
		return
	}

	reqs, err := h.service.List(ctx, filter)
	if err != nil {
		h.logFailure(ctx, "failed to list blood requests", err)
		httputil.WriteError(w, err)
		return
	}
	resp := make([]RequestResponse, 0, len(reqs))
	for _, req := range reqs {
		resp = append(resp, toRequestResponse(req))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID, ok := h.requestIDParam(w, r)
	if !ok {
		return
	}

	req, err := h.service.Get(ctx, requestID)
	if err != nil {
		h.logFailure(ctx, "failed to load blood request", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toRequestResponse(req))
}

func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID, ok := h.requestIDParam(w, r)
	if !ok {
		return
	}

	body, ok := httputil.DecodeAndPrepare[UpdateStatusRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	req, err := h.service.UpdateStatus(ctx, requestID, body.parsedStatus)
	if err != nil {
		h.logFailure(ctx, "blood request status update failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toRequestResponse(req))
}

func (h *Handler) HandleMatches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID, ok := h.requestIDParam(w, r)
	if !ok {
		return
	}

	req, err := h.service.Get(ctx, requestID)
	if err != nil {
		h.logFailure(ctx, "failed to load blood request", err)
		httputil.WriteError(w, err)
		return
	}
	donors, err := h.service.Matches(ctx, requestID)
	if err != nil {
		h.logFailure(ctx, "failed to match donors", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toMatchesResponse(req, donors))
}

func (h *Handler) requestIDParam(w http.ResponseWriter, r *http.Request) (id.BloodRequestID, bool) {
	requestID, err := id.ParseBloodRequestID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request id"))
		return id.BloodRequestID{}, false
	}
	return requestID, true
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
