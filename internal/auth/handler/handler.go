package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"lahu/internal/auth/models"
	"lahu/internal/auth/service"
	id "lahu/pkg/domain"
	dErrors "lahu/pkg/domain-errors"
	"lahu/pkg/platform/httputil"
	"lahu/pkg/platform/middleware/admin"
	"lahu/pkg/requestcontext"
)

// Service defines the account operations the handler needs.
type Service interface {
	Signup(ctx context.Context, cmd service.SignupCommand) (*models.User, error)
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	GetUser(ctx context.Context, userID id.UserID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID id.UserID, update models.ProfileUpdate) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// Handler serves signup, login and the caller's own account.
type Handler struct {
	service     Service
	logger      *slog.Logger
	requireAuth func(http.Handler) http.Handler
}

func New(service Service, logger *slog.Logger, requireAuth func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, logger: logger, requireAuth: requireAuth}
}

// Register registers the auth and user routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/signup", h.HandleSignup)
	r.Post("/auth/login", h.HandleLogin)
	r.Post("/token", h.HandleTokenForm)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Get("/auth/me", h.HandleMe)
		r.Post("/auth/logout", h.HandleLogout)
		r.Patch("/users/me", h.HandleUpdateMe)
		r.With(admin.RequireAdmin(h.logger)).Get("/users", h.HandleListUsers)
	})
}

func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SignupRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	user, err := h.service.Signup(ctx, service.SignupCommand{
		Email:     req.Email,
		Password:  req.Password,
		Name:      req.Name,
		Phone:     req.Phone,
		BloodType: req.parsedBloodType,
		Location:  req.Location,
		Role:      models.RoleDonor,
	})
	if err != nil {
		h.logFailure(ctx, "signup failed", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	h.login(w, r, req.Email, req.Password)
}

// HandleTokenForm accepts OAuth2 password-grant style form fields
// (username, password) for clients that speak that dialect.
func (h *Handler) HandleTokenForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<16)
	if err := r.ParseForm(); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid form body"))
		return
	}
	username := strings.TrimSpace(r.PostForm.Get("username"))
	password := r.PostForm.Get("password")
	if username == "" || password == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "username and password are required"))
		return
	}
	h.login(w, r, username, password)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request, email, password string) {
	ctx := r.Context()
	result, err := h.service.Login(ctx, email, password)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
			w.Header().Set("WWW-Authenticate", "Bearer")
		}
		h.logFailure(ctx, "login failed", err)
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	httputil.WriteJSON(w, http.StatusOK, toTokenResponse(result))
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, err := h.service.GetUser(ctx, requestcontext.UserID(ctx))
	if err != nil {
		h.logFailure(ctx, "failed to load current user", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token, ok := requestcontext.AccessToken(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "access token missing from context despite auth middleware",
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}
	if err := h.service.Logout(ctx, token.ID, token.ExpiresAt); err != nil {
		h.logFailure(ctx, "logout failed", err)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[UpdateProfileRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	user, err := h.service.UpdateProfile(ctx, requestcontext.UserID(ctx), req.toModel())
	if err != nil {
		h.logFailure(ctx, "profile update failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	users, err := h.service.ListUsers(ctx)
	if err != nil {
		h.logFailure(ctx, "failed to list users", err)
		httputil.WriteError(w, err)
		return
	}
	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// logFailure logs client errors at warn and everything else at error.
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
