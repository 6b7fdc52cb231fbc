package admin

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	id "lahu/pkg/domain"
	"lahu/pkg/requestcontext"
)

func TestRequireAdmin(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	for _, tc := range []struct {
		role string
		want int
	}{
		{role: RoleAdmin, want: http.StatusNoContent},
		{role: "donor", want: http.StatusForbidden},
		{role: "", want: http.StatusForbidden},
	} {
		t.Run("role "+tc.role, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			ctx := requestcontext.WithPrincipal(req.Context(), id.UserID(uuid.New()), tc.role)
			rr := httptest.NewRecorder()

			RequireAdmin(logger)(ok).ServeHTTP(rr, req.WithContext(ctx))

			assert.Equal(t, tc.want, rr.Code)
		})
	}
}
