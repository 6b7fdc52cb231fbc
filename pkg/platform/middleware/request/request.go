package request

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"lahu/pkg/requestcontext"
)

// HeaderRequestID is read from inbound requests and echoed on responses.
const HeaderRequestID = "X-Request-ID"

// RequestID propagates an inbound X-Request-ID (bounded length) or mints a
// new one, and stores it in the request context for logging.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := strings.TrimSpace(r.Header.Get(HeaderRequestID))
		if reqID == "" || len(reqID) > 128 {
			reqID = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, reqID)
		ctx := requestcontext.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
