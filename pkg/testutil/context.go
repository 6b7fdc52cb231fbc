package testutil

import (
	"net/http"

	id "lahu/pkg/domain"
	"lahu/pkg/requestcontext"
)

// WithPrincipal simulates what the auth middleware does for an authenticated
// request. An invalid userID leaves the request anonymous.
func WithPrincipal(req *http.Request, userID, role string) *http.Request {
	parsed, err := id.ParseUserID(userID)
	if err != nil {
		return req
	}
	return req.WithContext(requestcontext.WithPrincipal(req.Context(), parsed, role))
}
