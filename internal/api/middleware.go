// Package api implements the skriv REST API using chi.
package api

import (
	"net/http"

	"github.com/arvid/skriv/internal/apperr"
)

// DevGate returns middleware gating the content-management routes behind
// the development mode flag. When the gate is closed every request is
// rejected with apperr.ErrForbidden before any work happens.
func DevGate(devMode bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !devMode {
				writeJSON(w, http.StatusForbidden, errorBody(apperr.ErrForbidden.Error()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
