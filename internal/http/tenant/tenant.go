// Package tenant extracts the calling tenant from the X-Tenant-ID
// header and carries it through the request context. Every data row is
// tenant-scoped, so requests without a valid tenant are rejected at
// the edge.
package tenant

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const Header = "X-Tenant-ID"

type ctxKey struct{}

func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.Header.Get(Header))
		if err != nil {
			http.Error(w, "missing or invalid "+Header+" header", http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// FromContext returns the tenant id set by Middleware. Zero when the
// middleware did not run.
func FromContext(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(ctxKey{}).(uuid.UUID)
	return id
}
