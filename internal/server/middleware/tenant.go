package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// TenantHeader is the request header carrying the caller's tenant ID.
const TenantHeader = "X-Tenant-ID"

// Tenant resolves the caller's tenant from the request header and stores it
// in the request context. A missing or malformed header leaves the context
// untouched; RequireTenant decides whether that is fatal.
func Tenant() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if raw := r.Header.Get(TenantHeader); raw != "" {
				if tid, err := uuid.Parse(raw); err == nil && tid != uuid.Nil {
					ctx := context.WithValue(r.Context(), ContextKeyTenantID, tid)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func RequireTenant() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tid, ok := TenantIDFromContext(r.Context())
			if !ok || tid == uuid.Nil {
				http.Error(w, `{"title":"Forbidden","status":403,"detail":"valid tenant required"}`, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
