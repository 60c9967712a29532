package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"clinic-desk/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// Session:
// - Siempre guarda la cookie entrante para que los adapters la reenvíen al backend.
// - Si resolver != nil y hay cookie => intenta Resolve() y setea claims.
// - Si resolver == nil => modo dev: X-Debug-User-ID / X-Debug-User-Name / X-Debug-Doctor-ID.
// - Sin claims el request sigue igual; el backend decide 401/403.
func Session(resolver auth.SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie := strings.TrimSpace(r.Header.Get("Cookie"))
			ctx := auth.WithCredentials(r.Context(), cookie)

			if resolver == nil {
				if uid := strings.TrimSpace(r.Header.Get("X-Debug-User-ID")); uid != "" {
					claims := auth.Claims{
						UserID:   uid,
						FullName: strings.TrimSpace(r.Header.Get("X-Debug-User-Name")),
					}
					if n, err := strconv.Atoi(strings.TrimSpace(r.Header.Get("X-Debug-Doctor-ID"))); err == nil {
						claims.DoctorID = n
					}
					ctx = context.WithValue(ctx, claimsKey, claims)
				}
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			if cookie == "" {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			claims, err := resolver.Resolve(ctx, cookie)
			if err != nil {
				// No cortamos aquí; el backend rechazará el envío si la sesión no sirve.
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			ctx = context.WithValue(ctx, claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithClaims deja claims en el contexto (CLI y tests).
func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}
