package middleware

import (
	"fmt"
	"net/http"

	"github.com/fabiomorandi/salesboard-backend/api/responses"
	pkgerrors "github.com/fabiomorandi/salesboard-backend/pkg/errors"
	"github.com/fabiomorandi/salesboard-backend/pkg/logger"
)

// Recoverer turns a handler panic into a 500 response instead of killing the
// connection. The panic value plus the route that triggered it go to the log.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err := fmt.Errorf("panic: %v", rec)
					ctx := r.Context()
					if logg != nil {
						ctx = logg.WithFields(ctx, map[string]any{
							"panic":  rec,
							"method": r.Method,
							"path":   r.URL.Path,
						})
						logg.Error(ctx, "recovered from handler panic", err)
					}
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "panic"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
