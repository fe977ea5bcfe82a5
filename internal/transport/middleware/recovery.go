package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/arifwid/blog-management/internal"
)

// Recovery is the outermost safety net: panics escaping any handler or
// middleware become the generic internal-error envelope instead of
// killing the request thread.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered",
						"error", err,
						"method", r.Method,
						"url", r.URL.String(),
						"stack", string(debug.Stack()))

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					fmt.Fprintf(w, `{"ret": %d, "msg": "server failed to respond"}`, internal.RetInternal)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
