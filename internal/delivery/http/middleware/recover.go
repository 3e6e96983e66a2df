package middleware

import (
	"log/slog"
	"net/http"
	"runtime"

	"ordermail/internal/delivery/http/helpers"
)

const recoverStackSize = 4096

// Recover turns a panic in next into a generic 500 JSON response and an error log.
// It is the last-resort responder; handlers report their own failures.
func Recover(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			stack := make([]byte, recoverStackSize)
			stack = stack[:runtime.Stack(stack, false)]
			logger.Error("panic recovered",
				"panic", rec,
				"method", r.Method,
				"path", r.URL.Path,
				"stack", string(stack),
			)
			helpers.WriteJSONError(w, http.StatusInternalServerError, "Internal server error", "")
		}()
		next.ServeHTTP(w, r)
	})
}
