package middlewarex

import (
	"log/slog"
	"net/http"

	"gift_ledger/pkg/contextx"
	"gift_ledger/pkg/logx"
)

// Logger кладет в контекст логгер запроса. TraceID должен отработать раньше.
func Logger(log *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			requestLogger := log.With(
				slog.String(logx.FieldHTTPMethod, r.Method),
				slog.String(logx.FieldURL, r.URL.Path),
				slog.String(logx.FieldIP, r.RemoteAddr),
			)

			if traceID, err := contextx.TraceIDFromContext(ctx); err == nil {
				requestLogger = requestLogger.With(logx.Stringer(logx.FieldTraceID, traceID))
			}

			next.ServeHTTP(w, r.WithContext(contextx.WithLogger(ctx, requestLogger)))
		})
	}
}
