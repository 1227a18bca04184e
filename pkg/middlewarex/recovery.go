package middlewarex

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"gift_ledger/pkg/httpx/reply"
	"gift_ledger/pkg/logx"
)

var errPanic = errors.New("internal server error")

// Recovery превращает панику обработчика в обычный ответ 500.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			if rec == http.ErrAbortHandler { //nolint:errorlint,err113
				panic(rec)
			}

			logger(ctx).Error(
				"panic in handler",
				slog.Any(logx.FieldError, rec),
				slog.String(logx.FieldStack, string(debug.Stack())),
			)

			reply.Error(ctx, w, errPanic)
		}()

		next.ServeHTTP(w, r)
	})
}
