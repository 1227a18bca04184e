package middlewarex

import (
	"net/http"

	"github.com/rs/xid"

	"gift_ledger/pkg/contextx"
)

const (
	headerNameTraceID = "X-Trace-Id"
	maxTraceIDLen     = 64
)

// TraceID берет X-Trace-Id клиента или генерирует новый и возвращает его в
// ответе. Значение попадает в логи и в supportId ошибок, поэтому слишком
// длинные или непечатные id заменяются.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(headerNameTraceID)

		if !validTraceID(traceID) {
			traceID = xid.New().String()
		}

		ctx := contextx.WithTraceID(r.Context(), contextx.TraceID(traceID))

		w.Header().Set(headerNameTraceID, traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func validTraceID(traceID string) bool {
	if traceID == "" || len(traceID) > maxTraceIDLen {
		return false
	}

	for i := range len(traceID) {
		if c := traceID[i]; c < '!' || c > '~' {
			return false
		}
	}

	return true
}
