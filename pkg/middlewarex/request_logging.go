package middlewarex

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"strings"

	"gift_ledger/pkg/logx"
)

// RequestLogging логирует каждый входящий запрос, кроме multipart тел.
// Нулевой logFieldMaxLen отключает обрезку.
func RequestLogging(
	sensitiveDataMasker logx.SensitiveDataMaskerInterface,
	logFieldMaxLen int,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			dumpBody := true

			if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
				dumpBody = false
			}

			dump, err := httputil.DumpRequest(r, dumpBody)
			if err != nil {
				logger(ctx).Error("httputil.DumpRequest", logx.Error(err))
			}

			logger(ctx).Info(
				logx.FieldHTTPRequest,
				slog.String(logx.FieldRequestBody, truncate(sensitiveDataMasker.Mask(dump), logFieldMaxLen)),
			)

			next.ServeHTTP(w, r)
		})
	}
}

func truncate(dump []byte, maxLen int) string {
	if maxLen > 0 && len(dump) > maxLen {
		dump = dump[:maxLen]
	}

	return string(dump)
}
