package httpx

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/rs/xid"

	"gift_ledger/pkg/logx"
)

//go:generate moq -rm -out sensitive_data_masker_mock.gen.go . sensitiveDataMasker:SensitiveDataMaskerMock
type sensitiveDataMasker interface {
	Mask([]byte) []byte
}

// LoggingRoundTripper реализует http.RoundTripper и логирует каждый исходящий
// запрос и ответ через логгер из контекста. URL и дампы сначала проходят
// маскировку, так как API ботов держит секреты в пути.
type LoggingRoundTripper struct {
	next                http.RoundTripper
	sensitiveDataMasker sensitiveDataMasker
	logFieldMaxLen      int
}

// NewLoggingRoundTripper создает логирующий RoundTripper.
func NewLoggingRoundTripper(
	next http.RoundTripper,
	opts ...Option,
) LoggingRoundTripper {
	rt := LoggingRoundTripper{
		next:                next,
		sensitiveDataMasker: logx.NewNopSensitiveDataMasker(),
		logFieldMaxLen:      0,
	}

	for _, opt := range opts {
		opt(&rt)
	}

	return rt
}

// RoundTrip реализует http.RoundTripper.
func (rt LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	log := logger(ctx).With(
		slog.String(logx.FieldRequestID, xid.New().String()),
		slog.String(logx.FieldHTTPMethod, req.Method),
		slog.String(logx.FieldURL, string(rt.sensitiveDataMasker.Mask([]byte(req.URL.String())))),
	)

	reqBytes, err := httputil.DumpRequestOut(req, true)
	if err != nil {
		log.Error("httputil.DumpRequestOut", logx.Error(err))
	}

	log.Info(logx.FieldHTTPRequest, slog.String(logx.FieldRequestBody, rt.dump(reqBytes)))

	start := time.Now()

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		log.Error(logx.FieldHTTPResponse,
			logx.Error(err),
			slog.Int64(logx.FieldDurationMs, time.Since(start).Milliseconds()),
		)

		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	respBytes, err := httputil.DumpResponse(resp, true)
	if err != nil {
		log.Error("httputil.DumpResponse", logx.Error(err))
	}

	log.Info(
		logx.FieldHTTPResponse,
		slog.Int(logx.FieldResponseStatus, resp.StatusCode),
		slog.String(logx.FieldResponseBody, rt.dump(respBytes)),
		slog.Int64(logx.FieldDurationMs, time.Since(start).Milliseconds()),
	)

	return resp, nil
}

// dump маскирует до обрезки, чтобы обрезка не оставила половину секрета.
func (rt LoggingRoundTripper) dump(raw []byte) string {
	masked := rt.sensitiveDataMasker.Mask(raw)

	if rt.logFieldMaxLen != 0 && len(masked) > rt.logFieldMaxLen {
		masked = masked[:rt.logFieldMaxLen]
	}

	return string(masked)
}

type Option func(*LoggingRoundTripper)

// WithLogFieldMaxLen обрезает дампы в логе, ноль оставляет их целиком.
func WithLogFieldMaxLen(logFieldMaxLen int) Option {
	return func(rt *LoggingRoundTripper) {
		rt.logFieldMaxLen = logFieldMaxLen
	}
}

func WithSensitiveDataMasker(sensitiveDataMasker sensitiveDataMasker) Option {
	return func(rt *LoggingRoundTripper) {
		rt.sensitiveDataMasker = sensitiveDataMasker
	}
}
