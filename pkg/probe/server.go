package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"gift_ledger/pkg/contextx"
	"gift_ledger/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	httpServerReadHeaderTimeout = 5 * time.Second
	defaultCheckTimeout         = 2 * time.Second
	checkOK                     = "ok"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Check - зависимость, которая должна ответить, прежде чем сервис готов.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

type Options struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	// CheckTimeout ограничивает каждую проверку, ноль означает две секунды.
	CheckTimeout time.Duration `json:"-"`
}

type state struct {
	Options
	Checks map[string]string `json:"checks,omitempty"`
}

type Server struct {
	listenAddress string
	options       Options
	checks        []Check
}

func NewServer(
	listenAddress string,
	options Options,
	checks ...Check,
) Server {
	if options.CheckTimeout == 0 {
		options.CheckTimeout = defaultCheckTimeout
	}

	return Server{
		listenAddress: listenAddress,
		options:       options,
		checks:        checks,
	}
}

func (s Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handlerHealthz)
	mux.HandleFunc("/ready", s.handlerReady)

	return mux
}

func (s Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		//nolint:exhaustruct
		Addr:              s.listenAddress,
		Handler:           s.Handler(),
		ReadHeaderTimeout: httpServerReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		if err := httpServer.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger(ctx).Error("httpServer.Shutdown", logx.Error(err))
		}
	}()

	logger(ctx).Info("probe server started",
		slog.String("address", s.listenAddress),
		slog.Int("checks", len(s.checks)),
	)

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httpServer.ListenAndServe: %w", err)
	}

	logger(ctx).Info("probe server stopped")

	return nil
}

func (s Server) handlerHealthz(w http.ResponseWriter, _ *http.Request) {
	s.write(w, http.StatusOK, state{Options: s.options}) //nolint:exhaustruct
}

// handlerReady отвечает 503, пока хоть одна проверка падает.
func (s Server) handlerReady(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	statusCode := http.StatusOK
	results := make(map[string]string, len(s.checks))

	for _, check := range s.checks {
		checkCtx, cancel := context.WithTimeout(ctx, s.options.CheckTimeout)
		err := check.Probe(checkCtx)
		cancel()

		if err != nil {
			statusCode = http.StatusServiceUnavailable
			results[check.Name] = err.Error()

			logger(ctx).Warn("readiness check failed", slog.String("check", check.Name), logx.Error(err))

			continue
		}

		results[check.Name] = checkOK
	}

	s.write(w, statusCode, state{Options: s.options, Checks: results})
}

func (s Server) write(w http.ResponseWriter, statusCode int, body state) {
	payload, _ := json.Marshal(body) //nolint:errcheck,errchkjson

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(payload) //nolint:errcheck
}
