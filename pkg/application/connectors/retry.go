package connectors

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"gift_ledger/pkg/logx"
)

// retryStartup вызывает connect с экспоненциальной задержкой до успеха,
// отмены ctx или истечения timeout. Неположительный timeout - одна попытка.
func retryStartup(ctx context.Context, name string, timeout time.Duration, connect func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = timeout

	var retry backoff.BackOff = policy
	if timeout <= 0 {
		retry = &backoff.StopBackOff{}
	}

	return backoff.RetryNotify(
		connect,
		backoff.WithContext(retry, ctx),
		func(err error, next time.Duration) {
			logger(ctx).Warn(name+" not ready", logx.Error(err), slog.Duration("retry-in", next))
		},
	)
}
