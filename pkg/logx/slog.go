package logx

import (
	"fmt"
	"log/slog"

	"github.com/lmittmann/tint"
	"github.com/shopspring/decimal"
)

var Error = tint.Err //nolint:gochecknoglobals

func Stringer(name string, value fmt.Stringer) slog.Attr {
	return slog.String(name, value.String())
}

// Amount пишет сумму подарка десятичной записью, без вида 1e-07.
func Amount(value float64) slog.Attr {
	return slog.String(FieldAmount, decimal.NewFromFloat(value).String())
}
