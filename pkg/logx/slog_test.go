package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gift_ledger/pkg/logx"
)

func TestAmount(t *testing.T) {
	testCases := []struct {
		amount float64
		want   string
	}{
		{amount: 5, want: "5"},
		{amount: 0.1, want: "0.1"},
		{amount: 0.0000001, want: "0.0000001"},
		{amount: 12.345678, want: "12.345678"},
	}

	for _, tc := range testCases {
		attr := logx.Amount(tc.amount)

		require.Equal(t, logx.FieldAmount, attr.Key)
		require.Equal(t, tc.want, attr.Value.String())
	}
}

func TestNopSensitiveDataMasker(t *testing.T) {
	input := []byte(`{"password":"abc123"}`)

	require.Equal(t, input, logx.NewNopSensitiveDataMasker().Mask(input))
}
