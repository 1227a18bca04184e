package handler_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"gift_ledger/internal/domain/entity"
	"gift_ledger/internal/transport/bot/handler"
)

func TestCommandArg(t *testing.T) {
	testCases := []struct {
		text string
		arg  string
		ok   bool
	}{
		{text: "/gifts P1", arg: "P1", ok: true},
		{text: "/gifts   P1  extra", arg: "P1", ok: true},
		{text: "/gifts", arg: "", ok: false},
		{text: "/gifts   ", arg: "", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			rq := require.New(t)

			arg, ok := handler.CommandArg(tc.text)
			rq.Equal(tc.ok, ok)
			rq.Equal(tc.arg, arg)
		})
	}
}

func TestRenderGifts(t *testing.T) {
	rq := require.New(t)

	text := handler.RenderGifts("P<1>", []entity.Gift{
		{SenderID: "A", RecipientID: "B", Amount: 5, Token: "SOL"},
		{SenderID: "C", RecipientID: "<b>", Amount: 0.25, Token: "USDC"},
	})

	rq.Equal("🎁 <b>Gifts on</b> <code>P&lt;1&gt;</code> (2)\n\n"+
		"1. 5 SOL from A to B\n"+
		"2. 0.25 USDC from C to &lt;b&gt;", text)
}

func TestRenderGifts_Truncated(t *testing.T) {
	rq := require.New(t)

	gifts := make([]entity.Gift, 13)
	for i := range gifts {
		gifts[i] = entity.Gift{SenderID: fmt.Sprintf("S%d", i), RecipientID: "R", Amount: 1, Token: "SOL"}
	}

	text := handler.RenderGifts("P", gifts)

	rq.Contains(text, "10. 1 SOL from S9 to R")
	rq.NotContains(text, "S10")
	rq.Contains(text, "… and 3 more")
}

func TestRenderEmpty(t *testing.T) {
	rq := require.New(t)

	rq.Contains(handler.RenderGifts("P", nil), "No completed gifts yet")
	rq.Contains(handler.RenderTotals("P", nil), "No completed gifts yet")
}

func TestRenderTotals(t *testing.T) {
	rq := require.New(t)

	text := handler.RenderTotals("P", []entity.PostGiftTotal{
		{PostID: "P", Token: "SOL", GiftCount: 2, AmountTotal: decimal.RequireFromString("5.5")},
		{PostID: "P", Token: "USDC", GiftCount: 1, AmountTotal: decimal.RequireFromString("0.1")},
	})

	rq.Equal("📊 <b>Totals on</b> <code>P</code>\n"+
		"\n<b>SOL</b>: 5.5 in 2 gifts"+
		"\n<b>USDC</b>: 0.1 in 1 gifts", text)
}
