package handler

import (
	th "github.com/mymmrac/telego/telegohandler"

	"gift_ledger/internal/transport/bot/middleware"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler, adminID int64) {
	adminGroup := bh.Group(th.AnyMessage())
	adminGroup.Use(middleware.AdminOnly(adminID))

	adminGroup.HandleMessage(h.OnStart, th.Or(th.CommandEqual("start"), th.CommandEqual("help")))
	adminGroup.HandleMessage(h.OnGifts, th.CommandEqual("gifts"))
	adminGroup.HandleMessage(h.OnTotals, th.CommandEqual("totals"))
}
