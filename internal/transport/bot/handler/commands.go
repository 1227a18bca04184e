package handler

import (
	"log/slog"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"gift_ledger/pkg/contextx"
	"gift_ledger/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, StartMessage)
}

// OnGifts выводит последние завершенные подарки поста.
// Использование: /gifts <postId>
func (h *Handler) OnGifts(ctx *th.Context, msg telego.Message) error {
	postID, ok := CommandArg(msg.Text)
	if !ok {
		return h.sendHTML(ctx, msg.Chat.ID, GiftsUsage)
	}

	gifts, err := h.svc.ListByPost(ctx, postID)
	if err != nil {
		logger(ctx).Error("svc.ListByPost", slog.String(logx.FieldPostID, postID), logx.Error(err))
		return h.sendHTML(ctx, msg.Chat.ID, LookupFailed)
	}

	return h.sendHTML(ctx, msg.Chat.ID, RenderGifts(postID, gifts))
}

// OnTotals выводит итоги поста по токенам.
// Использование: /totals <postId>
func (h *Handler) OnTotals(ctx *th.Context, msg telego.Message) error {
	postID, ok := CommandArg(msg.Text)
	if !ok {
		return h.sendHTML(ctx, msg.Chat.ID, TotalsUsage)
	}

	totals, err := h.svc.PostTotals(ctx, postID)
	if err != nil {
		logger(ctx).Error("svc.PostTotals", slog.String(logx.FieldPostID, postID), logx.Error(err))
		return h.sendHTML(ctx, msg.Chat.ID, LookupFailed)
	}

	return h.sendHTML(ctx, msg.Chat.ID, RenderTotals(postID, totals))
}

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, tu.Message(tu.ID(chatID), text).WithParseMode(telego.ModeHTML))

	return err //nolint:wrapcheck
}
