package notifier

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"strconv"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"gift_ledger/internal/domain/entity"
)

// TelegramBot отправляет события подарков в чат оператора.
type TelegramBot struct {
	bot    *telego.Bot
	chatID int64
}

func NewTelegramBot(token string, chatID int64, httpClient *http.Client, opts ...telego.BotOption) (*TelegramBot, error) {
	opts = append([]telego.BotOption{telego.WithHTTPClient(httpClient)}, opts...)

	bot, err := telego.NewBot(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("telego.NewBot: %w", err)
	}

	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}, nil
}

func (b *TelegramBot) GiftCompleted(ctx context.Context, gift *entity.Gift) error {
	text := fmt.Sprintf(
		"🎁 <b>Gift completed</b>\n\n"+
			"<b>Gift:</b> <code>%s</code>\n"+
			"<b>Post:</b> <code>%s</code>\n"+
			"<b>Amount:</b> %s %s\n"+
			"<b>From:</b> %s\n"+
			"<b>To:</b> %s",
		html.EscapeString(gift.ID),
		html.EscapeString(gift.PostID),
		strconv.FormatFloat(gift.Amount, 'f', -1, 64),
		html.EscapeString(gift.Token),
		html.EscapeString(gift.SenderID),
		html.EscapeString(gift.RecipientID),
	)

	msg := tu.Message(
		tu.ID(b.chatID),
		text,
	).WithParseMode(telego.ModeHTML)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("bot.SendMessage: %w", err)
	}

	return nil
}

// Nop используется, когда бот не настроен.
type Nop struct{}

func (Nop) GiftCompleted(context.Context, *entity.Gift) error { return nil }
