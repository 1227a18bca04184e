package handler

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"gift_ledger/internal/domain/entity"
)

// maxListedGifts держит ответ /gifts в пределах размера сообщения Telegram.
const maxListedGifts = 10

const (
	StartMessage = "🎁 <b>Gift ledger</b>\n\n" +
		"/gifts <code>postId</code> - latest completed gifts of a post\n" +
		"/totals <code>postId</code> - per-token totals of a post"
	GiftsUsage   = "❌ Usage: /gifts <code>postId</code>"
	TotalsUsage  = "❌ Usage: /totals <code>postId</code>"
	LookupFailed = "❌ Lookup failed, see service logs"
)

// CommandArg возвращает первый аргумент команды.
func CommandArg(text string) (string, bool) {
	parts := strings.Fields(text)
	if len(parts) < 2 { //nolint:mnd // command + argument
		return "", false
	}

	return parts[1], true
}

func RenderGifts(postID string, gifts []entity.Gift) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "🎁 <b>Gifts on</b> <code>%s</code>", html.EscapeString(postID))

	if len(gifts) == 0 {
		sb.WriteString("\n\nNo completed gifts yet")
		return sb.String()
	}

	fmt.Fprintf(&sb, " (%d)\n\n", len(gifts))

	for i, gift := range gifts {
		if i == maxListedGifts {
			fmt.Fprintf(&sb, "… and %d more", len(gifts)-maxListedGifts)
			break
		}

		fmt.Fprintf(&sb, "%d. %s %s from %s to %s\n",
			i+1,
			strconv.FormatFloat(gift.Amount, 'f', -1, 64),
			html.EscapeString(gift.Token),
			html.EscapeString(gift.SenderID),
			html.EscapeString(gift.RecipientID),
		)
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func RenderTotals(postID string, totals []entity.PostGiftTotal) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "📊 <b>Totals on</b> <code>%s</code>\n", html.EscapeString(postID))

	if len(totals) == 0 {
		sb.WriteString("\nNo completed gifts yet")
		return sb.String()
	}

	for _, total := range totals {
		fmt.Fprintf(&sb, "\n<b>%s</b>: %s in %d gifts",
			html.EscapeString(total.Token),
			total.AmountTotal.String(),
			total.GiftCount,
		)
	}

	return sb.String()
}
