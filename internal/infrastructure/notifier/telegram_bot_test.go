package notifier_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/mymmrac/telego"
	"github.com/stretchr/testify/require"

	"gift_ledger/internal/domain/entity"
	"gift_ledger/internal/domain/value"
	"gift_ledger/internal/infrastructure/notifier"
	"gift_ledger/pkg/httpx"
	"gift_ledger/pkg/logx"
)

const testToken = "123456789:AAHdqTcvCH1vGWJxfSeofSAs0K5PALDsaw-"

type recordedRequest struct {
	path string
	body string
}

func newBotAPI(t *testing.T) (*httptest.Server, func() []recordedRequest) {
	t.Helper()

	var (
		mu       sync.Mutex
		requests []recordedRequest
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		mu.Lock()
		requests = append(requests, recordedRequest{path: r.URL.Path, body: string(body)})
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"}}}`)
	}))
	t.Cleanup(server.Close)

	return server, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()

		return append([]recordedRequest(nil), requests...)
	}
}

func TestTelegramBot_GiftCompleted(t *testing.T) {
	rq := require.New(t)

	server, requests := newBotAPI(t)

	httpClient := &http.Client{
		Transport: httpx.NewLoggingRoundTripper(
			http.DefaultTransport,
			httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
		),
	}

	bot, err := notifier.NewTelegramBot(testToken, 42, httpClient, telego.WithAPIServer(server.URL))
	rq.NoError(err)

	sig := "sig123"
	gift := &entity.Gift{
		ID:          "g1",
		SenderID:    "A",
		RecipientID: "B<script>",
		PostID:      "P",
		Amount:      5,
		Token:       "SOL",
		Status:      value.GiftStatusCompleted,
		TxSignature: &sig,
	}

	rq.NoError(bot.GiftCompleted(context.Background(), gift))

	got := requests()
	rq.Len(got, 1)
	rq.True(strings.HasSuffix(got[0].path, "/sendMessage"))
	rq.Contains(got[0].body, "42")
	rq.Contains(got[0].body, "g1")
	rq.Contains(got[0].body, "5 SOL")
	rq.NotContains(got[0].body, "B<script>")
	rq.Contains(got[0].body, "HTML")
}

func TestTelegramBot_InvalidToken(t *testing.T) {
	_, err := notifier.NewTelegramBot("not-a-token", 42, http.DefaultClient)
	require.Error(t, err)
}
