package cache

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"

	"gift_ledger/internal/domain/entity"
	"gift_ledger/internal/domain/value"
	"gift_ledger/pkg/lox"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	giftListKeyPrefix = "gifts:post:"
	// Поколение живет дольше снимка, иначе его сброс вернул бы старое значение.
	generationTTL = 24 * time.Hour
)

// setIfGeneration пишет снимок, только если поколение поста не сменилось
// с момента чтения.
//
//nolint:gochecknoglobals
var setIfGeneration = redis.NewScript(`
local current = redis.call('GET', KEYS[2]) or ''
if current ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

// GiftList хранит в Redis снимки завершенных подарков по постам. Каждое
// Invalidate увеличивает поколение поста, и Set со старым поколением
// ничего не пишет.
type GiftList struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewGiftList(client redis.UniversalClient, ttl time.Duration) *GiftList {
	return &GiftList{
		client: client,
		ttl:    ttl,
	}
}

// GiftListKey - ключ снимка. Ключи поста лежат в одном hash-слоте, чтобы
// скрипт и MGET работали в кластере.
func GiftListKey(postID string) string {
	return giftListKeyPrefix + "{" + postID + "}"
}

func GiftListGenerationKey(postID string) string {
	return GiftListKey(postID) + ":gen"
}

// Get возвращает снимок и поколение поста. Поколение передается в Set и
// при промахе.
func (c *GiftList) Get(ctx context.Context, postID string) ([]entity.Gift, string, bool, error) {
	values, err := c.client.MGet(ctx, GiftListKey(postID), GiftListGenerationKey(postID)).Result()
	if err != nil {
		return nil, "", false, fmt.Errorf("redis.MGet: %w", err)
	}

	generation, _ := values[1].(string)

	raw, ok := values[0].(string)
	if !ok {
		return nil, generation, false, nil
	}

	var items []cachedGift
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, generation, false, fmt.Errorf("json.Unmarshal: %w", err)
	}

	gifts, err := lox.MapErr(items, cachedGift.toDomain)
	if err != nil {
		return nil, generation, false, err
	}

	return gifts, generation, true, nil
}

func (c *GiftList) Set(ctx context.Context, postID, generation string, gifts []entity.Gift) error {
	items := lo.Map(gifts, func(gift entity.Gift, _ int) cachedGift {
		return fromGift(gift)
	})

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	keys := []string{GiftListKey(postID), GiftListGenerationKey(postID)}

	if err := setIfGeneration.Run(ctx, c.client, keys, generation, raw, c.ttl.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("setIfGeneration.Run: %w", err)
	}

	return nil
}

func (c *GiftList) Invalidate(ctx context.Context, postID string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, GiftListGenerationKey(postID))
		pipe.Expire(ctx, GiftListGenerationKey(postID), generationTTL)
		pipe.Del(ctx, GiftListKey(postID))

		return nil
	})
	if err != nil {
		return fmt.Errorf("redis.TxPipelined: %w", err)
	}

	return nil
}

type cachedGift struct {
	ID                  string    `json:"id"`
	SenderID            string    `json:"senderId"`
	SenderWallet        string    `json:"senderWallet"`
	RecipientID         string    `json:"recipientId"`
	RecipientWallet     string    `json:"recipientWallet"`
	PostID              string    `json:"postId"`
	Amount              float64   `json:"amount"`
	Token               string    `json:"token"`
	SenderBalanceAtTime *float64  `json:"senderBalanceAtTime"`
	Status              string    `json:"status"`
	TxSignature         *string   `json:"txSignature"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func fromGift(g entity.Gift) cachedGift {
	return cachedGift{
		ID:                  g.ID,
		SenderID:            g.SenderID,
		SenderWallet:        g.SenderWallet,
		RecipientID:         g.RecipientID,
		RecipientWallet:     g.RecipientWallet,
		PostID:              g.PostID,
		Amount:              g.Amount,
		Token:               g.Token,
		SenderBalanceAtTime: g.SenderBalanceAtTime,
		Status:              g.Status.String(),
		TxSignature:         g.TxSignature,
		CreatedAt:           g.CreatedAt,
		UpdatedAt:           g.UpdatedAt,
	}
}

func (c cachedGift) toDomain() (entity.Gift, error) {
	status, err := value.ParseGiftStatus(c.Status)
	if err != nil {
		return entity.Gift{}, fmt.Errorf("cached gift %s: %w", c.ID, err)
	}

	return entity.Gift{
		ID:                  c.ID,
		SenderID:            c.SenderID,
		SenderWallet:        c.SenderWallet,
		RecipientID:         c.RecipientID,
		RecipientWallet:     c.RecipientWallet,
		PostID:              c.PostID,
		Amount:              c.Amount,
		Token:               c.Token,
		SenderBalanceAtTime: c.SenderBalanceAtTime,
		Status:              status,
		TxSignature:         c.TxSignature,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}, nil
}
