package value

import "fmt"

// GiftStatus - состояние подарка. Нетерминальное состояние только одно,
// pending.
type GiftStatus string

const (
	GiftStatusPending   GiftStatus = "pending"
	GiftStatusCompleted GiftStatus = "completed"
	GiftStatusCancelled GiftStatus = "cancelled"
)

func (s GiftStatus) String() string {
	return string(s)
}

func (s GiftStatus) IsTerminal() bool {
	return s == GiftStatusCompleted || s == GiftStatusCancelled
}

// CanTransitionTo сообщает, достижим ли next из s за один шаг.
func (s GiftStatus) CanTransitionTo(next GiftStatus) bool {
	return s == GiftStatusPending && next.IsTerminal()
}

func ParseGiftStatus(s string) (GiftStatus, error) {
	switch status := GiftStatus(s); status {
	case GiftStatusPending, GiftStatusCompleted, GiftStatusCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("unknown gift status %q", s)
	}
}
