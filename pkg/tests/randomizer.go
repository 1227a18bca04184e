package tests

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// Randomizer выдает тестовые значения, похожие на входные данные реестра.
type Randomizer struct {
	random *rand.Rand
}

func NewRandomizer() Randomizer {
	return Randomizer{
		random: rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // for tests
	}
}

// Amount возвращает положительную сумму не более чем с шестью знаками после
// запятой, она без потерь проходит через NUMERIC и float64.
func (r Randomizer) Amount() float64 {
	const maxMicro = 1_000_000_000

	micro := r.random.Int63n(maxMicro) + 1

	return decimal.New(micro, -6).InexactFloat64() //nolint:mnd // micro units
}

// Token выбирает один из обычных токенов подарков.
func (r Randomizer) Token() string {
	tokens := []string{"SOL", "USDC", "BONK"}

	return tokens[r.random.Intn(len(tokens))]
}
