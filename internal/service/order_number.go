package service

import (
	"context"
	"math/rand/v2"
	"strconv"
	"time"
)

const (
	OrderNumberPrefix      = "MD"
	maxOrderNumberAttempts = 5
)

// NumberGenerator builds public order numbers: prefix + epoch millis + random 0..999.
type NumberGenerator struct {
	prefix string
	now    func() time.Time
	intn   func(n int) int
}

func NewNumberGenerator(prefix string) *NumberGenerator {
	if prefix == "" {
		prefix = OrderNumberPrefix
	}
	return &NumberGenerator{prefix: prefix, now: time.Now, intn: rand.IntN}
}

func (g *NumberGenerator) Next() string {
	return g.prefix + strconv.FormatInt(g.now().UnixMilli(), 10) + strconv.Itoa(g.intn(1000))
}

// Unique draws numbers until exists reports a free one.
func (g *NumberGenerator) Unique(ctx context.Context, exists func(ctx context.Context, number string) (bool, error)) (string, error) {
	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		n := g.Next()
		taken, err := exists(ctx, n)
		if err != nil {
			return "", err
		}
		if !taken {
			return n, nil
		}
	}
	return "", ErrOrderNumberExhausted
}
