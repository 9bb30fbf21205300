package request

import (
	"context"
	"fmt"
	"sync"

	"github.com/reque-io/reque/internal/shared/biztime"
)

// NumberGenerator issues human-facing request numbers of the form
// REQ-YYYYMMDD-NNNN. The per-day counter resets at midnight in the business
// timezone.
type NumberGenerator interface {
	Generate(ctx context.Context) (string, error)
}

// FormatNumber renders a number from its day stamp and sequence.
func FormatNumber(dateStamp string, seq int) string {
	return fmt.Sprintf("REQ-%s-%04d", dateStamp, seq)
}

// InMemoryNumberGenerator keeps per-day counters in process memory. It is
// for tests and single-process setups; production uses the sequence-table
// generator in the persistence layer.
type InMemoryNumberGenerator struct {
	mu       sync.Mutex
	counters map[string]int
}

func NewInMemoryNumberGenerator() *InMemoryNumberGenerator {
	return &InMemoryNumberGenerator{counters: make(map[string]int)}
}

func (g *InMemoryNumberGenerator) Generate(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	dateStamp := biztime.DateStamp(biztime.NowUTC())
	g.counters[dateStamp]++
	return FormatNumber(dateStamp, g.counters[dateStamp]), nil
}
