package numbering

import (
	"context"
	"fmt"
	"time"

	"estate-backoffice/internal/domain/contract"
)

// Generator allocates period-scoped sequential contract numbers of the
// form YYYY/MM/NNN. Numbers within a period are dense but not gap-free:
// a rolled-back create leaves a hole, and two concurrent creates may
// compute the same suffix — the unique index on contract_number rejects
// the loser, which the caller handles by retrying.
type Generator struct{ repo contract.Repository }

func NewGenerator(r contract.Repository) *Generator { return &Generator{repo: r} }

// PeriodPrefix returns the "YYYY/MM/" scope for a date.
func PeriodPrefix(forDate time.Time) string {
	return fmt.Sprintf("%04d/%02d/", forDate.Year(), int(forDate.Month()))
}

func (g *Generator) Next(ctx context.Context, forDate time.Time) (string, error) {
	prefix := PeriodPrefix(forDate)
	max, err := g.repo.MaxNumberForPrefix(ctx, prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%03d", prefix, max+1), nil
}
