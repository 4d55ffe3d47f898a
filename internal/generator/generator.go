// Package generator synthesizes fake expense records for a chosen month.
package generator

import (
	"math"
	"math/rand"
	"time"

	"expensetracker/internal/core"
)

// Generator produces batches of simulated expense records. All fields are
// drawn independently and uniformly from their domains; dates are uniform
// over the valid days of the requested month in the reference year.
type Generator struct {
	rng *rand.Rand
}

// New returns a generator seeded from the current time.
func New() *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns a generator backed by the given source.
// Tests use this for deterministic output.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// Generate produces exactly core.BatchSize records for month (1-12).
// Months outside that range are a caller contract violation.
func (g *Generator) Generate(month int) []core.Record {
	days := core.DaysIn(month)
	name := core.MonthName(month)

	records := make([]core.Record, 0, core.BatchSize)
	for i := 0; i < core.BatchSize; i++ {
		records = append(records, core.Record{
			Date:        core.Date(month, 1+g.rng.Intn(days)),
			Category:    pick(g.rng, core.Categories),
			PaymentMode: pick(g.rng, core.PaymentModes),
			Description: pick(g.rng, core.Descriptions),
			AmountPaid:  g.uniform(core.MinAmountPaid, core.MaxAmountPaid),
			Cashback:    g.uniform(core.MinCashback, core.MaxCashback),
			Month:       name,
		})
	}
	return records
}

// uniform samples [lo, hi] rounded to two decimal places.
func (g *Generator) uniform(lo, hi float64) float64 {
	v := lo + g.rng.Float64()*(hi-lo)
	return math.Round(v*100) / 100
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}
