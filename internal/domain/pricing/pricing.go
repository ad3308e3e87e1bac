// Package pricing turns a quote's material, labor and margin inputs into its
// charged totals, and splits an approved total into payment installments.
//
// Every function here is pure: recomputing over unchanged inputs always yields
// the same result.
package pricing

import (
	"math"

	"pintura_xpto/internal/domain/entities"
)

// MaterialsCostRatio is the assumed internal cost of materials relative to the
// price charged to the client. Used only for profit estimation, never billed.
const MaterialsCostRatio = 0.70

// Breakdown is the computed money view of a quote.
type Breakdown struct {
	MaterialsValue float64
	MaterialsCost  float64
	LaborValue     float64
	ProfitMargin   float64
	Total          float64
}

// LineTotal is the charged value of a single material line.
func LineTotal(quantity, unitPrice float64) float64 {
	return quantity * unitPrice
}

// Calculate computes the full breakdown for a quote.
//
// Labor: in "metro" mode it is the primary worker's daily rate times days plus
// every helper's rate times days; in "empreita" mode it is the fixed contract
// price. Zero materials is legal (labor-only quote). A nil/zero ProfitMargin
// contributes nothing.
func Calculate(q entities.Quote) Breakdown {
	var materials float64
	for _, m := range q.Materials {
		materials += LineTotal(m.Quantity, m.UnitPrice)
	}

	labor := LaborValue(q)

	return Breakdown{
		MaterialsValue: materials,
		MaterialsCost:  materials * MaterialsCostRatio,
		LaborValue:     labor,
		ProfitMargin:   q.ProfitMargin,
		Total:          materials + labor + q.ProfitMargin,
	}
}

// LaborValue computes only the labor portion of a quote.
func LaborValue(q entities.Quote) float64 {
	if q.PricingMode == entities.PricingModeEmpreita {
		return q.FixedPrice
	}
	labor := q.PrimaryDailyRate * float64(q.PrimaryDays)
	for _, h := range q.Helpers {
		labor += h.DailyRate * float64(h.Days)
	}
	return labor
}

// SplitInstallments divides total into n parts. Each part is rounded to cents
// and the last part absorbs the rounding remainder, so the parts always sum
// exactly to the (cent-rounded) total. n < 1 is treated as 1.
func SplitInstallments(total float64, n int) []float64 {
	if n < 1 {
		n = 1
	}
	total = roundCents(total)
	part := roundCents(total / float64(n))

	parts := make([]float64, n)
	var accumulated float64
	for i := 0; i < n-1; i++ {
		parts[i] = part
		accumulated = roundCents(accumulated + part)
	}
	parts[n-1] = roundCents(total - accumulated)
	return parts
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
