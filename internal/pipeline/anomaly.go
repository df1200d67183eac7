package pipeline

import (
	"math"

	"github.com/theirongolddev/tally/internal/model"

	"github.com/shopspring/decimal"
)

// DefaultAnomalyThreshold is the |z| above which an expense is flagged.
const DefaultAnomalyThreshold = 2.0

type categoryStats struct {
	mean decimal.Decimal
	std  float64
}

// DetectAnomalies flags expenses whose amount is more than threshold sample
// standard deviations away from their category mean. Categories with a single
// record or with identical amounts have no defined deviation and are skipped.
// Output follows ledger order.
func DetectAnomalies(l model.Ledger, threshold float64) []model.Anomaly {
	stats := categoryDeviations(l)

	var anomalies []model.Anomaly
	for _, e := range l {
		cs, ok := stats[e.Category]
		if !ok {
			continue
		}
		z := e.Amount.Sub(cs.mean).InexactFloat64() / cs.std
		if math.Abs(z) > threshold {
			anomalies = append(anomalies, model.Anomaly{Expense: e, ZScore: z})
		}
	}
	return anomalies
}

// categoryDeviations returns mean and sample std per category, omitting
// categories where the std is zero or undefined.
func categoryDeviations(l model.Ledger) map[string]categoryStats {
	byCat := make(map[string][]decimal.Decimal)
	for _, e := range l {
		byCat[e.Category] = append(byCat[e.Category], e.Amount)
	}

	stats := make(map[string]categoryStats, len(byCat))
	for cat, amounts := range byCat {
		if len(amounts) < 2 {
			continue
		}

		sum := decimal.Zero
		for _, a := range amounts {
			sum = sum.Add(a)
		}
		mean := sum.Div(decimal.NewFromInt(int64(len(amounts))))

		// Squared deviations stay in decimal so identical amounts give exactly zero
		sq := decimal.Zero
		for _, a := range amounts {
			diff := a.Sub(mean)
			sq = sq.Add(diff.Mul(diff))
		}
		if sq.IsZero() {
			continue
		}

		variance := sq.Div(decimal.NewFromInt(int64(len(amounts) - 1)))
		std := math.Sqrt(variance.InexactFloat64())
		if std == 0 || math.IsNaN(std) {
			continue
		}
		stats[cat] = categoryStats{mean: mean, std: std}
	}
	return stats
}
