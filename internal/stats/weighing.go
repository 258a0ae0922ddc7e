package stats

const lastWeighingsWindow = 20

type WeighingSummary struct {
	Count            int      `json:"count"`
	LastWeight       *float64 `json:"last_weight"`
	Avg              float64  `json:"avg"`
	AvgLast20        float64  `json:"avg_last20"`
	Max              float64  `json:"max"`
	Min              float64  `json:"min"`
	GrowthRateLast20 float64  `json:"growth_rate_last20"`
	// Trend is reserved, always empty.
	Trend string `json:"trend"`
}

// WeighingStats reduces the weights of one user, ordered newest first.
func WeighingStats(weights []float64) WeighingSummary {
	summary := WeighingSummary{Count: len(weights)}
	if len(weights) == 0 {
		return summary
	}

	last := weights[0]
	summary.LastWeight = &last
	summary.Max = weights[0]
	summary.Min = weights[0]

	var total, totalLast20 float64
	for i, w := range weights {
		total += w
		if i < lastWeighingsWindow {
			totalLast20 += w
		}
		summary.Max = max(summary.Max, w)
		summary.Min = min(summary.Min, w)
	}

	summary.Avg = avg(total, len(weights))
	summary.AvgLast20 = avg(totalLast20, min(len(weights), lastWeighingsWindow))
	summary.GrowthRateLast20 = growthRate(summary.AvgLast20, last)

	return summary
}

// growthRate is the percentage deviation of last from avg, 0 when either is 0.
func growthRate(avg, last float64) float64 {
	if avg == 0 || last == 0 {
		return 0
	}
	return (last/avg - 1) * 100
}
