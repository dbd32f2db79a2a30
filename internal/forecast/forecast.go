// Package forecast produces the naive next-month spending prediction shown
// in the insight panel: a single-feature least-squares fit over monthly
// totals, extrapolated one step.
package forecast

import (
	"fmt"
	"math"

	"tally/internal/core"
	"tally/internal/report"
)

// safeLimitRatio is the rule-of-thumb spending cap suggested alongside a
// positive prediction.
const safeLimitRatio = 0.9

// Result is the outcome of a prediction request.
type Result struct {
	// HasPrediction is false when there is no data to fit at all.
	HasPrediction bool

	Prediction core.Money
	// SafeLimit is the suggested cap; zero when the trend is non-positive.
	SafeLimit core.Money

	// Months is the number of monthly data points the fit used.
	Months   int
	Slope    float64
	RSquared float64

	Advice string
}

// PredictNextMonth fits monthly totals against their chronological index
// and extrapolates one month ahead. With a single month of data it falls
// back to repeating that month's total; with none it only returns advice.
// The symbol is used when formatting amounts into the advisory text.
func PredictNextMonth(months []report.MonthTotal, symbol string) Result {
	n := len(months)
	switch n {
	case 0:
		return Result{
			Advice: "Not enough data to analyze yet. Add some expenses first.",
		}
	case 1:
		pred := months[0].Total
		return Result{
			HasPrediction: true,
			Prediction:    pred,
			SafeLimit:     core.Money{Cents: roundCents(safeLimitRatio * float64(pred.Cents))},
			Months:        1,
			Advice: fmt.Sprintf(
				"Based on last month, you may spend about %s%s next month. "+
					"Add more data for a smarter trend-based prediction.",
				symbol, pred.Decimal()),
		}
	}

	ys := make([]float64, n)
	for i, m := range months {
		ys[i] = float64(m.Total.Cents)
	}
	slope, intercept, r2 := fitLine(ys)
	predCents := roundCents(slope*float64(n) + intercept)

	res := Result{
		HasPrediction: true,
		Prediction:    core.Money{Cents: predCents},
		Months:        n,
		Slope:         slope,
		RSquared:      r2,
	}
	if predCents <= 0 {
		res.Advice = "Your recent spending trend is flat or declining. " +
			"Great job! Keep tracking to maintain this habit."
		return res
	}
	res.SafeLimit = core.Money{Cents: roundCents(safeLimitRatio * float64(predCents))}
	res.Advice = fmt.Sprintf(
		"Estimated spending for next month is around %s%s. "+
			"Try to keep it under %s%s as a safe limit. "+
			"Focus on the categories where you spend the most.",
		symbol, res.Prediction.Decimal(), symbol, res.SafeLimit.Decimal())
	return res
}

// fitLine runs an ordinary least-squares fit of ys against their indices
// 0..n-1, returning slope, intercept and R². Needs at least two points.
func fitLine(ys []float64) (slope, intercept, rSquared float64) {
	n := float64(len(ys))
	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range ys {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}
	denom := n*sumX2 - sumX*sumX
	if denom == 0 {
		return 0, sumY / n, 0
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n

	meanY := sumY / n
	var ssRes, ssTot float64
	for i, y := range ys {
		predicted := slope*float64(i) + intercept
		ssRes += (y - predicted) * (y - predicted)
		ssTot += (y - meanY) * (y - meanY)
	}
	if ssTot == 0 {
		return slope, intercept, 1
	}
	return slope, intercept, 1 - ssRes/ssTot
}

func roundCents(v float64) int64 {
	return int64(math.Round(v))
}
