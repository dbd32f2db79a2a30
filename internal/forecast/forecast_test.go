package forecast

import (
	"math"
	"strings"
	"testing"

	"tally/internal/core"
	"tally/internal/report"
)

func monthsFromCents(cents ...int64) []report.MonthTotal {
	out := make([]report.MonthTotal, len(cents))
	for i, c := range cents {
		out[i] = report.MonthTotal{Year: 2024, Month: i + 1, Total: core.Money{Cents: c}}
	}
	return out
}

func TestPredictLinearSequence(t *testing.T) {
	// 100, 200, 300 per month extrapolates to ~400.
	res := PredictNextMonth(monthsFromCents(10000, 20000, 30000), "€")
	if !res.HasPrediction {
		t.Fatalf("expected a prediction")
	}
	if diff := res.Prediction.Cents - 40000; diff < -100 || diff > 100 {
		t.Fatalf("expected ~40000 cents, got %d", res.Prediction.Cents)
	}
	if res.Months != 3 {
		t.Fatalf("expected 3 months used, got %d", res.Months)
	}
	if math.Abs(res.RSquared-1) > 1e-9 {
		t.Fatalf("perfect line should have R²=1, got %f", res.RSquared)
	}
	wantLimit := roundCents(0.9 * float64(res.Prediction.Cents))
	if res.SafeLimit.Cents != wantLimit {
		t.Fatalf("safe limit: expected %d, got %d", wantLimit, res.SafeLimit.Cents)
	}
	if !strings.Contains(res.Advice, "€") {
		t.Fatalf("advice should carry formatted amounts: %q", res.Advice)
	}
}

func TestPredictNoData(t *testing.T) {
	res := PredictNextMonth(nil, "€")
	if res.HasPrediction {
		t.Fatalf("no data should yield no prediction")
	}
	if res.Advice == "" {
		t.Fatalf("expected advisory text for empty dataset")
	}
}

func TestPredictSingleMonth(t *testing.T) {
	res := PredictNextMonth(monthsFromCents(12345), "€")
	if !res.HasPrediction {
		t.Fatalf("expected naive prediction from one month")
	}
	if res.Prediction.Cents != 12345 {
		t.Fatalf("expected last month repeated, got %d", res.Prediction.Cents)
	}
	if res.Months != 1 {
		t.Fatalf("expected 1 month used, got %d", res.Months)
	}
}

func TestPredictDecliningTrend(t *testing.T) {
	res := PredictNextMonth(monthsFromCents(30000, 20000, 10000), "€")
	if !res.HasPrediction {
		t.Fatalf("declining trend still produces a prediction")
	}
	if res.Prediction.Cents > 0 {
		t.Fatalf("expected non-positive extrapolation, got %d", res.Prediction.Cents)
	}
	if res.SafeLimit.Cents != 0 {
		t.Fatalf("no safe limit for non-positive prediction, got %d", res.SafeLimit.Cents)
	}
	if !strings.Contains(res.Advice, "flat or declining") {
		t.Fatalf("expected declining-trend advice, got %q", res.Advice)
	}
}

func TestPredictFlatSeries(t *testing.T) {
	res := PredictNextMonth(monthsFromCents(5000, 5000, 5000, 5000), "€")
	if res.Prediction.Cents != 5000 {
		t.Fatalf("flat series should predict the same total, got %d", res.Prediction.Cents)
	}
	if res.RSquared != 1 {
		t.Fatalf("flat series fit should report R²=1, got %f", res.RSquared)
	}
}

func TestFitLine(t *testing.T) {
	slope, intercept, r2 := fitLine([]float64{1, 3, 5, 7})
	if math.Abs(slope-2) > 1e-9 || math.Abs(intercept-1) > 1e-9 {
		t.Fatalf("expected y=2x+1, got slope=%f intercept=%f", slope, intercept)
	}
	if math.Abs(r2-1) > 1e-9 {
		t.Fatalf("expected R²=1, got %f", r2)
	}
}
