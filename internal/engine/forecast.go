package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/kwasifin/vested/internal/model"
)

// Trend multipliers applied per month of forecast horizon.
const (
	incomeGrowthFactor  = 1.05
	incomeDeclineFactor = 0.97
	expenseGrowthFactor = 1.03
	expenseShrinkFactor = 0.98
)

// TrendAnalysis summarizes direction, seasonality, and volatility of the
// monthly income series.
type TrendAnalysis struct {
	Direction           model.TrendDirection `json:"direction"`
	Seasonality         string               `json:"seasonality"`
	Confidence          string               `json:"confidence"`
	SeasonalityStrength float64              `json:"seasonality_strength"`
	Volatility          float64              `json:"volatility"`
}

// ForecastSignal flags a risk or opportunity at a specific forecast month.
type ForecastSignal struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Month   int    `json:"month"`
}

// Forecast is the full cash-flow projection result.
type Forecast struct {
	Predictions     []model.ForecastPoint `json:"predictions"`
	Trends          TrendAnalysis         `json:"trends"`
	Risks           []ForecastSignal      `json:"risks,omitempty"`
	Opportunities   []ForecastSignal      `json:"opportunities,omitempty"`
	Recommendations []string              `json:"recommendations,omitempty"`
	Warnings        []string              `json:"warnings,omitempty"`
}

// analyzeTrends requires at least three months of history; with less it
// reports insufficient data and low confidence rather than guessing.
func (e *Engine) analyzeTrends(months []model.MonthlyBucket) TrendAnalysis {
	if len(months) < 3 {
		return TrendAnalysis{
			Direction:   model.DirectionInsufficientData,
			Seasonality: "weak",
			Confidence:  "low",
		}
	}

	incomes := make([]float64, len(months))
	for i, m := range months {
		incomes[i] = m.Income
	}

	strength := seasonalityStrength(months)

	return TrendAnalysis{
		Direction:           trendDirection(incomes),
		SeasonalityStrength: strength,
		Seasonality:         classifySeasonality(strength),
		Volatility:          safeDiv(stddev(incomes), mean(incomes)),
		Confidence:          trendConfidence(len(months)),
	}
}

// trendDirection compares the mean of the last three months against the mean
// of the first three. Moves beyond ±10% count as a trend.
func trendDirection(incomes []float64) model.TrendDirection {
	early := mean(incomes[:3])
	late := mean(incomes[len(incomes)-3:])
	change := safeDiv(late-early, early)

	switch {
	case change > 0.10:
		return model.DirectionIncreasing
	case change < -0.10:
		return model.DirectionDecreasing
	default:
		return model.DirectionStable
	}
}

// seasonalityStrength buckets income by calendar month across years and
// measures how far the per-month averages stray from the overall average,
// as a fraction of that average.
func seasonalityStrength(months []model.MonthlyBucket) float64 {
	sums := make(map[time.Month]float64)
	counts := make(map[time.Month]int)

	for _, m := range months {
		t, err := time.Parse("2006-01", m.YearMonth)
		if err != nil {
			continue
		}
		sums[t.Month()] += m.Income
		counts[t.Month()]++
	}
	if len(sums) == 0 {
		return 0
	}

	var overall float64
	monthlyAvgs := make([]float64, 0, len(sums))
	for month, sum := range sums {
		avg := sum / float64(counts[month])
		monthlyAvgs = append(monthlyAvgs, avg)
		overall += avg
	}
	overall /= float64(len(monthlyAvgs))

	var deviation float64
	for _, avg := range monthlyAvgs {
		deviation += math.Abs(avg - overall)
	}
	deviation /= float64(len(monthlyAvgs))

	return safeDiv(deviation, overall)
}

func classifySeasonality(strength float64) string {
	switch {
	case strength > 0.3:
		return "strong"
	case strength > 0.15:
		return "moderate"
	default:
		return "weak"
	}
}

func trendConfidence(monthCount int) string {
	switch {
	case monthCount >= 12:
		return "high"
	case monthCount >= 6:
		return "medium"
	default:
		return "low"
	}
}

// predict projects monthsAhead future months. Each iteration only appends to
// the output, so cancellation between iterations cannot corrupt anything.
func (e *Engine) predict(txns []model.Transaction, months []model.MonthlyBucket, cf CashFlowMetrics, monthsAhead int) *Forecast {
	trends := e.analyzeTrends(months)

	incomeFactor, expenseFactor := 1.0, 1.0
	switch trends.Direction {
	case model.DirectionIncreasing:
		incomeFactor, expenseFactor = incomeGrowthFactor, expenseGrowthFactor
	case model.DirectionDecreasing:
		incomeFactor, expenseFactor = incomeDeclineFactor, expenseShrinkFactor
	}

	lastMonth := time.Now()
	if len(months) > 0 {
		if t, err := time.Parse("2006-01", months[len(months)-1].YearMonth); err == nil {
			lastMonth = t
		}
	}

	baseConfidence := 80
	if len(txns) < 50 {
		baseConfidence -= 20
	}
	if trends.Volatility > 0.5 {
		baseConfidence -= 15
	}
	if trends.Confidence == "low" {
		baseConfidence -= 20
	}

	predictions := make([]model.ForecastPoint, 0, monthsAhead)
	cumulative := cf.NetCashFlow
	for m := 1; m <= monthsAhead; m++ {
		income := cf.AverageMonthlyIncome * math.Pow(incomeFactor, float64(m))
		expenses := cf.AverageMonthlyExpenses * math.Pow(expenseFactor, float64(m))

		if trends.SeasonalityStrength > 0.3 {
			projected := lastMonth.AddDate(0, m, 0)
			income *= e.cfg.SeasonalCurve[int(projected.Month())-1]
		}

		net := income - expenses
		cumulative += net

		predictions = append(predictions, model.ForecastPoint{
			Month:             m,
			PredictedIncome:   income,
			PredictedExpenses: expenses,
			NetCashFlow:       net,
			CumulativeCash:    cumulative,
			Confidence:        clampInt(baseConfidence-5*m, 20, 95),
		})
	}

	risks, opportunities := forecastSignals(predictions)

	return &Forecast{
		Predictions:     predictions,
		Trends:          trends,
		Risks:           risks,
		Opportunities:   opportunities,
		Recommendations: forecastRecommendations(risks, opportunities),
	}
}

// forecastSignals derives risk and opportunity flags per forecast point.
func forecastSignals(predictions []model.ForecastPoint) (risks, opportunities []ForecastSignal) {
	for i, p := range predictions {
		if p.CumulativeCash < 0 {
			risks = append(risks, ForecastSignal{
				Code:    "cash_depletion",
				Message: fmt.Sprintf("cumulative cash projected to go negative in month %d", p.Month),
				Month:   p.Month,
			})
		}
		if p.PredictedIncome > 0 && p.PredictedExpenses-p.PredictedIncome > 0.5*p.PredictedIncome {
			risks = append(risks, ForecastSignal{
				Code:    "high_burn_rate",
				Message: fmt.Sprintf("projected outflow in month %d exceeds income by more than 50%%", p.Month),
				Month:   p.Month,
			})
		}
		if p.PredictedIncome > 0 && p.PredictedIncome-p.PredictedExpenses > 0.2*p.PredictedIncome {
			opportunities = append(opportunities, ForecastSignal{
				Code:    "surplus_cash",
				Message: fmt.Sprintf("projected surplus in month %d exceeds 20%% of income", p.Month),
				Month:   p.Month,
			})
		}
		if i > 0 && predictions[i-1].PredictedIncome > 0 {
			growth := (p.PredictedIncome - predictions[i-1].PredictedIncome) / predictions[i-1].PredictedIncome
			if growth > 0.10 {
				opportunities = append(opportunities, ForecastSignal{
					Code:    "revenue_growth",
					Message: fmt.Sprintf("income projected to grow more than 10%% into month %d", p.Month),
					Month:   p.Month,
				})
			}
		}
	}
	return risks, opportunities
}

func forecastRecommendations(risks, opportunities []ForecastSignal) []string {
	var recs []string
	seen := make(map[string]bool)

	for _, r := range risks {
		if seen[r.Code] {
			continue
		}
		seen[r.Code] = true
		switch r.Code {
		case "cash_depletion":
			recs = append(recs, "Arrange financing or reduce expenses before cash runs out")
		case "high_burn_rate":
			recs = append(recs, "Review recurring expenses to bring the burn rate down")
		}
	}
	for _, o := range opportunities {
		if seen[o.Code] {
			continue
		}
		seen[o.Code] = true
		switch o.Code {
		case "surplus_cash":
			recs = append(recs, "Consider investing projected surplus cash into growth or reserves")
		case "revenue_growth":
			recs = append(recs, "Plan capacity and inventory for the projected revenue growth")
		}
	}

	return recs
}
