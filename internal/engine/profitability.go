package engine

import (
	"strings"

	"github.com/kwasifin/vested/internal/model"
)

// ProfitabilityMetrics holds margin, growth, and trend figures. All margins
// are percentages; a business with no income reports 0 margins rather than
// an error.
type ProfitabilityMetrics struct {
	NetProfitMargin   float64     `json:"net_profit_margin"`
	GrossProfitMargin float64     `json:"gross_profit_margin"`
	RevenueGrowthRate float64     `json:"revenue_growth_rate"`
	Trend             model.Trend `json:"trend"`
}

func (e *Engine) analyzeProfitability(txns []model.Transaction, months []model.MonthlyBucket, cf CashFlowMetrics) ProfitabilityMetrics {
	return ProfitabilityMetrics{
		NetProfitMargin:   safeDiv(cf.NetCashFlow, cf.TotalIncome) * 100,
		GrossProfitMargin: safeDiv(cf.TotalIncome-e.directCosts(txns), cf.TotalIncome) * 100,
		RevenueGrowthRate: revenueGrowthRate(months),
		Trend:             profitabilityTrend(months),
	}
}

// directCosts sums expense transactions tagged with a direct-cost category.
func (e *Engine) directCosts(txns []model.Transaction) float64 {
	var total float64
	for i := range txns {
		t := txns[i]
		if t.Type != model.TypeExpense {
			continue
		}
		cat := strings.ToLower(t.Category)
		for _, dc := range e.cfg.DirectCostCategories {
			if cat == dc {
				total += t.Amount
				break
			}
		}
	}
	return total
}

// revenueGrowthRate compares the last month's income against the first over
// the full available window. Needs at least two months; otherwise 0.
func revenueGrowthRate(months []model.MonthlyBucket) float64 {
	if len(months) < 2 {
		return 0
	}
	first := months[0].Income
	last := months[len(months)-1].Income
	return safeDiv(last-first, first) * 100
}

// profitabilityTrend classifies the last three months of net cash flow.
// A flat series is stable, not improving: the trend must move somewhere.
func profitabilityTrend(months []model.MonthlyBucket) model.Trend {
	if len(months) < 3 {
		return model.TrendStable
	}

	recent := months[len(months)-3:]
	nonDecreasing := true
	nonIncreasing := true
	for i := 1; i < len(recent); i++ {
		if recent[i].Net() < recent[i-1].Net() {
			nonDecreasing = false
		}
		if recent[i].Net() > recent[i-1].Net() {
			nonIncreasing = false
		}
	}

	switch {
	case nonDecreasing && !nonIncreasing:
		return model.TrendImproving
	case nonIncreasing && !nonDecreasing:
		return model.TrendDeclining
	default:
		return model.TrendStable
	}
}
