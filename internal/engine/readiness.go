package engine

import (
	"math"

	"github.com/kwasifin/vested/internal/model"
)

// ReadinessScore is the composite 0-100 investment readiness result.
// Breakdown maps each scoring category to the points it contributed.
type ReadinessScore struct {
	Breakdown       map[string]float64 `json:"breakdown"`
	Recommendations []string           `json:"recommendations"`
	Warnings        []string           `json:"warnings,omitempty"`
	Overall         int                `json:"overall"`
}

// scoreReadiness combines the analyzer outputs into the weighted composite
// score. The linearly-normalized categories come from the configured scoring
// rules; record keeping, market position, and the risk deduction follow
// dedicated rules that a single reference value cannot express.
func (e *Engine) scoreReadiness(txns []model.Transaction, health *FinancialHealth) *ReadinessScore {
	if len(health.CashFlow.Months) == 0 {
		return &ReadinessScore{
			Overall:   0,
			Breakdown: map[string]float64{},
			Recommendations: []string{
				"Start recording transactions consistently to enable financial analysis",
			},
		}
	}

	breakdown := make(map[string]float64, len(e.cfg.ScoringRules)+3)
	metrics := e.linearMetrics(health)

	var total float64
	for _, rule := range e.cfg.ScoringRules {
		value, ok := metrics[rule.Metric]
		if !ok {
			continue
		}
		points := clamp01(value/rule.Reference) * rule.MaxPoints
		breakdown[rule.Metric] = points
		total += points
	}

	recordKeeping := recordKeepingScore(txns)
	breakdown["record_keeping"] = recordKeeping
	total += recordKeeping

	market := marketPositionScore(health.Regional)
	breakdown["market_position"] = market
	total += market

	deduction := riskDeduction(health.Regional)
	if deduction > 0 {
		breakdown["risk_deduction"] = -deduction
		total -= deduction
	}

	return &ReadinessScore{
		Overall:         clampInt(int(math.Round(total)), 0, 100),
		Breakdown:       breakdown,
		Recommendations: e.recommendations(health, total),
	}
}

// linearMetrics maps scoring-rule names to their current values.
func (e *Engine) linearMetrics(health *FinancialHealth) map[string]float64 {
	nets := make([]float64, len(health.CashFlow.Months))
	for i, m := range health.CashFlow.Months {
		nets[i] = m.Net()
	}
	volatility := safeDiv(stddev(nets), health.CashFlow.AverageMonthlyIncome)

	return map[string]float64{
		"profitability":       health.Profitability.NetProfitMargin,
		"cash_flow_stability": 1 - volatility,
		"growth_trend":        health.Profitability.RevenueGrowthRate,
		"liquidity":           health.Liquidity.MonthsOfExpensesCovered,
	}
}

// recordKeepingScore rewards transaction volume, description completeness,
// and category tagging, up to 5 points each.
func recordKeepingScore(txns []model.Transaction) float64 {
	if len(txns) == 0 {
		return 0
	}

	var described, tagged int
	for i := range txns {
		if txns[i].Description != "" {
			described++
		}
		if txns[i].Category != "" {
			tagged++
		}
	}

	volume := clamp01(float64(len(txns))/100) * 5
	completeness := safeDiv(float64(described), float64(len(txns))) * 5
	tagging := safeDiv(float64(tagged), float64(len(txns))) * 5
	return volume + completeness + tagging
}

// marketPositionScore starts from a base of 5 with bonuses for cross-border
// readiness and mobile-money adoption, capped at 10.
func marketPositionScore(regional RegionalMetrics) float64 {
	score := 5.0
	switch {
	case regional.AfCFTAReadiness > 70:
		score += 3
	case regional.AfCFTAReadiness > 50:
		score += 2
	}
	if regional.MobileMoneyDependency > 30 {
		score += 2
	}
	if score > 10 {
		score = 10
	}
	return score
}

// riskDeduction subtracts up to 5 points for elevated forex exposure and
// heavy informal-economy dependence.
func riskDeduction(regional RegionalMetrics) float64 {
	var deduction float64
	if regional.Forex.Ratio > 0.5 {
		deduction += 3
	}
	if regional.InformalEconomyRatio > 60 {
		deduction += 2
	}
	return deduction
}

func (e *Engine) recommendations(health *FinancialHealth, total float64) []string {
	var recs []string

	if total < 30 {
		recs = append(recs, "Improve profit margins by reviewing pricing and cutting non-essential costs")
	}
	if health.Liquidity.MonthsOfExpensesCovered < 3 {
		recs = append(recs, "Build an emergency fund covering at least 3 months of expenses")
	}
	if health.Profitability.RevenueGrowthRate < 5 {
		recs = append(recs, "Focus on revenue growth through new customers or product lines")
	}
	if health.Regional.AfCFTAReadiness < 50 {
		recs = append(recs, "Prepare for cross-border trade opportunities under AfCFTA")
	}
	if health.Regional.InformalEconomyRatio > 60 {
		recs = append(recs, "Shift cash transactions to traceable payment channels to strengthen records")
	}

	return recs
}
