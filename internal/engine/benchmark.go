package engine

import "github.com/kwasifin/vested/internal/config"

// Percentile approximations by how many of the four benchmark tier values
// the business's value meets or beats.
var percentileByRank = [5]int{5, 25, 50, 75, 90}

// BenchmarkComparison classifies one metric against its industry benchmark
// tiers.
type BenchmarkComparison struct {
	Metric     string                `json:"metric"`
	Tier       string                `json:"tier"`
	Value      float64               `json:"value"`
	Percentile int                   `json:"percentile"`
	Tiers      config.BenchmarkTiers `json:"tiers"`
}

// BenchmarkReport contextualizes the business's metrics against static
// industry reference tables.
type BenchmarkReport struct {
	Industry    string                `json:"industry"`
	Country     string                `json:"country"`
	Comparisons []BenchmarkComparison `json:"comparisons"`
	Warnings    []string              `json:"warnings,omitempty"`
}

// Benchmarked metric names, in report order.
var benchmarkedMetrics = []string{
	"net_profit_margin",
	"gross_profit_margin",
	"revenue_growth_rate",
	"months_of_expenses_covered",
}

func (e *Engine) compareToBenchmarks(health *FinancialHealth, industry, country string) *BenchmarkReport {
	table := e.cfg.BenchmarksFor(industry)

	values := map[string]float64{
		"net_profit_margin":          health.Profitability.NetProfitMargin,
		"gross_profit_margin":        health.Profitability.GrossProfitMargin,
		"revenue_growth_rate":        health.Profitability.RevenueGrowthRate,
		"months_of_expenses_covered": health.Liquidity.MonthsOfExpensesCovered,
	}

	report := &BenchmarkReport{Industry: industry, Country: country}
	for _, metric := range benchmarkedMetrics {
		tiers, ok := table[metric]
		if !ok {
			continue
		}
		value := values[metric]
		report.Comparisons = append(report.Comparisons, BenchmarkComparison{
			Metric:     metric,
			Value:      value,
			Tier:       classifyTier(value, tiers),
			Percentile: percentile(value, tiers),
			Tiers:      tiers,
		})
	}
	return report
}

func classifyTier(value float64, tiers config.BenchmarkTiers) string {
	switch {
	case value >= tiers.Excellent:
		return "excellent"
	case value >= tiers.Good:
		return "good"
	case value >= tiers.Average:
		return "average"
	default:
		return "poor"
	}
}

// percentile ranks the value against the four tier values and maps the rank
// to a rough percentile.
func percentile(value float64, tiers config.BenchmarkTiers) int {
	rank := 0
	for _, tier := range tiers.Values() {
		if value >= tier {
			rank++
		}
	}
	return percentileByRank[rank]
}
