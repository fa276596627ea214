// Package config holds the engine's reference data: the seasonal curve,
// scoring rules, risk weights, and industry benchmark tables. All of it is
// replaceable configuration, not business logic; the compiled-in defaults are
// illustrative values for emerging-market SMEs.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/kwasifin/vested/internal/common"
)

// ScoringRule describes one linearly-normalized contribution to the
// investment readiness score. A metric value equal to Reference earns the
// full MaxPoints; values scale linearly and clamp at [0, MaxPoints].
type ScoringRule struct {
	Metric    string  `yaml:"metric" validate:"required"`
	MaxPoints float64 `yaml:"max_points" validate:"gt=0"`
	Reference float64 `yaml:"reference" validate:"gt=0"`
}

// BenchmarkTiers holds the four reference values for one metric in one
// industry, best to worst.
type BenchmarkTiers struct {
	Excellent float64 `yaml:"excellent"`
	Good      float64 `yaml:"good"`
	Average   float64 `yaml:"average"`
	Poor      float64 `yaml:"poor"`
}

// Values returns the tier values ordered best to worst.
func (b BenchmarkTiers) Values() [4]float64 {
	return [4]float64{b.Excellent, b.Good, b.Average, b.Poor}
}

// IndustryBenchmarks maps metric name to its benchmark tiers.
type IndustryBenchmarks map[string]BenchmarkTiers

// Engine is the full reference-data configuration for the analysis engine.
type Engine struct {
	// SeasonalCurve is a per-calendar-month income multiplier (January
	// first). Applied to forecasts only when seasonality is strong.
	SeasonalCurve []float64 `yaml:"seasonal_curve" validate:"len=12,dive,gt=0"`

	// ScoringRules drive the linear portion of the readiness score.
	ScoringRules []ScoringRule `yaml:"scoring_rules" validate:"min=1,dive"`

	// RiskWeights weight each risk category's ordinal level in the overall
	// risk score.
	RiskWeights map[string]float64 `yaml:"risk_weights" validate:"min=1,dive,gt=0"`

	// Benchmarks maps industry name to its per-metric benchmark tiers.
	Benchmarks map[string]IndustryBenchmarks `yaml:"benchmarks" validate:"min=1"`

	// FallbackIndustry is consulted when a profile names an industry with
	// no benchmark table.
	FallbackIndustry string `yaml:"fallback_industry" validate:"required"`

	// Transaction tagging vocabularies.
	DirectCostCategories []string `yaml:"direct_cost_categories" validate:"min=1"`
	MobileMoneyMethods   []string `yaml:"mobile_money_methods" validate:"min=1"`
	CashMethods          []string `yaml:"cash_methods" validate:"min=1"`
	CrossBorderMarkers   []string `yaml:"cross_border_markers" validate:"min=1"`
}

var validate = validator.New()

// Default returns the compiled-in reference data.
func Default() Engine {
	return Engine{
		// Mild agricultural cycle: harvest-season peaks, planting-season dips.
		SeasonalCurve: []float64{
			0.92, 0.90, 0.95, 1.00, 1.05, 1.08,
			1.10, 1.12, 1.05, 0.98, 0.92, 0.93,
		},
		ScoringRules: []ScoringRule{
			{Metric: "profitability", MaxPoints: 25, Reference: 20},
			{Metric: "cash_flow_stability", MaxPoints: 20, Reference: 1},
			{Metric: "growth_trend", MaxPoints: 15, Reference: 20},
			{Metric: "liquidity", MaxPoints: 10, Reference: 6},
		},
		RiskWeights: map[string]float64{
			"liquidity":     25,
			"profitability": 25,
			"operational":   20,
			"market":        15,
			"regulatory":    10,
			"concentration": 5,
			"technology":    5,
		},
		Benchmarks: map[string]IndustryBenchmarks{
			"retail": {
				"net_profit_margin":          {Excellent: 10, Good: 6, Average: 3, Poor: 1},
				"gross_profit_margin":        {Excellent: 35, Good: 28, Average: 22, Poor: 15},
				"revenue_growth_rate":        {Excellent: 25, Good: 15, Average: 8, Poor: 2},
				"months_of_expenses_covered": {Excellent: 6, Good: 4, Average: 2, Poor: 1},
			},
			"agriculture": {
				"net_profit_margin":          {Excellent: 15, Good: 9, Average: 5, Poor: 2},
				"gross_profit_margin":        {Excellent: 40, Good: 30, Average: 22, Poor: 14},
				"revenue_growth_rate":        {Excellent: 20, Good: 12, Average: 6, Poor: 1},
				"months_of_expenses_covered": {Excellent: 8, Good: 5, Average: 3, Poor: 1},
			},
			"services": {
				"net_profit_margin":          {Excellent: 20, Good: 12, Average: 7, Poor: 3},
				"gross_profit_margin":        {Excellent: 55, Good: 42, Average: 32, Poor: 20},
				"revenue_growth_rate":        {Excellent: 30, Good: 18, Average: 10, Poor: 3},
				"months_of_expenses_covered": {Excellent: 6, Good: 4, Average: 2, Poor: 1},
			},
			"manufacturing": {
				"net_profit_margin":          {Excellent: 12, Good: 8, Average: 4, Poor: 1},
				"gross_profit_margin":        {Excellent: 32, Good: 25, Average: 18, Poor: 12},
				"revenue_growth_rate":        {Excellent: 22, Good: 14, Average: 7, Poor: 2},
				"months_of_expenses_covered": {Excellent: 7, Good: 5, Average: 3, Poor: 1},
			},
			"technology": {
				"net_profit_margin":          {Excellent: 25, Good: 15, Average: 8, Poor: 0},
				"gross_profit_margin":        {Excellent: 70, Good: 55, Average: 40, Poor: 25},
				"revenue_growth_rate":        {Excellent: 60, Good: 35, Average: 15, Poor: 5},
				"months_of_expenses_covered": {Excellent: 9, Good: 6, Average: 3, Poor: 1},
			},
			"trade": {
				"net_profit_margin":          {Excellent: 8, Good: 5, Average: 3, Poor: 1},
				"gross_profit_margin":        {Excellent: 25, Good: 18, Average: 13, Poor: 8},
				"revenue_growth_rate":        {Excellent: 28, Good: 16, Average: 8, Poor: 2},
				"months_of_expenses_covered": {Excellent: 5, Good: 3, Average: 2, Poor: 1},
			},
		},
		FallbackIndustry:     "services",
		DirectCostCategories: []string{"inventory", "equipment", "transport"},
		MobileMoneyMethods:   []string{"mobile_money", "mpesa", "momo"},
		CashMethods:          []string{"cash"},
		CrossBorderMarkers:   []string{"export", "import", "cross-border", "international"},
	}
}

// Load reads reference data from a YAML file, starting from the defaults so a
// partial file only overrides what it names. An empty path returns the
// defaults unchanged.
func Load(path string) (Engine, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("%w: reading %s: %v", common.ErrMissingConfig, path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: parsing %s: %v", common.ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks structural soundness of the reference data. Failures here
// are fatal: they indicate a deployment mistake, not bad input data.
func (e Engine) Validate() error {
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}
	if _, ok := e.Benchmarks[e.FallbackIndustry]; !ok {
		return fmt.Errorf("%w: fallback industry %q has no benchmark table", common.ErrInvalidConfig, e.FallbackIndustry)
	}
	for industry, metrics := range e.Benchmarks {
		for metric, tiers := range metrics {
			v := tiers.Values()
			if v[0] < v[1] || v[1] < v[2] || v[2] < v[3] {
				return fmt.Errorf("%w: benchmark %s/%s tiers are not ordered best to worst", common.ErrInvalidConfig, industry, metric)
			}
		}
	}
	return nil
}

// BenchmarksFor resolves the benchmark table for an industry, falling back to
// the configured fallback industry when the industry is unknown.
func (e Engine) BenchmarksFor(industry string) IndustryBenchmarks {
	if table, ok := e.Benchmarks[industry]; ok {
		return table
	}
	return e.Benchmarks[e.FallbackIndustry]
}
