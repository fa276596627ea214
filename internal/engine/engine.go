// Package engine implements the financial health analysis pipeline: it turns
// a business's raw transaction history into derived metrics, an investment
// readiness score, a cash-flow forecast, and a risk assessment. Every entry
// point is a pure function of its inputs; the engine holds no state between
// calls and performs no I/O.
package engine

import (
	"fmt"
	"sort"

	"github.com/kwasifin/vested/internal/config"
	"github.com/kwasifin/vested/internal/model"
)

// Engine evaluates financial health against a fixed set of reference data.
// It is a value-type service: safe for concurrent use, nothing mutable inside.
type Engine struct {
	cfg config.Engine
}

// New creates an engine from validated reference data.
func New(cfg config.Engine) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// FinancialHealth is the combined output of the metric analyzers.
type FinancialHealth struct {
	CashFlow      CashFlowMetrics      `json:"cash_flow"`
	Profitability ProfitabilityMetrics `json:"profitability"`
	Liquidity     LiquidityMetrics     `json:"liquidity"`
	Regional      RegionalMetrics      `json:"regional"`
	Warnings      []string             `json:"warnings,omitempty"`
}

// ComputeFinancialHealth runs the metric analyzers over the transaction
// history. Malformed transactions are excluded and reported in Warnings
// rather than failing the call.
func (e *Engine) ComputeFinancialHealth(txns []model.Transaction, profile model.BusinessProfile) (*FinancialHealth, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	valid, warnings := sanitize(txns)
	months := monthsInOrder(Aggregate(valid))
	cashFlow := cashFlowMetrics(months)

	return &FinancialHealth{
		CashFlow:      cashFlow,
		Profitability: e.analyzeProfitability(valid, months, cashFlow),
		Liquidity:     analyzeLiquidity(cashFlow),
		Regional:      e.analyzeRegional(valid, profile, months),
		Warnings:      warnings,
	}, nil
}

// ComputeInvestmentReadiness produces the composite 0-100 readiness score
// with its category breakdown and recommendations.
func (e *Engine) ComputeInvestmentReadiness(txns []model.Transaction, profile model.BusinessProfile) (*ReadinessScore, error) {
	health, err := e.ComputeFinancialHealth(txns, profile)
	if err != nil {
		return nil, err
	}

	valid, _ := sanitize(txns)
	score := e.scoreReadiness(valid, health)
	score.Warnings = health.Warnings
	return score, nil
}

// PredictCashFlow projects monthsAhead future months of cash flow with
// decaying confidence.
func (e *Engine) PredictCashFlow(txns []model.Transaction, profile model.BusinessProfile, monthsAhead int) (*Forecast, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if monthsAhead < 1 {
		return nil, fmt.Errorf("forecast horizon must be at least 1 month, got %d", monthsAhead)
	}

	valid, warnings := sanitize(txns)
	months := monthsInOrder(Aggregate(valid))
	cashFlow := cashFlowMetrics(months)

	forecast := e.predict(valid, months, cashFlow, monthsAhead)
	forecast.Warnings = warnings
	return forecast, nil
}

// ComputeComprehensiveRisk classifies risk per category and aggregates the
// ordinal levels into an overall rating with mitigation and monitoring plans.
func (e *Engine) ComputeComprehensiveRisk(txns []model.Transaction, profile model.BusinessProfile) (*RiskAssessment, error) {
	health, err := e.ComputeFinancialHealth(txns, profile)
	if err != nil {
		return nil, err
	}

	valid, _ := sanitize(txns)
	assessment := e.assessRisk(valid, health)
	assessment.Warnings = health.Warnings
	return assessment, nil
}

// CompareToBenchmarks contextualizes the business's metrics against the
// static industry benchmark tables. Empty industry or country fall back to
// the profile's values.
func (e *Engine) CompareToBenchmarks(txns []model.Transaction, profile model.BusinessProfile, industry, country string) (*BenchmarkReport, error) {
	health, err := e.ComputeFinancialHealth(txns, profile)
	if err != nil {
		return nil, err
	}

	if industry == "" {
		industry = profile.Industry
	}
	if country == "" {
		country = profile.Country
	}

	report := e.compareToBenchmarks(health, industry, country)
	report.Warnings = health.Warnings
	return report, nil
}

// monthsInOrder flattens the aggregator output into a chronologically sorted
// slice. The YYYY-MM key sorts correctly as a plain string.
func monthsInOrder(buckets map[string]model.MonthlyBucket) []model.MonthlyBucket {
	months := make([]model.MonthlyBucket, 0, len(buckets))
	for _, b := range buckets {
		months = append(months, b)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].YearMonth < months[j].YearMonth })
	return months
}
