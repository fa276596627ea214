package model

// Trend classifies the recent direction of a profitability series.
type Trend string

// Profitability trend values.
const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// TrendDirection classifies the long-run direction of a monthly series.
type TrendDirection string

// Trend directions reported by the forecast engine.
const (
	DirectionIncreasing       TrendDirection = "increasing"
	DirectionDecreasing       TrendDirection = "decreasing"
	DirectionStable           TrendDirection = "stable"
	DirectionInsufficientData TrendDirection = "insufficient_data"
)

// LiquidityRisk is the five-valued rating of how exposed the business is to a
// cash shortfall. Unlike RiskLevel it is not used in ordinal aggregation.
type LiquidityRisk string

// Liquidity risk ratings.
const (
	LiquidityCritical LiquidityRisk = "critical"
	LiquidityHigh     LiquidityRisk = "high"
	LiquidityMedium   LiquidityRisk = "medium"
	LiquidityLow      LiquidityRisk = "low"
	LiquidityVeryLow  LiquidityRisk = "very_low"
)

// ForecastPoint is one projected month of cash flow. Month is a 1-based
// offset from the last observed month. Confidence is a percentage in
// [20,95] and never increases as the horizon grows.
type ForecastPoint struct {
	Month             int     `json:"month"`
	PredictedIncome   float64 `json:"predicted_income"`
	PredictedExpenses float64 `json:"predicted_expenses"`
	NetCashFlow       float64 `json:"net_cash_flow"`
	CumulativeCash    float64 `json:"cumulative_cash"`
	Confidence        int     `json:"confidence"`
}
