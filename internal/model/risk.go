package model

// RiskLevel is an ordinal risk rating. The integer mapping is fixed and used
// for weighted aggregation across risk categories.
type RiskLevel int

// Ordinal risk levels, lowest to highest.
const (
	RiskLow RiskLevel = iota + 1
	RiskMedium
	RiskHigh
	RiskCritical
)

// String returns the wire name for the level.
func (l RiskLevel) String() string {
	switch l {
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	case RiskCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so levels serialize by name.
func (l RiskLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// RiskCategory identifies one dimension of the risk assessment.
type RiskCategory string

// Assessed risk categories.
const (
	RiskCategoryLiquidity     RiskCategory = "liquidity"
	RiskCategoryProfitability RiskCategory = "profitability"
	RiskCategoryOperational   RiskCategory = "operational"
	RiskCategoryMarket        RiskCategory = "market"
	RiskCategoryRegulatory    RiskCategory = "regulatory"
	RiskCategoryConcentration RiskCategory = "concentration"
	RiskCategoryTechnology    RiskCategory = "technology"
)

// RiskFactor is the classification of a single risk category together with
// the observations that drove it.
type RiskFactor struct {
	Category RiskCategory `json:"category"`
	Level    RiskLevel    `json:"level"`
	Factors  []string     `json:"factors"`
}
