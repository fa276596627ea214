package engine

import (
	"fmt"
	"sort"

	"github.com/kwasifin/vested/internal/model"
)

// MitigationAction lists the recommended actions for one elevated risk
// category.
type MitigationAction struct {
	Category model.RiskCategory `json:"category"`
	Priority model.RiskLevel    `json:"priority"`
	Actions  []string           `json:"actions"`
}

// MonitoringItem names the metrics to watch for one risk category and the
// condition that should trigger a re-assessment.
type MonitoringItem struct {
	Category model.RiskCategory `json:"category"`
	Trigger  string             `json:"trigger"`
	Metrics  []string           `json:"metrics"`
}

// MonitoringPlan assigns a review cadence plus per-category watch items.
type MonitoringPlan struct {
	ReviewCadence string           `json:"review_cadence"`
	Items         []MonitoringItem `json:"items"`
}

// RiskAssessment is the taxonomy-based risk result: one factor per category,
// a weighted overall level, and mitigation/monitoring plans.
type RiskAssessment struct {
	OverallScore float64            `json:"overall_score"`
	OverallLevel model.RiskLevel    `json:"overall_level"`
	Factors      []model.RiskFactor `json:"factors"`
	Mitigation   []MitigationAction `json:"mitigation"`
	Monitoring   MonitoringPlan     `json:"monitoring"`
	Warnings     []string           `json:"warnings,omitempty"`
}

func (e *Engine) assessRisk(txns []model.Transaction, health *FinancialHealth) *RiskAssessment {
	factors := []model.RiskFactor{
		liquidityRiskFactor(health.Liquidity),
		profitabilityRiskFactor(health.Profitability),
		operationalRiskFactor(txns),
		marketRiskFactor(health.Regional),
		regulatoryRiskFactor(health.Regional),
		concentrationRiskFactor(txns),
		technologyRiskFactor(health.Regional),
	}

	score := e.weightedRiskScore(factors)
	level := overallRiskLevel(score)

	return &RiskAssessment{
		OverallScore: score,
		OverallLevel: level,
		Factors:      factors,
		Mitigation:   mitigationPlan(factors),
		Monitoring:   monitoringPlan(level, factors),
	}
}

// weightedRiskScore averages the ordinal levels using the configured
// category weights, normalized by the total weight of categories present.
func (e *Engine) weightedRiskScore(factors []model.RiskFactor) float64 {
	var weighted, totalWeight float64
	for _, f := range factors {
		w, ok := e.cfg.RiskWeights[string(f.Category)]
		if !ok {
			continue
		}
		weighted += w * float64(f.Level)
		totalWeight += w
	}
	return safeDiv(weighted, totalWeight)
}

func overallRiskLevel(score float64) model.RiskLevel {
	switch {
	case score >= 3.5:
		return model.RiskCritical
	case score >= 2.5:
		return model.RiskHigh
	case score >= 1.5:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

func liquidityRiskFactor(liq LiquidityMetrics) model.RiskFactor {
	f := model.RiskFactor{Category: model.RiskCategoryLiquidity}

	switch liq.Risk {
	case model.LiquidityCritical:
		f.Level = model.RiskCritical
		f.Factors = append(f.Factors, "cash position is negative")
	case model.LiquidityHigh:
		f.Level = model.RiskHigh
		f.Factors = append(f.Factors, "less than one month of expenses covered")
	case model.LiquidityMedium:
		f.Level = model.RiskMedium
		f.Factors = append(f.Factors, "less than three months of expenses covered")
	default:
		f.Level = model.RiskLow
		f.Factors = append(f.Factors, fmt.Sprintf("%.1f months of expenses covered", liq.MonthsOfExpensesCovered))
	}
	return f
}

func profitabilityRiskFactor(prof ProfitabilityMetrics) model.RiskFactor {
	f := model.RiskFactor{Category: model.RiskCategoryProfitability}

	switch {
	case prof.NetProfitMargin < 0:
		f.Level = model.RiskCritical
		f.Factors = append(f.Factors, "business is operating at a loss")
	case prof.NetProfitMargin < 5:
		f.Level = model.RiskHigh
		f.Factors = append(f.Factors, fmt.Sprintf("net margin of %.1f%% leaves no buffer", prof.NetProfitMargin))
	case prof.NetProfitMargin < 10:
		f.Level = model.RiskMedium
		f.Factors = append(f.Factors, fmt.Sprintf("net margin of %.1f%% is thin", prof.NetProfitMargin))
	default:
		f.Level = model.RiskLow
		f.Factors = append(f.Factors, fmt.Sprintf("healthy net margin of %.1f%%", prof.NetProfitMargin))
	}

	if prof.Trend == model.TrendDeclining {
		f.Factors = append(f.Factors, "net cash flow has declined over the last three months")
		if f.Level < model.RiskHigh {
			f.Level++
		}
	}
	return f
}

// operationalRiskFactor reads record-keeping discipline as a proxy for
// operational maturity.
func operationalRiskFactor(txns []model.Transaction) model.RiskFactor {
	f := model.RiskFactor{Category: model.RiskCategoryOperational}

	var described int
	for i := range txns {
		if txns[i].Description != "" {
			described++
		}
	}
	completeness := safeDiv(float64(described), float64(len(txns)))

	switch {
	case len(txns) < 5:
		f.Level = model.RiskCritical
		f.Factors = append(f.Factors, "almost no transaction history recorded")
	case len(txns) < 20 || completeness < 0.3:
		f.Level = model.RiskHigh
		f.Factors = append(f.Factors, "sparse or poorly described transaction records")
	case len(txns) < 50 || completeness < 0.6:
		f.Level = model.RiskMedium
		f.Factors = append(f.Factors, "record keeping has gaps")
	default:
		f.Level = model.RiskLow
		f.Factors = append(f.Factors, "transaction records are consistent and described")
	}
	return f
}

func marketRiskFactor(regional RegionalMetrics) model.RiskFactor {
	f := model.RiskFactor{Category: model.RiskCategoryMarket, Level: model.RiskLow}

	switch regional.Forex.RiskLevel {
	case "high":
		f.Level = model.RiskHigh
		f.Factors = append(f.Factors, "over half of transaction value is in foreign currencies")
	case "medium":
		f.Level = model.RiskMedium
		f.Factors = append(f.Factors, "significant foreign currency exposure")
	}

	if regional.SeasonalityIndex > 50 {
		f.Factors = append(f.Factors, "revenue swings heavily with the season")
		if f.Level < model.RiskMedium {
			f.Level = model.RiskMedium
		}
	}
	if len(f.Factors) == 0 {
		f.Factors = append(f.Factors, "currency and seasonal exposure are contained")
	}
	return f
}

// regulatoryRiskFactor treats informal-economy dependence as compliance
// exposure: untraceable cash flows complicate tax and licensing reviews.
func regulatoryRiskFactor(regional RegionalMetrics) model.RiskFactor {
	f := model.RiskFactor{Category: model.RiskCategoryRegulatory}

	switch {
	case regional.InformalEconomyRatio > 90:
		f.Level = model.RiskCritical
		f.Factors = append(f.Factors, "business operates almost entirely in cash")
	case regional.InformalEconomyRatio > 70:
		f.Level = model.RiskHigh
		f.Factors = append(f.Factors, "majority of transactions are untraceable cash")
	case regional.InformalEconomyRatio > 40:
		f.Level = model.RiskMedium
		f.Factors = append(f.Factors, "substantial share of cash transactions")
	default:
		f.Level = model.RiskLow
		f.Factors = append(f.Factors, "most transactions use traceable channels")
	}
	return f
}

// concentrationRiskFactor measures dependence on the single largest customer
// by income value. Missing customer attribution is itself a finding.
func concentrationRiskFactor(txns []model.Transaction) model.RiskFactor {
	f := model.RiskFactor{Category: model.RiskCategoryConcentration}

	byCustomer := make(map[string]float64)
	var attributed, totalIncome float64
	for i := range txns {
		t := txns[i]
		if t.Type != model.TypeIncome {
			continue
		}
		totalIncome += t.Amount
		if t.CustomerID != nil && *t.CustomerID != "" {
			byCustomer[*t.CustomerID] += t.Amount
			attributed += t.Amount
		}
	}

	if totalIncome == 0 || attributed == 0 {
		f.Level = model.RiskMedium
		f.Factors = append(f.Factors, "income is not attributed to customers, concentration unknown")
		return f
	}

	var topShare float64
	for _, v := range byCustomer {
		if share := v / totalIncome; share > topShare {
			topShare = share
		}
	}

	switch {
	case topShare > 0.5:
		f.Level = model.RiskHigh
		f.Factors = append(f.Factors, fmt.Sprintf("largest customer accounts for %.0f%% of income", topShare*100))
	case topShare > 0.3:
		f.Level = model.RiskMedium
		f.Factors = append(f.Factors, fmt.Sprintf("largest customer accounts for %.0f%% of income", topShare*100))
	default:
		f.Level = model.RiskLow
		f.Factors = append(f.Factors, "income is spread across customers")
	}
	return f
}

// technologyRiskFactor flags both over-reliance on a single digital channel
// and the absence of digital payments altogether.
func technologyRiskFactor(regional RegionalMetrics) model.RiskFactor {
	f := model.RiskFactor{Category: model.RiskCategoryTechnology}

	digitalShare := 100 - regional.InformalEconomyRatio

	switch {
	case regional.MobileMoneyDependency > 70:
		f.Level = model.RiskHigh
		f.Factors = append(f.Factors, "payments depend almost entirely on one mobile money channel")
	case regional.MobileMoneyDependency > 40:
		f.Level = model.RiskMedium
		f.Factors = append(f.Factors, "heavy reliance on mobile money")
	case digitalShare < 10:
		f.Level = model.RiskMedium
		f.Factors = append(f.Factors, "digital payment adoption is minimal")
	default:
		f.Level = model.RiskLow
		f.Factors = append(f.Factors, "payment channels are reasonably diversified")
	}
	return f
}

var mitigationActions = map[model.RiskCategory][]string{
	model.RiskCategoryLiquidity: {
		"Negotiate longer payment terms with suppliers",
		"Chase outstanding receivables and tighten credit to customers",
		"Establish a standby credit line before it is needed",
	},
	model.RiskCategoryProfitability: {
		"Review pricing against cost per unit",
		"Cut the lowest-margin products or services",
		"Renegotiate the largest recurring expenses",
	},
	model.RiskCategoryOperational: {
		"Record every transaction with a description and category",
		"Adopt a simple bookkeeping routine with weekly reviews",
	},
	model.RiskCategoryMarket: {
		"Hedge or invoice in the base currency where possible",
		"Build reserves during peak season to cover the trough",
	},
	model.RiskCategoryRegulatory: {
		"Move cash sales onto mobile money or bank channels",
		"Keep tax registrations and filings current",
	},
	model.RiskCategoryConcentration: {
		"Develop at least two additional significant customers",
		"Formalize contracts with the largest customer",
	},
	model.RiskCategoryTechnology: {
		"Add a second payment channel as a fallback",
		"Keep an offline record of digital transactions",
	},
}

// mitigationPlan lists actions for every category at high or critical,
// worst first.
func mitigationPlan(factors []model.RiskFactor) []MitigationAction {
	var plan []MitigationAction
	for _, f := range factors {
		if f.Level < model.RiskHigh {
			continue
		}
		plan = append(plan, MitigationAction{
			Category: f.Category,
			Priority: f.Level,
			Actions:  mitigationActions[f.Category],
		})
	}
	sort.SliceStable(plan, func(i, j int) bool { return plan[i].Priority > plan[j].Priority })
	return plan
}

var monitoringMetrics = map[model.RiskCategory]struct {
	metrics []string
	trigger string
}{
	model.RiskCategoryLiquidity:     {[]string{"cash position", "months of expenses covered"}, "cash covers less than one month of expenses"},
	model.RiskCategoryProfitability: {[]string{"net profit margin", "monthly net cash flow"}, "net margin falls below 5%"},
	model.RiskCategoryOperational:   {[]string{"transactions recorded per week", "description completeness"}, "a week passes with no records"},
	model.RiskCategoryMarket:        {[]string{"forex exposure ratio", "seasonality index"}, "foreign currency share exceeds 50%"},
	model.RiskCategoryRegulatory:    {[]string{"informal economy ratio"}, "cash share of transactions exceeds 70%"},
	model.RiskCategoryConcentration: {[]string{"top customer income share"}, "one customer exceeds 50% of income"},
	model.RiskCategoryTechnology:    {[]string{"mobile money dependency"}, "a single channel exceeds 70% of value"},
}

func monitoringPlan(overall model.RiskLevel, factors []model.RiskFactor) MonitoringPlan {
	plan := MonitoringPlan{ReviewCadence: reviewCadence(overall)}

	for _, f := range factors {
		m := monitoringMetrics[f.Category]
		plan.Items = append(plan.Items, MonitoringItem{
			Category: f.Category,
			Metrics:  m.metrics,
			Trigger:  m.trigger,
		})
	}
	return plan
}

func reviewCadence(level model.RiskLevel) string {
	switch level {
	case model.RiskCritical:
		return "weekly"
	case model.RiskHigh:
		return "bi-weekly"
	case model.RiskMedium:
		return "monthly"
	default:
		return "quarterly"
	}
}
