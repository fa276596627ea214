package engine

import (
	"math"
	"strings"

	"github.com/kwasifin/vested/internal/model"
)

// ForexExposure reports the share of transaction value denominated in
// currencies other than the business's base currency. The risk thresholds
// compare the raw ratio, not the percentage.
type ForexExposure struct {
	Ratio     float64 `json:"ratio"`
	RiskLevel string  `json:"risk_level"`
}

// RegionalMetrics captures the emerging-market signals standard accounting
// ratios miss: payment-channel dependency, informal-economy share, currency
// exposure, and revenue seasonality.
type RegionalMetrics struct {
	MobileMoneyDependency float64       `json:"mobile_money_dependency"`
	Forex                 ForexExposure `json:"forex_exposure"`
	InformalEconomyRatio  float64       `json:"informal_economy_ratio"`
	SeasonalityIndex      float64       `json:"seasonality_index"`
	AfCFTAReadiness       float64       `json:"afcfta_readiness"`
}

func (e *Engine) analyzeRegional(txns []model.Transaction, profile model.BusinessProfile, months []model.MonthlyBucket) RegionalMetrics {
	var totalValue, mobileValue, foreignValue float64
	var cashCount int
	currencies := make(map[string]struct{})
	crossBorder := false

	for i := range txns {
		t := txns[i]
		totalValue += t.Amount

		if e.isMethod(t.PaymentMethod, e.cfg.MobileMoneyMethods) {
			mobileValue += t.Amount
		}
		if e.isMethod(t.PaymentMethod, e.cfg.CashMethods) {
			cashCount++
		}

		currency := t.Currency
		if currency == "" {
			currency = profile.BaseCurrency
		}
		currencies[currency] = struct{}{}
		if currency != profile.BaseCurrency {
			foreignValue += t.Amount
		}

		if !crossBorder && t.MatchesMarker(e.cfg.CrossBorderMarkers) {
			crossBorder = true
		}
	}

	forexRatio := safeDiv(foreignValue, totalValue)

	return RegionalMetrics{
		MobileMoneyDependency: safeDiv(mobileValue, totalValue) * 100,
		Forex: ForexExposure{
			Ratio:     forexRatio,
			RiskLevel: forexRiskLevel(forexRatio),
		},
		InformalEconomyRatio: safeDiv(float64(cashCount), float64(len(txns))) * 100,
		SeasonalityIndex:     seasonalityIndex(months),
		AfCFTAReadiness:      afcftaReadiness(len(txns), len(currencies), crossBorder),
	}
}

func (e *Engine) isMethod(method string, vocabulary []string) bool {
	method = strings.ToLower(method)
	for _, v := range vocabulary {
		if method == v {
			return true
		}
	}
	return false
}

func forexRiskLevel(ratio float64) string {
	switch {
	case ratio > 0.5:
		return "high"
	case ratio > 0.3:
		return "medium"
	case ratio > 0.1:
		return "low"
	default:
		return "minimal"
	}
}

// seasonalityIndex is the mean absolute deviation of monthly income from its
// average, as a percentage of that average. Needs at least three months.
func seasonalityIndex(months []model.MonthlyBucket) float64 {
	if len(months) < 3 {
		return 0
	}

	incomes := make([]float64, len(months))
	for i, m := range months {
		incomes[i] = m.Income
	}
	avg := mean(incomes)

	var deviation float64
	for _, v := range incomes {
		deviation += math.Abs(v - avg)
	}
	deviation /= float64(len(incomes))

	return safeDiv(deviation, avg) * 100
}

// afcftaReadiness is a heuristic cross-border trade preparedness score.
func afcftaReadiness(txnCount, currencyCount int, crossBorder bool) float64 {
	score := 30.0
	if currencyCount > 1 {
		score += 20
	}
	if crossBorder {
		score += 30
	}
	if txnCount > 50 {
		score += 20
	}
	if score > 100 {
		score = 100
	}
	return score
}
