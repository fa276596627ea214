package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwasifin/vested/internal/model"
)

func TestProfitabilityRiskFactor(t *testing.T) {
	tests := []struct {
		name string
		prof ProfitabilityMetrics
		want model.RiskLevel
	}{
		{name: "loss making is critical", prof: ProfitabilityMetrics{NetProfitMargin: -5}, want: model.RiskCritical},
		{name: "under 5 percent is high", prof: ProfitabilityMetrics{NetProfitMargin: 3}, want: model.RiskHigh},
		{name: "under 10 percent is medium", prof: ProfitabilityMetrics{NetProfitMargin: 8}, want: model.RiskMedium},
		{name: "healthy margin is low", prof: ProfitabilityMetrics{NetProfitMargin: 20}, want: model.RiskLow},
		{
			name: "declining trend bumps the level",
			prof: ProfitabilityMetrics{NetProfitMargin: 20, Trend: model.TrendDeclining},
			want: model.RiskMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, profitabilityRiskFactor(tt.prof).Level)
		})
	}
}

func TestLiquidityRiskFactor(t *testing.T) {
	tests := []struct {
		name string
		liq  LiquidityMetrics
		want model.RiskLevel
	}{
		{name: "critical liquidity", liq: LiquidityMetrics{Risk: model.LiquidityCritical}, want: model.RiskCritical},
		{name: "high liquidity risk", liq: LiquidityMetrics{Risk: model.LiquidityHigh}, want: model.RiskHigh},
		{name: "medium liquidity risk", liq: LiquidityMetrics{Risk: model.LiquidityMedium}, want: model.RiskMedium},
		{name: "low liquidity risk", liq: LiquidityMetrics{Risk: model.LiquidityLow}, want: model.RiskLow},
		{name: "very low maps to low", liq: LiquidityMetrics{Risk: model.LiquidityVeryLow}, want: model.RiskLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, liquidityRiskFactor(tt.liq).Level)
		})
	}
}

func TestConcentrationRiskFactor(t *testing.T) {
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	customer := func(id string) *string { return &id }

	tests := []struct {
		name string
		txns []model.Transaction
		want model.RiskLevel
	}{
		{
			name: "no customer attribution is a data gap",
			txns: []model.Transaction{
				{Date: date, Type: model.TypeIncome, Amount: 100},
			},
			want: model.RiskMedium,
		},
		{
			name: "dominant customer is high",
			txns: []model.Transaction{
				{Date: date, Type: model.TypeIncome, Amount: 600, CustomerID: customer("a")},
				{Date: date, Type: model.TypeIncome, Amount: 400, CustomerID: customer("b")},
			},
			want: model.RiskHigh,
		},
		{
			name: "moderate concentration is medium",
			txns: []model.Transaction{
				{Date: date, Type: model.TypeIncome, Amount: 400, CustomerID: customer("a")},
				{Date: date, Type: model.TypeIncome, Amount: 300, CustomerID: customer("b")},
				{Date: date, Type: model.TypeIncome, Amount: 300, CustomerID: customer("c")},
			},
			want: model.RiskMedium,
		},
		{
			name: "spread income is low",
			txns: []model.Transaction{
				{Date: date, Type: model.TypeIncome, Amount: 250, CustomerID: customer("a")},
				{Date: date, Type: model.TypeIncome, Amount: 250, CustomerID: customer("b")},
				{Date: date, Type: model.TypeIncome, Amount: 250, CustomerID: customer("c")},
				{Date: date, Type: model.TypeIncome, Amount: 250, CustomerID: customer("d")},
			},
			want: model.RiskLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, concentrationRiskFactor(tt.txns).Level)
		})
	}
}

func TestRegulatoryRiskFactor(t *testing.T) {
	assert.Equal(t, model.RiskLow, regulatoryRiskFactor(RegionalMetrics{InformalEconomyRatio: 10}).Level)
	assert.Equal(t, model.RiskMedium, regulatoryRiskFactor(RegionalMetrics{InformalEconomyRatio: 50}).Level)
	assert.Equal(t, model.RiskHigh, regulatoryRiskFactor(RegionalMetrics{InformalEconomyRatio: 80}).Level)
	assert.Equal(t, model.RiskCritical, regulatoryRiskFactor(RegionalMetrics{InformalEconomyRatio: 95}).Level)
}

func TestTechnologyRiskFactor(t *testing.T) {
	assert.Equal(t, model.RiskHigh, technologyRiskFactor(RegionalMetrics{MobileMoneyDependency: 80}).Level)
	assert.Equal(t, model.RiskMedium, technologyRiskFactor(RegionalMetrics{MobileMoneyDependency: 50}).Level)
	assert.Equal(t, model.RiskMedium, technologyRiskFactor(RegionalMetrics{InformalEconomyRatio: 95}).Level)
	assert.Equal(t, model.RiskLow, technologyRiskFactor(RegionalMetrics{MobileMoneyDependency: 20}).Level)
}

func TestOverallRiskLevel(t *testing.T) {
	assert.Equal(t, model.RiskLow, overallRiskLevel(1.0))
	assert.Equal(t, model.RiskMedium, overallRiskLevel(1.5))
	assert.Equal(t, model.RiskHigh, overallRiskLevel(2.5))
	assert.Equal(t, model.RiskCritical, overallRiskLevel(3.5))
}

func TestWeightedRiskScore(t *testing.T) {
	eng := testEngine(t)

	// All categories at low must average to exactly 1.
	var factors []model.RiskFactor
	for _, cat := range []model.RiskCategory{
		model.RiskCategoryLiquidity, model.RiskCategoryProfitability,
		model.RiskCategoryOperational, model.RiskCategoryMarket,
		model.RiskCategoryRegulatory, model.RiskCategoryConcentration,
		model.RiskCategoryTechnology,
	} {
		factors = append(factors, model.RiskFactor{Category: cat, Level: model.RiskLow})
	}
	assert.InDelta(t, 1.0, eng.weightedRiskScore(factors), 0.001)

	// Heavily weighted categories dominate: liquidity and profitability at
	// critical drag the average past the high threshold alone.
	factors[0].Level = model.RiskCritical
	factors[1].Level = model.RiskCritical
	score := eng.weightedRiskScore(factors)
	assert.Greater(t, score, 2.0)

	// Unknown categories are ignored, normalized by the weights present.
	partial := []model.RiskFactor{
		{Category: model.RiskCategoryLiquidity, Level: model.RiskHigh},
		{Category: "unheard_of", Level: model.RiskCritical},
	}
	assert.InDelta(t, 3.0, eng.weightedRiskScore(partial), 0.001)
}

func TestComputeComprehensiveRisk(t *testing.T) {
	eng := testEngine(t)

	t.Run("distressed business", func(t *testing.T) {
		// Loss-making, cash-only, thin records.
		date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		txns := []model.Transaction{
			{ID: "1", Date: date, Type: model.TypeIncome, Amount: 100, PaymentMethod: "cash"},
			{ID: "2", Date: date, Type: model.TypeExpense, Amount: 500, PaymentMethod: "cash"},
		}

		assessment, err := eng.ComputeComprehensiveRisk(txns, testProfile())
		require.NoError(t, err)

		assert.Len(t, assessment.Factors, 7)
		assert.GreaterOrEqual(t, int(assessment.OverallLevel), int(model.RiskHigh))
		assert.NotEmpty(t, assessment.Mitigation)
		assert.Equal(t, assessment.Monitoring.ReviewCadence, reviewCadence(assessment.OverallLevel))
		assert.Len(t, assessment.Monitoring.Items, 7)
	})

	t.Run("healthy business", func(t *testing.T) {
		txns := monthlyTransactions(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), 12, 10000, 5000)
		for i := range txns {
			id := "cust-" + txns[i].ID
			if txns[i].Type == model.TypeIncome {
				txns[i].CustomerID = &id
			}
		}

		assessment, err := eng.ComputeComprehensiveRisk(txns, testProfile())
		require.NoError(t, err)

		assert.LessOrEqual(t, int(assessment.OverallLevel), int(model.RiskMedium))
		assert.Empty(t, assessment.Mitigation)
	})
}

func TestReviewCadence(t *testing.T) {
	assert.Equal(t, "weekly", reviewCadence(model.RiskCritical))
	assert.Equal(t, "bi-weekly", reviewCadence(model.RiskHigh))
	assert.Equal(t, "monthly", reviewCadence(model.RiskMedium))
	assert.Equal(t, "quarterly", reviewCadence(model.RiskLow))
}

func TestMitigationPlan_OrdersWorstFirst(t *testing.T) {
	factors := []model.RiskFactor{
		{Category: model.RiskCategoryMarket, Level: model.RiskHigh},
		{Category: model.RiskCategoryLiquidity, Level: model.RiskCritical},
		{Category: model.RiskCategoryTechnology, Level: model.RiskLow},
	}

	plan := mitigationPlan(factors)

	require.Len(t, plan, 2)
	assert.Equal(t, model.RiskCategoryLiquidity, plan[0].Category)
	assert.Equal(t, model.RiskCategoryMarket, plan[1].Category)
	assert.NotEmpty(t, plan[0].Actions)
}
