package engine

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwasifin/vested/internal/config"
	"github.com/kwasifin/vested/internal/model"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	eng, err := New(config.Default())
	require.NoError(t, err)
	return eng
}

func testProfile() model.BusinessProfile {
	return model.BusinessProfile{
		BaseCurrency:      "KES",
		Country:           "KE",
		Industry:          "retail",
		BusinessStartDate: time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

// monthlyTransactions builds one income and one expense transaction per
// month, starting at start.
func monthlyTransactions(start time.Time, months int, income, expenses float64) []model.Transaction {
	var txns []model.Transaction
	for m := 0; m < months; m++ {
		date := start.AddDate(0, m, 0)
		if income > 0 {
			txns = append(txns, model.Transaction{
				ID:            fmt.Sprintf("inc-%d", m),
				Date:          date,
				Type:          model.TypeIncome,
				Amount:        income,
				Currency:      "KES",
				Category:      "sales",
				Description:   "monthly sales",
				PaymentMethod: "bank_transfer",
			})
		}
		if expenses > 0 {
			txns = append(txns, model.Transaction{
				ID:            fmt.Sprintf("exp-%d", m),
				Date:          date,
				Type:          model.TypeExpense,
				Amount:        expenses,
				Currency:      "KES",
				Category:      "supplies",
				Description:   "monthly supplies",
				PaymentMethod: "bank_transfer",
			})
		}
	}
	return txns
}

func TestComputeFinancialHealth_FlatYear(t *testing.T) {
	eng := testEngine(t)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	txns := monthlyTransactions(start, 12, 10000, 7000)

	health, err := eng.ComputeFinancialHealth(txns, testProfile())
	require.NoError(t, err)

	assert.InDelta(t, 30.0, health.Profitability.NetProfitMargin, 0.001)
	assert.Equal(t, model.TrendStable, health.Profitability.Trend)
	assert.InDelta(t, health.Liquidity.CurrentCashPosition/7000, health.Liquidity.MonthsOfExpensesCovered, 0.001)
	assert.Len(t, health.CashFlow.Months, 12)
	assert.Empty(t, health.Warnings)
}

func TestComputeFinancialHealth_SingleLossMonth(t *testing.T) {
	eng := testEngine(t)
	txns := monthlyTransactions(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 1, 0, 500)

	health, err := eng.ComputeFinancialHealth(txns, testProfile())
	require.NoError(t, err)

	assert.Equal(t, model.LiquidityCritical, health.Liquidity.Risk)
	assert.Equal(t, 0.0, health.Profitability.NetProfitMargin)
	assert.Equal(t, -500.0, health.Liquidity.CurrentCashPosition)
}

func TestComputeFinancialHealth_StrictGrowth(t *testing.T) {
	eng := testEngine(t)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var txns []model.Transaction
	for m, income := range []float64{1000, 1200, 1400, 1600, 1800, 2000} {
		txns = append(txns, model.Transaction{
			ID:     fmt.Sprintf("t%d", m),
			Date:   start.AddDate(0, m, 0),
			Type:   model.TypeIncome,
			Amount: income,
		})
	}

	health, err := eng.ComputeFinancialHealth(txns, testProfile())
	require.NoError(t, err)

	assert.Equal(t, model.TrendImproving, health.Profitability.Trend)
	assert.InDelta(t, 100.0, health.Profitability.RevenueGrowthRate, 0.001)
}

func TestComputeFinancialHealth_EmptyInput(t *testing.T) {
	eng := testEngine(t)

	health, err := eng.ComputeFinancialHealth(nil, testProfile())
	require.NoError(t, err)

	assert.Zero(t, health.CashFlow.TotalIncome)
	assert.Zero(t, health.Liquidity.MonthsOfExpensesCovered)
	assert.Zero(t, health.Regional.SeasonalityIndex)

	// json.Marshal rejects NaN and Inf, so a clean marshal proves the
	// output tree has no division artifacts.
	_, err = json.Marshal(health)
	require.NoError(t, err)
}

func TestComputeFinancialHealth_Deterministic(t *testing.T) {
	eng := testEngine(t)
	txns := monthlyTransactions(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 9, 8000, 6500)

	first, err := eng.ComputeFinancialHealth(txns, testProfile())
	require.NoError(t, err)
	second, err := eng.ComputeFinancialHealth(txns, testProfile())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeFinancialHealth_ExcludesMalformed(t *testing.T) {
	eng := testEngine(t)
	txns := monthlyTransactions(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 3, 5000, 3000)
	txns = append(txns,
		model.Transaction{ID: "bad-amount", Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Type: model.TypeIncome, Amount: -100},
		model.Transaction{ID: "bad-date", Type: model.TypeExpense, Amount: 50},
		model.Transaction{ID: "bad-type", Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Type: "transfer", Amount: 10},
	)

	health, err := eng.ComputeFinancialHealth(txns, testProfile())
	require.NoError(t, err)

	assert.Len(t, health.Warnings, 3)
	assert.Contains(t, health.Warnings[0], "bad-amount")
	// Aggregates reflect only the valid records.
	assert.InDelta(t, 15000.0, health.CashFlow.TotalIncome, 0.001)
	assert.InDelta(t, 9000.0, health.CashFlow.TotalExpenses, 0.001)
}

func TestComputeFinancialHealth_RejectsInvalidProfile(t *testing.T) {
	eng := testEngine(t)

	_, err := eng.ComputeFinancialHealth(nil, model.BusinessProfile{})
	require.Error(t, err)
}

func TestNew_RejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.SeasonalCurve = []float64{1.0}

	_, err := New(cfg)
	require.Error(t, err)
}
