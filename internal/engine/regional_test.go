package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kwasifin/vested/internal/model"
)

func TestAnalyzeRegional_MobileMoneyDependency(t *testing.T) {
	eng := testEngine(t)
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	// 40% of value tagged mobile money.
	txns := []model.Transaction{
		{Date: date, Type: model.TypeIncome, Amount: 400, Currency: "KES", PaymentMethod: "mpesa"},
		{Date: date, Type: model.TypeIncome, Amount: 600, Currency: "KES", PaymentMethod: "bank_transfer"},
	}

	regional := eng.analyzeRegional(txns, testProfile(), nil)

	assert.InDelta(t, 40.0, regional.MobileMoneyDependency, 0.001)
}

func TestAnalyzeRegional_ForexExposure(t *testing.T) {
	eng := testEngine(t)
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		wantLevel    string
		foreignValue float64
		localValue   float64
	}{
		{name: "no foreign currency is minimal", foreignValue: 0, localValue: 100, wantLevel: "minimal"},
		{name: "over 10 percent is low", foreignValue: 20, localValue: 80, wantLevel: "low"},
		{name: "over 30 percent is medium", foreignValue: 40, localValue: 60, wantLevel: "medium"},
		{name: "over half is high", foreignValue: 60, localValue: 40, wantLevel: "high"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var txns []model.Transaction
			if tt.localValue > 0 {
				txns = append(txns, model.Transaction{Date: date, Type: model.TypeIncome, Amount: tt.localValue, Currency: "KES"})
			}
			if tt.foreignValue > 0 {
				txns = append(txns, model.Transaction{Date: date, Type: model.TypeIncome, Amount: tt.foreignValue, Currency: "USD"})
			}

			regional := eng.analyzeRegional(txns, testProfile(), nil)

			assert.Equal(t, tt.wantLevel, regional.Forex.RiskLevel)
			assert.InDelta(t, tt.foreignValue/(tt.foreignValue+tt.localValue), regional.Forex.Ratio, 0.001)
		})
	}
}

func TestAnalyzeRegional_InformalEconomyRatio(t *testing.T) {
	eng := testEngine(t)
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	// Count-based, not value-based: one cash transaction out of four.
	txns := []model.Transaction{
		{Date: date, Type: model.TypeIncome, Amount: 10000, Currency: "KES", PaymentMethod: "cash"},
		{Date: date, Type: model.TypeIncome, Amount: 1, Currency: "KES", PaymentMethod: "card"},
		{Date: date, Type: model.TypeIncome, Amount: 1, Currency: "KES", PaymentMethod: "card"},
		{Date: date, Type: model.TypeIncome, Amount: 1, Currency: "KES", PaymentMethod: "card"},
	}

	regional := eng.analyzeRegional(txns, testProfile(), nil)

	assert.InDelta(t, 25.0, regional.InformalEconomyRatio, 0.001)
}

func TestSeasonalityIndex(t *testing.T) {
	tests := []struct {
		name   string
		months []model.MonthlyBucket
		want   float64
	}{
		{
			name:   "fewer than three months is zero",
			months: []model.MonthlyBucket{{Income: 100}, {Income: 200}},
			want:   0,
		},
		{
			name:   "flat income has no seasonality",
			months: []model.MonthlyBucket{{Income: 100}, {Income: 100}, {Income: 100}},
			want:   0,
		},
		{
			// avg 100, deviations 50+0+50 -> mad 33.33 -> 33.33%
			name:   "swinging income",
			months: []model.MonthlyBucket{{Income: 50}, {Income: 100}, {Income: 150}},
			want:   33.333,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, seasonalityIndex(tt.months), 0.01)
		})
	}
}

func TestAfcftaReadiness(t *testing.T) {
	tests := []struct {
		name          string
		txnCount      int
		currencyCount int
		crossBorder   bool
		want          float64
	}{
		{name: "baseline", txnCount: 10, currencyCount: 1, want: 30},
		{name: "multi currency", txnCount: 10, currencyCount: 2, want: 50},
		{name: "cross border markers", txnCount: 10, currencyCount: 1, crossBorder: true, want: 60},
		{name: "high volume", txnCount: 51, currencyCount: 1, want: 50},
		{name: "everything caps at 100", txnCount: 51, currencyCount: 3, crossBorder: true, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, afcftaReadiness(tt.txnCount, tt.currencyCount, tt.crossBorder))
		})
	}
}

func TestAnalyzeRegional_CrossBorderMarkers(t *testing.T) {
	eng := testEngine(t)
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	txns := []model.Transaction{
		{Date: date, Type: model.TypeIncome, Amount: 100, Currency: "KES", Description: "Export order to Kampala"},
	}

	regional := eng.analyzeRegional(txns, testProfile(), nil)

	// 30 base + 30 cross-border markers.
	assert.Equal(t, 60.0, regional.AfCFTAReadiness)
}

func TestAnalyzeRegional_EmptyInput(t *testing.T) {
	eng := testEngine(t)

	regional := eng.analyzeRegional(nil, testProfile(), nil)

	assert.Zero(t, regional.MobileMoneyDependency)
	assert.Zero(t, regional.Forex.Ratio)
	assert.Zero(t, regional.InformalEconomyRatio)
	assert.Equal(t, "minimal", regional.Forex.RiskLevel)
}

func TestAnalyzeRegional_EmptyCurrencyIsBase(t *testing.T) {
	eng := testEngine(t)
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	txns := make([]model.Transaction, 0, 4)
	for i := 0; i < 4; i++ {
		txns = append(txns, model.Transaction{
			ID: fmt.Sprintf("t%d", i), Date: date, Type: model.TypeIncome, Amount: 100,
		})
	}

	regional := eng.analyzeRegional(txns, testProfile(), nil)

	assert.Zero(t, regional.Forex.Ratio)
	// Only one distinct currency observed, so no multi-currency bonus.
	assert.Equal(t, 30.0, regional.AfCFTAReadiness)
}
