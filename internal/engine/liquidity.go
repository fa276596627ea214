package engine

import "github.com/kwasifin/vested/internal/model"

// LiquidityMetrics describes the business's cash position and runway.
// CurrentCashPosition is the net of all recorded transactions, a stand-in
// for a bank-reconciled balance that external storage does not supply.
type LiquidityMetrics struct {
	CurrentCashPosition     float64             `json:"current_cash_position"`
	MonthsOfExpensesCovered float64             `json:"months_of_expenses_covered"`
	EmergencyFundRatio      float64             `json:"emergency_fund_ratio"`
	Risk                    model.LiquidityRisk `json:"risk"`
}

func analyzeLiquidity(cf CashFlowMetrics) LiquidityMetrics {
	cash := cf.NetCashFlow
	covered := safeDiv(cash, cf.AverageMonthlyExpenses)

	return LiquidityMetrics{
		CurrentCashPosition:     cash,
		MonthsOfExpensesCovered: covered,
		EmergencyFundRatio:      safeDiv(cash, cf.AverageMonthlyExpenses*3) * 100,
		Risk:                    liquidityRisk(cash, covered),
	}
}

func liquidityRisk(cash, monthsCovered float64) model.LiquidityRisk {
	switch {
	case cash < 0:
		return model.LiquidityCritical
	case monthsCovered < 1:
		return model.LiquidityHigh
	case monthsCovered < 3:
		return model.LiquidityMedium
	case monthsCovered < 6:
		return model.LiquidityLow
	default:
		return model.LiquidityVeryLow
	}
}
