package engine

import "github.com/kwasifin/vested/internal/model"

// Aggregate buckets transactions into monthly income and expense totals
// keyed by "YYYY-MM". Input order is irrelevant; an empty input yields an
// empty map, which downstream analyzers must tolerate.
func Aggregate(txns []model.Transaction) map[string]model.MonthlyBucket {
	buckets := make(map[string]model.MonthlyBucket)

	for i := range txns {
		t := txns[i]
		key := t.YearMonth()
		b := buckets[key]
		b.YearMonth = key

		switch t.Type {
		case model.TypeIncome:
			b.Income += t.Amount
		case model.TypeExpense:
			b.Expenses += t.Amount
		}

		buckets[key] = b
	}

	return buckets
}

// CashFlowMetrics summarizes the aggregated history.
type CashFlowMetrics struct {
	Months                 []model.MonthlyBucket `json:"months"`
	TotalIncome            float64               `json:"total_income"`
	TotalExpenses          float64               `json:"total_expenses"`
	NetCashFlow            float64               `json:"net_cash_flow"`
	AverageMonthlyIncome   float64               `json:"average_monthly_income"`
	AverageMonthlyExpenses float64               `json:"average_monthly_expenses"`
}

func cashFlowMetrics(months []model.MonthlyBucket) CashFlowMetrics {
	cf := CashFlowMetrics{Months: months}

	for _, m := range months {
		cf.TotalIncome += m.Income
		cf.TotalExpenses += m.Expenses
	}
	cf.NetCashFlow = cf.TotalIncome - cf.TotalExpenses
	cf.AverageMonthlyIncome = safeDiv(cf.TotalIncome, float64(len(months)))
	cf.AverageMonthlyExpenses = safeDiv(cf.TotalExpenses, float64(len(months)))

	return cf
}
