package model

// MonthlyBucket holds aggregated income and expenses for one calendar month.
// Buckets are derived fresh on every analysis call and never persisted by the
// engine.
type MonthlyBucket struct {
	YearMonth string
	Income    float64
	Expenses  float64
}

// Net returns the month's net cash flow.
func (b MonthlyBucket) Net() float64 {
	return b.Income - b.Expenses
}
