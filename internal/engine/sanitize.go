package engine

import (
	"fmt"

	"github.com/kwasifin/vested/internal/model"
)

// sanitize filters out transactions that cannot be aggregated safely and
// returns a warning per exclusion. Data quality problems are never fatal:
// the caller gets approximate results plus the list of excluded records.
func sanitize(txns []model.Transaction) ([]model.Transaction, []string) {
	valid := make([]model.Transaction, 0, len(txns))
	var warnings []string

	for i := range txns {
		t := txns[i]
		if err := t.Validate(); err != nil {
			if t.ID == "" {
				warnings = append(warnings, fmt.Sprintf("excluded transaction at index %d: %v", i, err))
			} else {
				warnings = append(warnings, fmt.Sprintf("excluded transaction %s: %v", t.ID, err))
			}
			continue
		}
		valid = append(valid, t)
	}

	return valid, warnings
}
