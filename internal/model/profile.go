package model

import (
	"fmt"
	"time"
)

// BusinessProfile describes the business being analyzed. It is supplied once
// per analysis call and never mutated by the engine.
type BusinessProfile struct {
	BusinessStartDate time.Time
	BaseCurrency      string
	Country           string
	Industry          string
}

// Validate checks that the profile carries the fields the engine needs.
func (p *BusinessProfile) Validate() error {
	if p.BaseCurrency == "" {
		return fmt.Errorf("profile: base currency is required")
	}
	if len(p.BaseCurrency) != 3 {
		return fmt.Errorf("profile: base currency must be a 3-letter code, got %q", p.BaseCurrency)
	}
	if p.Industry == "" {
		return fmt.Errorf("profile: industry is required")
	}
	return nil
}

// MonthsInOperation returns the whole months elapsed since the business
// started, relative to now. Returns 0 for a zero start date.
func (p *BusinessProfile) MonthsInOperation(now time.Time) int {
	if p.BusinessStartDate.IsZero() || p.BusinessStartDate.After(now) {
		return 0
	}
	months := (now.Year()-p.BusinessStartDate.Year())*12 + int(now.Month()) - int(p.BusinessStartDate.Month())
	if months < 0 {
		return 0
	}
	return months
}
