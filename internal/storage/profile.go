package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kwasifin/vested/internal/common"
	"github.com/kwasifin/vested/internal/model"
)

// SaveProfile upserts the single business profile row.
func (s *SQLiteStorage) SaveProfile(ctx context.Context, profile model.BusinessProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	var startDate sql.NullTime
	if !profile.BusinessStartDate.IsZero() {
		startDate = sql.NullTime{Time: profile.BusinessStartDate, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profile (id, base_currency, country, industry, start_date, updated_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			base_currency = excluded.base_currency,
			country = excluded.country,
			industry = excluded.industry,
			start_date = excluded.start_date,
			updated_at = excluded.updated_at
	`, profile.BaseCurrency, profile.Country, profile.Industry, startDate, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	return nil
}

// GetProfile returns the stored business profile, or common.ErrNoProfile if
// none has been configured.
func (s *SQLiteStorage) GetProfile(ctx context.Context) (*model.BusinessProfile, error) {
	var profile model.BusinessProfile
	var startDate sql.NullTime

	err := s.db.QueryRowContext(ctx, `
		SELECT base_currency, country, industry, start_date
		FROM profile WHERE id = 1
	`).Scan(&profile.BaseCurrency, &profile.Country, &profile.Industry, &startDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNoProfile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	if startDate.Valid {
		profile.BusinessStartDate = startDate.Time
	}

	return &profile, nil
}
