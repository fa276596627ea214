// Package service defines the interfaces between the CLI and its collaborators.
package service

import (
	"context"
	"time"

	"github.com/kwasifin/vested/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
}

// Storage defines the contract for the persistence layer. The analysis
// engine never touches storage; commands load records through this interface
// and hand them to the engine as immutable snapshots.
type Storage interface {
	// Transaction operations
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	CountTransactions(ctx context.Context) (int, error)

	// Profile operations
	SaveProfile(ctx context.Context, profile model.BusinessProfile) error
	GetProfile(ctx context.Context) (*model.BusinessProfile, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
