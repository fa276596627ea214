package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/kwasifin/vested/internal/model"
	"github.com/kwasifin/vested/internal/service"
)

// SaveTransactions saves multiple transactions in one database transaction.
// Records with an existing id are ignored rather than duplicated.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (
			id, date, type, amount, currency, category,
			description, payment_method, customer_id, status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range transactions {
		t := transactions[i]

		var customerID, status sql.NullString
		if t.CustomerID != nil {
			customerID = sql.NullString{String: *t.CustomerID, Valid: true}
		}
		if t.Status != nil {
			status = sql.NullString{String: string(*t.Status), Valid: true}
		}

		if _, err := stmt.ExecContext(ctx,
			t.ID, t.Date, string(t.Type), t.Amount, t.Currency, t.Category,
			t.Description, t.PaymentMethod, customerID, status,
		); err != nil {
			return fmt.Errorf("failed to save transaction %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// GetTransactions returns transactions matching the filter, oldest first.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	query := `
		SELECT id, date, type, amount, currency, category,
		       description, payment_method, customer_id, status
		FROM transactions
	`
	var clauses []string
	var args []any

	if filter.StartDate != nil {
		clauses = append(clauses, "date >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		clauses = append(clauses, "date <= ?")
		args = append(args, *filter.EndDate)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY date ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}

// CountTransactions returns the total number of stored transactions.
func (s *SQLiteStorage) CountTransactions(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func scanTransaction(rows *sql.Rows) (model.Transaction, error) {
	var t model.Transaction
	var txnType string
	var date time.Time
	var customerID, status sql.NullString

	if err := rows.Scan(&t.ID, &date, &txnType, &t.Amount, &t.Currency, &t.Category,
		&t.Description, &t.PaymentMethod, &customerID, &status); err != nil {
		return t, fmt.Errorf("failed to scan transaction: %w", err)
	}

	t.Date = date
	t.Type = model.TransactionType(txnType)
	if customerID.Valid {
		t.CustomerID = &customerID.String
	}
	if status.Valid {
		st := model.TransactionStatus(status.String)
		t.Status = &st
	}

	return t, nil
}
