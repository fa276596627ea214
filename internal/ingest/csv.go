// Package ingest reads transaction files in the engine's native CSV layout.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kwasifin/vested/internal/model"
)

// Expected header columns, in order.
var csvHeader = []string{
	"id", "date", "type", "amount", "currency",
	"category", "description", "payment_method", "customer_id", "status",
}

// Accepted date layouts.
var dateLayouts = []string{"2006-01-02", "2006-01-02T15:04:05Z07:00", "02/01/2006"}

// ReadCSV parses transactions from r. Rows missing an id get a generated
// one; rows that cannot be parsed at all are returned as warnings, matching
// the engine's policy of excluding bad records instead of failing.
func ReadCSV(r io.Reader) ([]model.Transaction, []string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, nil, err
	}

	var transactions []model.Transaction
	var warnings []string
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		t, err := parseRecord(record)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		transactions = append(transactions, t)
	}

	return transactions, warnings, nil
}

func checkHeader(header []string) error {
	if len(header) != len(csvHeader) {
		return fmt.Errorf("expected %d columns, got %d", len(csvHeader), len(header))
	}
	for i, col := range header {
		if strings.ToLower(strings.TrimSpace(col)) != csvHeader[i] {
			return fmt.Errorf("expected column %q at position %d, got %q", csvHeader[i], i+1, col)
		}
	}
	return nil
}

func parseRecord(record []string) (model.Transaction, error) {
	var t model.Transaction

	t.ID = strings.TrimSpace(record[0])
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	date, err := parseDate(record[1])
	if err != nil {
		return t, err
	}
	t.Date = date

	t.Type = model.TransactionType(strings.ToLower(strings.TrimSpace(record[2])))

	amount, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
	if err != nil {
		return t, fmt.Errorf("invalid amount %q", record[3])
	}
	t.Amount = amount

	t.Currency = strings.ToUpper(strings.TrimSpace(record[4]))
	t.Category = strings.ToLower(strings.TrimSpace(record[5]))
	t.Description = strings.TrimSpace(record[6])
	t.PaymentMethod = strings.ToLower(strings.TrimSpace(record[7]))

	if customer := strings.TrimSpace(record[8]); customer != "" {
		t.CustomerID = &customer
	}
	if status := strings.ToLower(strings.TrimSpace(record[9])); status != "" {
		st := model.TransactionStatus(status)
		if st != model.StatusPending && st != model.StatusSettled {
			return t, fmt.Errorf("invalid status %q", status)
		}
		t.Status = &st
	}

	return t, t.Validate()
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, value); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}
