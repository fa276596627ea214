package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kwasifin/vested/internal/cli"
	"github.com/kwasifin/vested/internal/ingest"
	"github.com/kwasifin/vested/internal/model"
	"github.com/kwasifin/vested/internal/ofx"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import transactions from OFX/QFX or CSV files",
		Long: `Import financial transactions from bank statement exports (OFX/QFX) or
from CSV files in the native layout.

Examples:
  # Import a bank statement
  vested import ~/Downloads/statement_jan.qfx

  # Import all statements in a directory
  vested import ~/Downloads/*.ofx

  # Import a CSV export
  vested import transactions.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	// Expand globs and collect all files
	var files []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			files = append(files, matches...)
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found to import")
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	baseCurrency := ""
	if profile, err := store.GetProfile(ctx); err == nil {
		baseCurrency = profile.BaseCurrency
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("Importing"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	var all []model.Transaction
	var warnings []string
	for _, file := range files {
		txns, fileWarnings, err := readTransactionFile(file, baseCurrency)
		if err != nil {
			return fmt.Errorf("importing %s: %w", file, err)
		}
		all = append(all, txns...)
		for _, w := range fileWarnings {
			warnings = append(warnings, fmt.Sprintf("%s: %s", filepath.Base(file), w))
		}
		_ = bar.Add(1)
	}

	for _, w := range warnings {
		fmt.Println(cli.FormatWarning(w))
	}

	if dryRun {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Would import %d transactions from %d files", len(all), len(files))))
		return nil
	}

	if err := store.SaveTransactions(ctx, all); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}

	total, err := store.CountTransactions(ctx)
	if err != nil {
		return err
	}
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d transactions (%d total in database)", len(all), total)))

	return nil
}

func readTransactionFile(path, baseCurrency string) ([]model.Transaction, []string, error) {
	f, err := os.Open(path) // #nosec G304 -- user-supplied import path
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ofx", ".qfx":
		txns, err := ofx.NewParser(baseCurrency).ParseFile(f)
		return txns, nil, err
	case ".csv":
		return ingest.ReadCSV(f)
	default:
		return nil, nil, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}
