package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/kwasifin/vested/internal/cli"
)

func scoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute the investment readiness score",
		RunE:  runScore,
	}

	cmd.Flags().String("format", "table", "Output format (table, json)")

	return cmd
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	format, _ := cmd.Flags().GetString("format")

	eng, err := initEngine()
	if err != nil {
		return err
	}

	store, profile, txns, err := loadAnalysisInputs(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	score, err := eng.ComputeInvestmentReadiness(txns, *profile)
	if err != nil {
		return err
	}

	if format == "json" {
		return printJSON(score)
	}

	printWarnings(score.Warnings)

	categories := make([]string, 0, len(score.Breakdown))
	for cat := range score.Breakdown {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	rows := make([][]string, 0, len(categories))
	for _, cat := range categories {
		rows = append(rows, []string{cat, fmt.Sprintf("%+.1f", score.Breakdown[cat])})
	}

	content := fmt.Sprintf("Overall: %d/100\n\n%s", score.Overall,
		cli.RenderTable([]string{"Category", "Points"}, rows))
	fmt.Println(cli.RenderBox("Investment Readiness", content))

	if len(score.Recommendations) > 0 {
		fmt.Println(cli.FormatTitle("Recommendations"))
		for i, rec := range score.Recommendations {
			fmt.Printf("  %d. %s\n", i+1, rec)
		}
	}

	return nil
}
