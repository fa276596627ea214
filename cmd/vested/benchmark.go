package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kwasifin/vested/internal/cli"
)

func benchmarkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Compare metrics against industry benchmarks",
		RunE:  runBenchmark,
	}

	cmd.Flags().String("industry", "", "Industry to benchmark against (default: profile industry)")
	cmd.Flags().String("country", "", "Country context (default: profile country)")
	cmd.Flags().String("format", "table", "Output format (table, json)")

	return cmd
}

func runBenchmark(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	industry, _ := cmd.Flags().GetString("industry")
	country, _ := cmd.Flags().GetString("country")
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

	report, err := eng.CompareToBenchmarks(txns, *profile, industry, country)
	if err != nil {
		return err
	}

	if format == "json" {
		return printJSON(report)
	}

	printWarnings(report.Warnings)

	rows := make([][]string, 0, len(report.Comparisons))
	for _, c := range report.Comparisons {
		rows = append(rows, []string{
			c.Metric,
			fmt.Sprintf("%.1f", c.Value),
			c.Tier,
			fmt.Sprintf("%dth", c.Percentile),
		})
	}
	fmt.Println(cli.RenderBox(fmt.Sprintf("Benchmarks: %s", report.Industry),
		cli.RenderTable([]string{"Metric", "Value", "Tier", "Percentile"}, rows)))

	return nil
}
