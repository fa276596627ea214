package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kwasifin/vested/internal/cli"
)

func riskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Run the comprehensive risk assessment",
		RunE:  runRisk,
	}

	cmd.Flags().String("format", "table", "Output format (table, json)")

	return cmd
}

func runRisk(cmd *cobra.Command, _ []string) error {
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

	assessment, err := eng.ComputeComprehensiveRisk(txns, *profile)
	if err != nil {
		return err
	}

	if format == "json" {
		return printJSON(assessment)
	}

	printWarnings(assessment.Warnings)

	rows := make([][]string, 0, len(assessment.Factors))
	for _, f := range assessment.Factors {
		rows = append(rows, []string{string(f.Category), f.Level.String(), strings.Join(f.Factors, "; ")})
	}
	content := fmt.Sprintf("Overall: %s (score %.2f)\n\n%s",
		assessment.OverallLevel, assessment.OverallScore,
		cli.RenderTable([]string{"Category", "Level", "Findings"}, rows))
	fmt.Println(cli.RenderBox("Risk Assessment", content))

	if len(assessment.Mitigation) > 0 {
		fmt.Println(cli.FormatTitle("Mitigation Plan"))
		for _, m := range assessment.Mitigation {
			fmt.Printf("  %s (%s):\n", m.Category, m.Priority)
			for _, action := range m.Actions {
				fmt.Printf("    - %s\n", action)
			}
		}
	}

	fmt.Println(cli.FormatTitle(fmt.Sprintf("Monitoring (review %s)", assessment.Monitoring.ReviewCadence)))
	for _, item := range assessment.Monitoring.Items {
		fmt.Printf("  %s: watch %s; trigger: %s\n",
			item.Category, strings.Join(item.Metrics, ", "), item.Trigger)
	}

	return nil
}
