package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kwasifin/vested/internal/cli"
)

func forecastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project future months of cash flow",
		RunE:  runForecast,
	}

	cmd.Flags().IntP("months", "m", 6, "Number of months to project")
	cmd.Flags().String("format", "table", "Output format (table, json)")

	return cmd
}

func runForecast(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	months, _ := cmd.Flags().GetInt("months")
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

	forecast, err := eng.PredictCashFlow(txns, *profile, months)
	if err != nil {
		return err
	}

	if format == "json" {
		return printJSON(forecast)
	}

	printWarnings(forecast.Warnings)

	trend := fmt.Sprintf("Direction:   %s (%s confidence)\nSeasonality: %s (%.2f)\nVolatility:  %.2f",
		forecast.Trends.Direction, forecast.Trends.Confidence,
		forecast.Trends.Seasonality, forecast.Trends.SeasonalityStrength,
		forecast.Trends.Volatility)
	fmt.Println(cli.RenderBox("Trend Analysis", trend))

	rows := make([][]string, 0, len(forecast.Predictions))
	for _, p := range forecast.Predictions {
		rows = append(rows, []string{
			fmt.Sprintf("+%d", p.Month),
			cli.Money(p.PredictedIncome),
			cli.Money(p.PredictedExpenses),
			cli.Money(p.NetCashFlow),
			cli.Money(p.CumulativeCash),
			fmt.Sprintf("%d%%", p.Confidence),
		})
	}
	fmt.Println(cli.RenderBox(fmt.Sprintf("%d-Month Forecast (%s)", months, profile.BaseCurrency),
		cli.RenderTable([]string{"Month", "Income", "Expenses", "Net", "Cumulative", "Confidence"}, rows)))

	for _, r := range forecast.Risks {
		fmt.Println(cli.FormatWarning(r.Message))
	}
	for _, o := range forecast.Opportunities {
		fmt.Println(cli.FormatSuccess(o.Message))
	}
	if len(forecast.Recommendations) > 0 {
		fmt.Println(cli.FormatTitle("Recommendations"))
		for i, rec := range forecast.Recommendations {
			fmt.Printf("  %d. %s\n", i+1, rec)
		}
	}

	return nil
}
