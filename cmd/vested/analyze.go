package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kwasifin/vested/internal/cli"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze financial health from the transaction history",
		RunE:  runAnalyze,
	}

	cmd.Flags().String("format", "table", "Output format (table, json)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
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

	health, err := eng.ComputeFinancialHealth(txns, *profile)
	if err != nil {
		return err
	}

	if format == "json" {
		return printJSON(health)
	}

	printWarnings(health.Warnings)

	cashFlow := fmt.Sprintf("Total income:    %s %s\nTotal expenses:  %s %s\nNet cash flow:   %s %s\nMonths recorded: %d",
		cli.Money(health.CashFlow.TotalIncome), profile.BaseCurrency,
		cli.Money(health.CashFlow.TotalExpenses), profile.BaseCurrency,
		cli.Money(health.CashFlow.NetCashFlow), profile.BaseCurrency,
		len(health.CashFlow.Months))
	fmt.Println(cli.RenderBox("Cash Flow", cashFlow))

	profitability := fmt.Sprintf("Net margin:    %s\nGross margin:  %s\nRevenue growth: %s\nTrend:         %s",
		cli.Percent(health.Profitability.NetProfitMargin),
		cli.Percent(health.Profitability.GrossProfitMargin),
		cli.Percent(health.Profitability.RevenueGrowthRate),
		health.Profitability.Trend)
	fmt.Println(cli.RenderBox("Profitability", profitability))

	liquidity := fmt.Sprintf("Cash position:   %s %s\nMonths covered:  %.1f\nEmergency fund:  %s of target\nLiquidity risk:  %s",
		cli.Money(health.Liquidity.CurrentCashPosition), profile.BaseCurrency,
		health.Liquidity.MonthsOfExpensesCovered,
		cli.Percent(health.Liquidity.EmergencyFundRatio),
		health.Liquidity.Risk)
	fmt.Println(cli.RenderBox("Liquidity", liquidity))

	regional := fmt.Sprintf("Mobile money dependency: %s\nForex exposure:          %.0f%% (%s)\nInformal economy ratio:  %s\nSeasonality index:       %s\nAfCFTA readiness:        %.0f/100",
		cli.Percent(health.Regional.MobileMoneyDependency),
		health.Regional.Forex.Ratio*100, health.Regional.Forex.RiskLevel,
		cli.Percent(health.Regional.InformalEconomyRatio),
		cli.Percent(health.Regional.SeasonalityIndex),
		health.Regional.AfCFTAReadiness)
	fmt.Println(cli.RenderBox("Regional Signals", regional))

	return nil
}

func printWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Println(cli.FormatWarning(fmt.Sprintf("%d transactions excluded, results may be approximate:", len(warnings))))
	fmt.Println(cli.SubtleStyle.Render("  " + strings.Join(warnings, "\n  ")))
}
