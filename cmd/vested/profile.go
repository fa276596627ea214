package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kwasifin/vested/internal/cli"
	"github.com/kwasifin/vested/internal/common"
	"github.com/kwasifin/vested/internal/model"
)

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the business profile",
	}

	cmd.AddCommand(profileSetCmd())
	cmd.AddCommand(profileShowCmd())

	return cmd
}

func profileSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the business profile used by all analyses",
		RunE:  runProfileSet,
	}

	cmd.Flags().String("currency", "", "Base currency code, e.g. KES")
	cmd.Flags().String("country", "", "Country code, e.g. KE")
	cmd.Flags().String("industry", "", "Industry, e.g. retail, agriculture, services")
	cmd.Flags().String("started", "", "Month the business started (format: 2021-03)")
	_ = cmd.MarkFlagRequired("currency")
	_ = cmd.MarkFlagRequired("industry")

	return cmd
}

func runProfileSet(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	currency, _ := cmd.Flags().GetString("currency")
	country, _ := cmd.Flags().GetString("country")
	industry, _ := cmd.Flags().GetString("industry")
	started, _ := cmd.Flags().GetString("started")

	profile := model.BusinessProfile{
		BaseCurrency: currency,
		Country:      country,
		Industry:     industry,
	}
	if started != "" {
		t, err := time.Parse("2006-01", started)
		if err != nil {
			return fmt.Errorf("invalid start month %q, expected format 2021-03", started)
		}
		profile.BusinessStartDate = t
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.SaveProfile(ctx, profile); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Profile saved: %s business in %s, base currency %s",
		profile.Industry, profile.Country, profile.BaseCurrency)))
	return nil
}

func profileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current business profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			profile, err := store.GetProfile(ctx)
			if errors.Is(err, common.ErrNoProfile) {
				fmt.Println(cli.FormatWarning("No profile configured. Run 'vested profile set' first."))
				return nil
			}
			if err != nil {
				return err
			}

			started := "unknown"
			if !profile.BusinessStartDate.IsZero() {
				started = profile.BusinessStartDate.Format("2006-01")
			}
			content := fmt.Sprintf("Base currency: %s\nCountry: %s\nIndustry: %s\nStarted: %s",
				profile.BaseCurrency, profile.Country, profile.Industry, started)
			fmt.Println(cli.RenderBox("Business Profile", content))
			return nil
		},
	}
}
