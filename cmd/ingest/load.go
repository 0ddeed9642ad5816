package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newMatchesCommand(opts *options) *cobra.Command {
	var (
		league  string
		season  string
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "matches",
		Short: "Load the fixture schedule and results for one league season",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := buildApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := app.matches.Load(cmd.Context(), app.league(league), season, refresh)
			if err != nil {
				app.logger.Error("matches load failed", "error", err.Error())
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.String())

			return nil
		},
	}
	cmd.Flags().StringVar(&league, "league", "", "league code (defaults to the first configured league)")
	cmd.Flags().StringVar(&season, "season", "", "season, e.g. 2023-2024")
	cmd.Flags().BoolVar(&refresh, "force-refresh", false, "bypass the source cache")
	_ = cmd.MarkFlagRequired("season")

	return cmd
}

func newTeamStatsCommand(opts *options) *cobra.Command {
	var (
		league    string
		season    string
		statTypes []string
		refresh   bool
	)

	cmd := &cobra.Command{
		Use:   "team-stats",
		Short: "Load season-level team statistics for one league season",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := buildApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := app.teamStats.Load(cmd.Context(), app.league(league), season, statTypes, refresh)
			if err != nil {
				app.logger.Error("team stats load failed", "error", err.Error())
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.String())

			return nil
		},
	}
	cmd.Flags().StringVar(&league, "league", "", "league code (defaults to the first configured league)")
	cmd.Flags().StringVar(&season, "season", "", "season, e.g. 2023-2024")
	cmd.Flags().StringSliceVar(&statTypes, "stat-types", nil, "stat categories to load (defaults to all)")
	cmd.Flags().BoolVar(&refresh, "force-refresh", false, "bypass the source cache")
	_ = cmd.MarkFlagRequired("season")

	return cmd
}

func newPlayerStatsCommand(opts *options) *cobra.Command {
	var (
		league    string
		season    string
		statTypes []string
		refresh   bool
	)

	cmd := &cobra.Command{
		Use:   "player-stats",
		Short: "Load season-level player statistics for one league season",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := buildApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := app.playerStats.Load(cmd.Context(), app.league(league), season, statTypes, refresh)
			if err != nil {
				app.logger.Error("player stats load failed", "error", err.Error())
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.String())

			return nil
		},
	}
	cmd.Flags().StringVar(&league, "league", "", "league code (defaults to the first configured league)")
	cmd.Flags().StringVar(&season, "season", "", "season, e.g. 2023-2024")
	cmd.Flags().StringSliceVar(&statTypes, "stat-types", nil, "stat categories to load (defaults to all except goalkeeping)")
	cmd.Flags().BoolVar(&refresh, "force-refresh", false, "bypass the source cache")
	_ = cmd.MarkFlagRequired("season")

	return cmd
}

func newStandingsCommand(opts *options) *cobra.Command {
	var (
		league  string
		season  string
		date    string
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Snapshot the league table for one league season",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var standingDate time.Time
			if date != "" {
				parsed, err := time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("parse --date: %w", err)
				}
				standingDate = parsed
			}

			app, err := buildApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := app.standings.Load(cmd.Context(), app.league(league), season, standingDate, refresh)
			if err != nil {
				app.logger.Error("standings load failed", "error", err.Error())
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.String())

			return nil
		},
	}
	cmd.Flags().StringVar(&league, "league", "", "league code (defaults to the first configured league)")
	cmd.Flags().StringVar(&season, "season", "", "season, e.g. 2023-2024")
	cmd.Flags().StringVar(&date, "date", "", "snapshot date as YYYY-MM-DD (defaults to today)")
	cmd.Flags().BoolVar(&refresh, "force-refresh", false, "bypass the source cache")
	_ = cmd.MarkFlagRequired("season")

	return cmd
}
