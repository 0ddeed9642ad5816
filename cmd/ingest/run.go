package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matchledger/footstats/internal/usecase"
)

func newBackfillCommand(opts *options) *cobra.Command {
	var (
		leagues         []string
		startYear       int
		endYear         int
		refresh         bool
		skipMatches     bool
		skipTeamStats   bool
		skipPlayerStats bool
		skipStandings   bool
	)

	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Load every configured league and season from scratch",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := buildApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			if startYear == 0 {
				startYear = app.cfg.Seasons.StartYear
			}
			if endYear == 0 {
				endYear = app.cfg.Seasons.EndYear
			}

			summary, err := app.orchestrator.Backfill(cmd.Context(), usecase.BackfillOptions{
				Leagues:         app.leagues(leagues),
				StartYear:       startYear,
				EndYear:         endYear,
				Refresh:         refresh,
				SkipMatches:     skipMatches,
				SkipTeamStats:   skipTeamStats,
				SkipPlayerStats: skipPlayerStats,
				SkipStandings:   skipStandings,
			})
			if err != nil {
				app.logger.Error("backfill failed", "error", err.Error())
				return err
			}
			printSummary(cmd, summary)

			return nil
		},
	}
	cmd.Flags().StringSliceVar(&leagues, "leagues", nil, "league codes (defaults to the configured leagues)")
	cmd.Flags().IntVar(&startYear, "start-year", 0, "first season start year (defaults to the configured range)")
	cmd.Flags().IntVar(&endYear, "end-year", 0, "last season start year (defaults to the configured range)")
	cmd.Flags().BoolVar(&refresh, "force-refresh", false, "bypass the source cache")
	cmd.Flags().BoolVar(&skipMatches, "skip-matches", false, "skip the fixture schedule")
	cmd.Flags().BoolVar(&skipTeamStats, "skip-team-stats", false, "skip team season statistics")
	cmd.Flags().BoolVar(&skipPlayerStats, "skip-player-stats", false, "skip player season statistics")
	cmd.Flags().BoolVar(&skipStandings, "skip-standings", false, "skip league standings")

	return cmd
}

func newDailyCommand(opts *options) *cobra.Command {
	var (
		leagues       []string
		season        string
		skipMatches   bool
		skipStats     bool
		skipStandings bool
	)

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Refresh the current season for every configured league",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := buildApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			summary, err := app.orchestrator.DailyUpdate(cmd.Context(), usecase.DailyOptions{
				Leagues:       app.leagues(leagues),
				Season:        season,
				SkipMatches:   skipMatches,
				SkipStats:     skipStats,
				SkipStandings: skipStandings,
			})
			if err != nil {
				app.logger.Error("daily update failed", "error", err.Error())
				return err
			}
			printSummary(cmd, summary)

			return nil
		},
	}
	cmd.Flags().StringSliceVar(&leagues, "leagues", nil, "league codes (defaults to the configured leagues)")
	cmd.Flags().StringVar(&season, "season", "", "season to refresh (defaults to the current one)")
	cmd.Flags().BoolVar(&skipMatches, "skip-matches", false, "skip the fixture schedule")
	cmd.Flags().BoolVar(&skipStats, "skip-stats", false, "skip team and player statistics")
	cmd.Flags().BoolVar(&skipStandings, "skip-standings", false, "skip league standings")

	return cmd
}

func printSummary(cmd *cobra.Command, summary usecase.Summary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "matches: %s\n", summary.Matches.String())
	fmt.Fprintf(out, "team stats: %s\n", summary.TeamStats.String())
	fmt.Fprintf(out, "player stats: %s\n", summary.PlayerStats.String())
	fmt.Fprintf(out, "standings: %s\n", summary.Standings.String())
}
