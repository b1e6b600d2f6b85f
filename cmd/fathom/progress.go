package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"fathom/internal/bootstrap"
	progressdto "fathom/internal/modules/progression/dto"
)

func newProgressCmd(opts *rootOptions) *cobra.Command {
	progress := &cobra.Command{Use: "progress", Short: "Streaks, experience, journeys and goals"}

	progress.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current progression snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				state, err := app.ProgressCLI.Show(ctx)
				if err != nil {
					return err
				}
				return emit(cmd, opts, state, func(w io.Writer) { printState(w, state) })
			})
		},
	})

	progress.AddCommand(changeCmd(opts, "session", "Record a reflection session", func(ctx context.Context, app *bootstrap.App) (progressdto.ChangeOutput, error) {
		return app.ProgressCLI.Session(ctx)
	}))
	progress.AddCommand(changeCmd(opts, "message", "Record a sent message", func(ctx context.Context, app *bootstrap.App) (progressdto.ChangeOutput, error) {
		return app.ProgressCLI.Message(ctx)
	}))
	progress.AddCommand(changeCmd(opts, "recover", "Restore a recently broken streak", func(ctx context.Context, app *bootstrap.App) (progressdto.ChangeOutput, error) {
		return app.ProgressCLI.Recover(ctx)
	}))

	journey := &cobra.Command{Use: "journey", Short: "Time-boxed journeys with an XP multiplier"}
	var days int
	start := changeCmd(opts, "start", "Start a journey", func(ctx context.Context, app *bootstrap.App) (progressdto.ChangeOutput, error) {
		return app.ProgressCLI.StartJourney(ctx, days)
	})
	start.Flags().IntVar(&days, "days", 7, "journey length in days (see progress catalog)")
	journey.AddCommand(start)
	progress.AddCommand(journey)

	var materialID string
	buy := changeCmd(opts, "buy", "Buy a material with experience", func(ctx context.Context, app *bootstrap.App) (progressdto.ChangeOutput, error) {
		if err := requireFlag("material", materialID); err != nil {
			return progressdto.ChangeOutput{}, err
		}
		return app.ProgressCLI.Buy(ctx, materialID)
	})
	buy.Flags().StringVar(&materialID, "material", "", "material id")
	progress.AddCommand(buy)

	freeze := &cobra.Command{Use: "freeze", Short: "Streak freezes"}
	freeze.AddCommand(changeCmd(opts, "buy", "Buy one streak freeze", func(ctx context.Context, app *bootstrap.App) (progressdto.ChangeOutput, error) {
		return app.ProgressCLI.BuyFreeze(ctx)
	}))
	progress.AddCommand(freeze)

	goal := &cobra.Command{Use: "goal", Short: "Session goals"}
	var goalType, description string
	var target int
	set := changeCmd(opts, "set", "Set the session goal", func(ctx context.Context, app *bootstrap.App) (progressdto.ChangeOutput, error) {
		return app.ProgressCLI.SetGoal(ctx, goalType, target, description)
	})
	set.Flags().StringVar(&goalType, "type", "weekly", "daily|weekly|monthly")
	set.Flags().IntVar(&target, "target", 3, "sessions per period")
	set.Flags().StringVar(&description, "description", "", "goal description")
	goal.AddCommand(set)
	progress.AddCommand(goal)

	progress.AddCommand(&cobra.Command{
		Use:   "catalog",
		Short: "List journeys, materials and badges",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				catalog, err := app.ProgressCLI.Catalog(ctx)
				if err != nil {
					return err
				}
				return emit(cmd, opts, catalog, func(w io.Writer) {
					_, _ = fmt.Fprintln(w, "journeys:")
					for _, j := range catalog.Journeys {
						_, _ = fmt.Fprintf(w, "  %d days\t%s\tx%.1f XP\n", j.Days, j.Name, j.Multiplier)
					}
					_, _ = fmt.Fprintln(w, "materials:")
					for _, m := range catalog.Materials {
						_, _ = fmt.Fprintf(w, "  %s\t%s\t%d XP\n", m.ID, m.Name, m.Cost)
					}
					_, _ = fmt.Fprintln(w, "badges:")
					for _, b := range catalog.Badges {
						_, _ = fmt.Fprintf(w, "  %s\t%s\n", b.Name, b.Description)
					}
					_, _ = fmt.Fprintf(w, "streak freeze: %d XP\n", catalog.StreakFreezeCost)
				})
			})
		},
	})

	var limit int
	history := &cobra.Command{
		Use:   "history",
		Short: "Show recent progression events",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				events, err := app.ProgressCLI.History(ctx, limit)
				if err != nil {
					return err
				}
				return emit(cmd, opts, events, func(w io.Writer) {
					if len(events) == 0 {
						_, _ = fmt.Fprintln(w, "no events")
						return
					}
					for _, e := range events {
						_, _ = fmt.Fprintf(w, "%s\t%s\t%s\tlvl=%d xp=%d streak=%d\n",
							e.At.Local().Format("2006-01-02 15:04"), e.Kind, e.Summary, e.Level, e.Experience, e.Streak)
					}
				})
			})
		},
	}
	history.Flags().IntVar(&limit, "limit", 20, "number of events")
	progress.AddCommand(history)
	return progress
}

func changeCmd(opts *rootOptions, use, short string, run func(ctx context.Context, app *bootstrap.App) (progressdto.ChangeOutput, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := run(ctx, app)
				if err != nil {
					return err
				}
				return emit(cmd, opts, out, func(w io.Writer) {
					printState(w, out.State)
					for _, o := range out.Outcomes {
						_, _ = fmt.Fprintln(w, "  "+o.Message)
					}
				})
			})
		},
	}
}

func printState(w io.Writer, s progressdto.StateOutput) {
	_, _ = fmt.Fprintf(w, "level %d  %d XP (%d to next)\n", s.Level, s.Experience, s.XPToNextLevel)
	_, _ = fmt.Fprintf(w, "streak %d (longest %d)  freezes %d\n", s.StreakCurrent, s.StreakLongest, s.StreakFreeze)
	if s.RecoverableStreak > 0 && !s.StreakRecoveryUsed {
		_, _ = fmt.Fprintf(w, "recoverable streak: %d days\n", s.RecoverableStreak)
	}
	_, _ = fmt.Fprintf(w, "sessions %d  messages %d\n", s.TotalSessions, s.TotalMessages)
	_, _ = fmt.Fprintf(w, "goal %s %d/%d\n", s.Goal.Type, s.Goal.Current, s.Goal.Target)
	if s.Journey.Active {
		_, _ = fmt.Fprintf(w, "journey %s %s → %s (x%.1f)\n", s.Journey.Name, s.Journey.StartDate, s.Journey.EndDate, s.Journey.XPMultiplier)
	}
	if len(s.Badges) > 0 {
		_, _ = fmt.Fprintf(w, "badges %s\n", strings.Join(s.Badges, ", "))
	}
	if len(s.Materials) > 0 {
		_, _ = fmt.Fprintf(w, "materials %s\n", strings.Join(s.Materials, ", "))
	}
}
