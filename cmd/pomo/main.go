package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pomo/internal/bootstrap"
	notifydto "pomo/internal/modules/notify/dto"
	timerdto "pomo/internal/modules/timer/dto"
	"pomo/internal/platform/config"
	apperrors "pomo/internal/platform/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		running := &apperrors.ActiveSessionRunningError{}
		if errors.As(err, &running) {
			fmt.Printf("A Pomodoro session is already running (about %dm%ds remaining). Use --force to overwrite.\n",
				running.RemainingSecs/60, running.RemainingSecs%60)
			os.Exit(1)
		}
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "pomo",
		Short:         "A simple Pomodoro timer CLI with automatic session logs.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", "./data", "data directory for session state and logs")

	root.AddCommand(newStartCmd(&dataDir))
	root.AddCommand(newStatusCmd(&dataDir))
	root.AddCommand(newStopCmd(&dataDir))
	root.AddCommand(newHistoryCmd(&dataDir))
	root.AddCommand(newPluginCmd(&dataDir))
	root.AddCommand(newTUICmd(&dataDir))
	return root
}

func loadApp(dataDir string) (*bootstrap.App, config.Config, error) {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, config.Config{}, err
	}
	app, err := bootstrap.New(cfg)
	return app, cfg, err
}

func newStartCmd(dataDir *string) *cobra.Command {
	var note string
	var force, noWait bool

	start := &cobra.Command{
		Use:   "start [minutes]",
		Short: "Start a new Pomodoro for the given number of minutes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cfg, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			minutes := cfg.DefaultMinutes
			if len(args) == 1 {
				minutes, err = strconv.ParseUint(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("minutes must be a positive integer: %q", args[0])
				}
			}

			ctx := context.Background()
			session, err := app.TimerCLI.Start(ctx, time.Now(), minutes, note, force)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Started Pomodoro: %d minutes (ends at %s)\n",
				session.Minutes, time.Unix(session.EndUnix, 0).UTC().Format(time.RFC3339))
			if session.Note != "" {
				_, _ = fmt.Fprintf(out, "Note: %s\n", session.Note)
			}
			_, _ = fmt.Fprintf(out, "Log file: %s\n", session.LogPath)
			if noWait {
				return nil
			}
			_, _ = fmt.Fprintln(out, "Press Ctrl+C to cancel this session.")

			var canceled atomic.Bool
			signals := make(chan os.Signal, 1)
			signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(signals)
			go func() {
				<-signals
				canceled.Store(true)
			}()

			result, err := app.TimerCLI.Run(ctx, session,
				func() bool { return canceled.Load() },
				func(remainingSecs uint64) {
					suffix := ""
					if canceled.Load() {
						suffix = " (canceling)"
					}
					_, _ = fmt.Fprintf(out, "\rTime remaining: %02dm%02ds%s", remainingSecs/60, remainingSecs%60, suffix)
				})
			_, _ = fmt.Fprintln(out)
			if err != nil {
				return err
			}

			switch result.Outcome {
			case "completed":
				_, _ = fmt.Fprintf(out, "Session completed! Log: %s\n", result.LogPath)
			case "canceled":
				_, _ = fmt.Fprintf(out, "Session canceled. Log: %s\n", result.LogPath)
			}

			if !cfg.NotifyDisabled {
				broadcast(ctx, app, cmd, result, session)
			}
			return nil
		},
	}
	start.Flags().StringVar(&note, "note", "", "optional note to include in logs")
	start.Flags().BoolVar(&force, "force", false, "force a new active session if one exists")
	start.Flags().BoolVar(&noWait, "no-wait", false, "start the session and return without waiting")
	return start
}

// broadcast tells installed notifier plugins about the outcome. Failures are
// reported but never affect the exit status; the session log is already on
// disk by the time this runs.
func broadcast(ctx context.Context, app *bootstrap.App, cmd *cobra.Command, result timerdto.RunOutput, session timerdto.SessionOutput) {
	kind := "session_completed"
	if result.Outcome == "canceled" {
		kind = "session_canceled"
	}
	deliveries, err := app.NotifyCLI.Broadcast(ctx, notifydto.EventInput{
		Kind:       kind,
		Minutes:    session.Minutes,
		Note:       session.Note,
		LogPath:    result.LogPath,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "notify: %v\n", err)
		return
	}
	for _, d := range deliveries {
		if d.Error != "" {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "notify %s: %s\n", d.Plugin, d.Error)
		}
	}
}

func newStatusCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show status of current Pomodoro",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			status, err := app.TimerCLI.Status(context.Background(), time.Now())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch status.Kind {
			case "none":
				_, _ = fmt.Fprintln(out, "No active Pomodoro.")
			case "running":
				_, _ = fmt.Fprintf(out, "Running. Elapsed: %dm%ds, Remaining: %dm%ds\n",
					status.ElapsedSecs/60, status.ElapsedSecs%60,
					status.RemainingSecs/60, status.RemainingSecs%60)
			case "completed":
				logged := ""
				if status.JustLogged {
					logged = " Log entry recorded."
				}
				_, _ = fmt.Fprintf(out, "Completed. Finished %dm%ds ago.%s\n",
					status.OverSecs/60, status.OverSecs%60, logged)
			}
			return nil
		},
	}
}

func newStopCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the current Pomodoro and mark it as canceled when appropriate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.TimerCLI.Stop(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Stopped and cleared active Pomodoro.")
			return nil
		},
	}
}

func newHistoryCmd(dataDir *string) *cobra.Command {
	history := &cobra.Command{Use: "history", Short: "Browse finished session logs"}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List logged sessions, most recent first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			records, err := app.HistoryCLI.List(context.Background(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				_, _ = fmt.Fprintln(out, "no sessions logged")
				return nil
			}
			for _, r := range records {
				note := r.Note
				if note == "" {
					note = "-"
				}
				_, _ = fmt.Fprintf(out, "%s\t%dm\t%s\t%s\n", r.StartedAt, r.Minutes, r.Outcome, note)
			}
			return nil
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "maximum sessions to show")
	history.AddCommand(list)

	history.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show aggregate session counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			stats, err := app.HistoryCLI.Stats(context.Background())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "sessions: %d\n", stats.Total)
			_, _ = fmt.Fprintf(out, "completed: %d\n", stats.Completed)
			_, _ = fmt.Fprintf(out, "canceled: %d\n", stats.Canceled)
			_, _ = fmt.Fprintf(out, "open: %d\n", stats.Open)
			_, _ = fmt.Fprintf(out, "focus minutes: %d\n", stats.FocusMinutes)
			return nil
		},
	})

	history.AddCommand(&cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the session index from log files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.HistoryCLI.Reindex(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "indexed %d sessions\n", out.Indexed)
			return nil
		},
	})

	return history
}

func newPluginCmd(dataDir *string) *cobra.Command {
	plugin := &cobra.Command{Use: "plugin", Short: "Notifier plugin operations"}

	plugin.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List notifier plugin manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			plugins, err := app.NotifyCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(plugins) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
				return nil
			}
			for _, p := range plugins {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t binary=%s\n", p.Name, p.Version, p.Enabled, p.Binary)
			}
			return nil
		},
	})

	plugin.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate notifier checksums and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			results, err := app.NotifyCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
				return nil
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
				if r.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	})

	plugin.AddCommand(&cobra.Command{
		Use:   "test <name>",
		Short: "Deliver a sample event through one notifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			result, err := app.NotifyCLI.Test(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s capabilities=%v delivered=%t\n",
				result.Name, result.Version, result.Capabilities, result.Delivered)
			return nil
		},
	})

	return plugin
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the pomo terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, cfg, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(cfg, app)
		},
	}
}
