package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tomato/internal/alert"
	"tomato/internal/config"
	"tomato/internal/store"
	"tomato/internal/timer"
	"tomato/internal/tui"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dbPath string
	var short bool

	root := &cobra.Command{
		Use:           "tomato",
		Short:         "Per-task focus timer with work/rest cycles",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(dbPath, short)
		},
	}
	root.Flags().StringVar(&dbPath, "db", "", "database path (default: user config dir)")
	root.Flags().BoolVar(&short, "short", false, "use short demo durations")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tomato %s\n", version)
		},
	})
	return root
}

func run(dbPath string, short bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return err
		}
	}

	s, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	beeper := alert.NewBeeper(cfg.Sound)
	notifier := alert.NewNotifier(cfg.Notifications)

	work, rest := cfg.Durations(short)
	ctrl := timer.New(
		timer.Config{Work: work, Rest: rest},
		beeper,
		notifier,
		s.CompleteTask,
	)
	defer ctrl.Close()

	// Terminal bell and D-Bus need no unlock gesture, but priming up
	// front surfaces audio backend errors before the first phase ends.
	beeper.Prime()

	applySettings := func(next config.Config) error {
		if err := next.Save(); err != nil {
			return err
		}
		w, r := next.Durations(short)
		ctrl.SetConfig(timer.Config{Work: w, Rest: r})
		beeper.SetEnabled(next.Sound)
		notifier.SetEnabled(next.Notifications)
		return nil
	}

	app := tui.NewApp(s, ctrl, &cfg, applySettings)
	p := tea.NewProgram(app, tea.WithAltScreen())

	// Phase expiries happen on timer goroutines; forward them into the
	// program loop so views refresh and history gets recorded.
	ctrl.SetEventHook(func(ev timer.Event) {
		p.Send(tui.PhaseEventMsg{Event: ev})
	})

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
