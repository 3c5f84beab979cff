package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/countdemo/internal/config"
	"github.com/jask/countdemo/internal/database"
	"github.com/jask/countdemo/internal/database/repository"
	"github.com/jask/countdemo/internal/journal"
	"github.com/jask/countdemo/internal/tui"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		log.Fatalf("countdemo: %v", err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "countdemo",
		Short:         "A reducer-driven counter with a memoized initial value",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			return run(cmd.Context(), cfg)
		},
	}
	root.AddCommand(newJournalCmd(), newInitConfigCmd())
	return root
}

func run(ctx context.Context, cfg config.Config) error {
	if cfg.Log.File != "" {
		f, err := tea.LogToFile(cfg.Log.File, "countdemo")
		if err != nil {
			return fmt.Errorf("log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	var opts []tui.Option
	if cfg.Journal.Enabled {
		if err := os.MkdirAll(filepath.Dir(cfg.Journal.Path), 0o755); err != nil {
			return fmt.Errorf("mkdir journal dir: %w", err)
		}
		db, err := database.OpenAndMigrate(cfg.Journal.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		w := journal.NewWriter(ctx, repository.NewJournalRepo(db), 64)
		defer func() {
			if err := w.Close(); err != nil {
				log.Printf("warn: %v", err)
			}
		}()
		opts = append(opts, tui.WithRecorder(w))
	}

	var progOpts []tea.ProgramOption
	if cfg.UI.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(tui.New(ctx, cfg, opts...), progOpts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

func newJournalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "journal",
		Short: "Print the actions dispatched during the latest mount",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if _, err := os.Stat(cfg.Journal.Path); err != nil {
				return fmt.Errorf("journal %s: %w", cfg.Journal.Path, err)
			}
			db, err := database.OpenAndMigrate(cfg.Journal.Path)
			if err != nil {
				return err
			}
			defer db.Close()
			return printLatestSession(cmd.Context(), cmd.OutOrStdout(), repository.NewJournalRepo(db))
		},
	}
}

func printLatestSession(ctx context.Context, out io.Writer, repo *repository.JournalRepo) error {
	s, err := repo.LatestSession(ctx)
	if err != nil {
		return fmt.Errorf("latest session: %w", err)
	}
	if s == nil {
		fmt.Fprintln(out, "no sessions recorded")
		return nil
	}
	fmt.Fprintf(out, "session %s mounted %s\n", s.ID, s.MountedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "initial count %d (n=%d, %dms)\n", s.InitialCount, s.Iterations, s.ComputeMS)

	entries, err := repo.ListActions(ctx, s.ID)
	if err != nil {
		return fmt.Errorf("list actions: %w", err)
	}
	for _, e := range entries {
		line := fmt.Sprintf("%4d  %-10s", e.Seq, e.Tag)
		if e.Payload != nil {
			line += fmt.Sprintf(" payload=%d", *e.Payload)
		}
		switch {
		case e.Error != nil:
			line += "  error: " + *e.Error
		case e.CountAfter != nil:
			line += fmt.Sprintf("  -> %d", *e.CountAfter)
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

func newInitConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write a default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath()
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
}
