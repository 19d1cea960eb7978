package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"mediasort/internal/watch"

	"github.com/spf13/cobra"
)

func newWatchCommand(opts *options, stdout, stderr io.Writer) *cobra.Command {
	var (
		include  []string
		settleMS int
	)

	cmd := &cobra.Command{
		Use:   "watch DIR...",
		Short: "Organize files as they appear in the given directories",
		Long: `Watch the given directories (not their subdirectories) and organize
each new file matching the include patterns once it has stopped changing
for the settle delay. Runs until interrupted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("include") {
				cfg.Watch.Include = include
			}
			if cmd.Flags().Changed("settle-ms") {
				cfg.Watch.SettleMS = settleMS
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(cfg, stderr)
			org, err := newOrganizer(cfg, opts, stdout, stderr)
			if err != nil {
				return err
			}

			daemon, err := watch.NewDaemon(cfg, org, logger)
			if err != nil {
				return err
			}
			for _, dir := range args {
				if err := daemon.AddWatchDirectory(dir); err != nil {
					return err
				}
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			fmt.Fprintf(stderr, "Watching %s (Ctrl+C to stop)\n", strings.Join(args, ", "))
			if err := daemon.Run(ctx); err != nil {
				return err
			}

			status := daemon.Status()
			fmt.Fprintf(stderr, "Stopped: %d organized, %d failed\n", status.FilesProcessed, status.FilesFailed)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&include, "include", nil, "glob patterns a new file name must match (default from config: *)")
	cmd.Flags().IntVar(&settleMS, "settle-ms", 500, "milliseconds a file must be quiet before it is organized")

	return cmd
}
