package main

import (
	"io"

	"mediasort/internal/config"
	"mediasort/internal/errors"
	"mediasort/internal/log"
	"mediasort/internal/organize"
	"mediasort/internal/report"
	"mediasort/pkg/types"

	"github.com/spf13/cobra"
)

// options holds raw flag values; only flags the user actually set override
// the configuration file.
type options struct {
	configPath string
	strategy   string
	collision  string
	action     string
	targetDir  string
	dryRun     bool
	verbose    bool
	summary    bool
	exiftool   string
	ffprobe    string
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "mediasort [flags] FILE...",
		Short: "Sort photos and videos into YEAR/MONTH folders by capture date",
		Long: `mediasort reads each file's capture date and files it under
TARGET/<year>/<month>/<name>, moving, copying or hardlinking it there.

Files are processed one at a time. A file that fails is reported and
skipped; the exit status is non-zero if any file failed.`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			org, err := newOrganizer(cfg, opts, stdout, stderr)
			if err != nil {
				return err
			}
			_, err = org.Run(cmd.Context(), args)
			return err
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default is $HOME/.config/mediasort/config.yaml)")
	flags.StringVarP(&opts.strategy, "gatherer", "g", string(types.StrategyExif), "date source: "+joined(types.Strategies()))
	flags.StringVarP(&opts.collision, "collision", "c", string(types.CollisionSkip), "when the destination exists: "+joined(types.Collisions()))
	flags.StringVarP(&opts.action, "action", "a", string(types.ActionMove), "file action: "+joined(types.Actions()))
	flags.StringVarP(&opts.targetDir, "target-dir", "d", ".", "base directory of the YEAR/MONTH tree")
	flags.BoolVarP(&opts.dryRun, "dry-run", "n", false, "report what would happen without touching any file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging on stderr")
	flags.StringVar(&opts.exiftool, "exiftool", "exiftool", "exiftool binary")
	flags.StringVar(&opts.ffprobe, "ffprobe", "ffprobe", "ffprobe binary")
	rootCmd.Flags().BoolVar(&opts.summary, "summary", false, "print a summary table after the batch")

	rootCmd.AddCommand(newWatchCommand(opts, stdout, stderr))
	rootCmd.AddCommand(newVersionCommand(stdout))

	return rootCmd
}

// loadConfig reads the configuration file and applies explicitly set flags.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadConfigFile(opts.configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("gatherer") {
		s, err := types.ParseStrategy(opts.strategy)
		if err != nil {
			return nil, errors.NewConfigError("invalid --gatherer", "gatherer", err)
		}
		cfg.Strategy = s
	}
	if flags.Changed("collision") {
		c, err := types.ParseCollision(opts.collision)
		if err != nil {
			return nil, errors.NewConfigError("invalid --collision", "collision", err)
		}
		cfg.Collision = c
	}
	if flags.Changed("action") {
		a, err := types.ParseAction(opts.action)
		if err != nil {
			return nil, errors.NewConfigError("invalid --action", "action", err)
		}
		cfg.Action = a
	}
	if flags.Changed("target-dir") {
		cfg.TargetDir = opts.targetDir
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = opts.dryRun
	}
	if flags.Changed("verbose") {
		cfg.Verbose = opts.verbose
	}
	if flags.Changed("exiftool") {
		cfg.Tools.Exiftool = opts.exiftool
	}
	if flags.Changed("ffprobe") {
		cfg.Tools.FFprobe = opts.ffprobe
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, stderr io.Writer) log.Logging {
	return log.NewLogger(log.WithOutput(stderr), log.WithDebug(cfg.Verbose))
}

func newOrganizer(cfg *config.Config, opts *options, stdout, stderr io.Writer) (organize.Organizer, error) {
	return organize.CurrentOrganizerFactory(cfg,
		organize.WithLogger(newLogger(cfg, stderr)),
		organize.WithReporter(report.NewConsole(stdout, stderr, report.WithSummary(opts.summary))),
	)
}

func joined[T ~string](values []T) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += ", "
		}
		out += string(v)
	}
	return out
}
