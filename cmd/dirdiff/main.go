package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bamsammich/dirdiff/internal/config"
	"github.com/bamsammich/dirdiff/internal/engine"
	"github.com/bamsammich/dirdiff/internal/event"
	"github.com/bamsammich/dirdiff/internal/filter"
	"github.com/bamsammich/dirdiff/internal/gitdiff"
	"github.com/bamsammich/dirdiff/internal/stats"
	"github.com/bamsammich/dirdiff/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run())
}

//nolint:gocyclo,revive // cyclomatic,cognitive-complexity: main CLI entry point orchestrates all flag parsing and mode selection
func run() int {
	var (
		ignorePatterns []string
		prunePatterns  []string
		noDefaultPrune bool
		maxDepth       int
		gitDiffDepth   int
		gitDiffDir     string
		colorMode      string
		noLegend       bool
		paranoid       bool
		jobs           int
		showStats      bool
		verbose        bool
		quiet          bool
		showVersion    bool
	)

	rootCmd := &cobra.Command{
		Use:   "dirdiff [flags] <first-tree> <second-tree>",
		Short: "Recursively compare two directory trees and report what differs",
		Args: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				return nil
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(os.Stdout, "dirdiff %s\n", version)
				return nil
			}

			// Configure logging.
			logLevel := slog.LevelWarn
			if verbose {
				logLevel = slog.LevelDebug
			} else if quiet {
				logLevel = slog.LevelError
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			}))
			slog.SetDefault(logger)

			// Load optional config file.
			cfg, err := config.Load()
			if err != nil {
				slog.Warn("failed to load config", "error", err)
			}

			// Apply config defaults for flags not explicitly set on CLI;
			// config pattern lists extend the CLI ones.
			applyConfigDefaults(cmd, cfg.Defaults, &colorMode, &jobs, &showStats, &noDefaultPrune)
			ignorePatterns = append(ignorePatterns, cfg.Defaults.Ignore...)
			prunePatterns = append(prunePatterns, cfg.Defaults.Prune...)

			switch colorMode {
			case "auto":
				// Automatic detection is the library default.
			case "force", "always":
				color.NoColor = false
			case "never", "off":
				color.NoColor = true
			default:
				return fmt.Errorf("invalid --color value %q (use force, always, never, or off)", colorMode)
			}

			if jobs < 1 {
				return fmt.Errorf("invalid --jobs value %d: must be at least 1", jobs)
			}
			if maxDepth < -1 {
				return fmt.Errorf("invalid --max-depth value %d", maxDepth)
			}
			if gitDiffDepth < -1 {
				return fmt.Errorf("invalid --git-diff value %d", gitDiffDepth)
			}

			// Validate patterns before any filesystem access.
			flt, err := filter.New(ignorePatterns, prunePatterns, !noDefaultPrune)
			if err != nil {
				return err
			}

			aRoot, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("first tree: %w", err)
			}
			bRoot, err := filepath.Abs(args[1])
			if err != nil {
				return fmt.Errorf("second tree: %w", err)
			}

			collector := stats.NewCollector()
			events := make(chan event.Event, 256)

			presenter := ui.NewPresenter(ui.Config{
				Writer: os.Stderr,
				Width:  ui.TermWidth(os.Stderr.Fd()),
				IsTTY:  ui.IsTTY(os.Stderr.Fd()),
				Quiet:  quiet,
			})
			var presenterWg sync.WaitGroup
			presenterWg.Add(1)
			go func() {
				defer presenterWg.Done()
				presenter.Run(events)
			}()

			comparer := engine.NewComparer(engine.Config{
				Filter:   flt,
				MaxDepth: maxDepth,
				Paranoid: paranoid,
				Jobs:     jobs,
				Events:   events,
				Stats:    collector,
			})

			slog.Debug("starting comparison",
				"first", aRoot,
				"second", bRoot,
				"jobs", jobs,
				"max_depth", maxDepth,
				"paranoid", paranoid,
			)

			nodes, err := comparer.ComparePair(aRoot, bRoot)
			close(events)
			presenterWg.Wait()
			if err != nil {
				return err
			}

			if len(nodes) == 0 {
				fmt.Fprintln(os.Stdout, "No differences.")
				if showStats {
					fmt.Fprintln(os.Stderr, ui.Summary(collector.Snapshot()))
				}
				return nil
			}

			root := engine.Node{
				Kind:     engine.NodeContentDiffers,
				Name:     "<root>",
				APath:    aRoot,
				BPath:    bRoot,
				Children: nodes,
			}
			ui.NewRenderer(os.Stdout, noLegend).Render(root)

			if showStats {
				fmt.Fprintln(os.Stderr, ui.Summary(collector.Snapshot()))
			}

			if gitDiffDepth >= 0 {
				written, genErr := gitdiff.Generate(root, gitdiff.Config{
					Depth:  gitDiffDepth,
					OutDir: gitDiffDir,
				})
				if written > 0 {
					slog.Info("wrote patch files", "count", written)
				}
				if genErr != nil {
					slog.Error("patch generation failed", "error", genErr)
					return &exitError{code: 1}
				}
			}

			return nil
		},
	}

	// Version flag handled in RunE, but also register the flag.
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")

	rootCmd.Flags().
		StringArrayVar(&ignorePatterns, "ignore", nil, "skip entries matching PATTERN entirely (repeatable)")
	rootCmd.Flags().
		StringArrayVar(&prunePatterns, "prune", nil, "report matching differing directories without descending (repeatable)")
	rootCmd.Flags().
		BoolVar(&noDefaultPrune, "no-default-prune", false, "descend into version control metadata such as .git")
	rootCmd.Flags().
		IntVar(&maxDepth, "max-depth", -1, "treat directories more than N levels below the roots as pruned (-1: unlimited)")
	rootCmd.Flags().
		IntVar(&gitDiffDepth, "git-diff", -1, "write a patch file per differing directory pair at depth N (-1: off)")
	rootCmd.Flags().
		StringVar(&gitDiffDir, "git-diff-dir", "", "directory for generated .patch files (default: current directory)")
	rootCmd.Flags().
		StringVar(&colorMode, "color", "auto", "colorize the listing: force, always, never, or off")
	rootCmd.Flags().BoolVar(&noLegend, "no-legend", false, "omit the legend above the listing")
	rootCmd.Flags().
		BoolVar(&paranoid, "paranoid", false, "always compare full contents, skipping size and inode shortcuts")
	rootCmd.Flags().IntVarP(&jobs, "jobs", "j", 1, "compare up to N directory pairs concurrently")
	rootCmd.Flags().BoolVar(&showStats, "stats", false, "print comparison statistics to stderr")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress the progress indicator and non-error logging")

	rootCmd.AddCommand(newDocsCmd())

	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

// applyConfigDefaults applies config file defaults for flags not explicitly set on the CLI.
func applyConfigDefaults(
	cmd *cobra.Command,
	defaults config.DefaultsConfig,
	colorMode *string,
	jobs *int,
	showStats *bool,
	noDefaultPrune *bool,
) {
	if !cmd.Flags().Changed("color") && defaults.Color != nil {
		*colorMode = *defaults.Color
	}
	if !cmd.Flags().Changed("jobs") && defaults.Jobs != nil {
		*jobs = *defaults.Jobs
	}
	if !cmd.Flags().Changed("stats") && defaults.Stats != nil {
		*showStats = *defaults.Stats
	}
	if !cmd.Flags().Changed("no-default-prune") && defaults.NoDefaultPrune != nil {
		*noDefaultPrune = *defaults.NoDefaultPrune
	}
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}
