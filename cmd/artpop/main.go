package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Nomadcxx/artpop/internal/config"
	"github.com/Nomadcxx/artpop/internal/logging"
	"github.com/Nomadcxx/artpop/internal/patch"
	"github.com/Nomadcxx/artpop/internal/populate"
	"github.com/Nomadcxx/artpop/internal/ui"
)

var version = "dev" // Set by build flags: -ldflags="-X main.version=1.0.0"

// app carries the state shared by all subcommands
type app struct {
	fs      afero.Fs
	stdout  io.Writer
	stderr  io.Writer
	cfgFile string
	verbose bool
	dryRun  bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and maps failures to the process exit status
func run(args []string, stdout, stderr io.Writer) int {
	a := &app{
		fs:     afero.NewOsFs(),
		stdout: stdout,
		stderr: stderr,
	}

	rootCmd := a.newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "%s %v\n", ui.Error("Error:"), err)
		return 1
	}
	return 0
}

func (a *app) newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "artpop",
		Short: "Regenerate the portfolio listing in art.html",
		Long: `artpop scans images/portfolio/<YEAR>/ for image files and injects an HTML
listing per year into art.html.

The listing is placed between BEGIN/END marker comments. On the first run the
block is inserted right after the first <main> tag; later runs replace the
block in place. The previous art.html is kept as art.html.bak.

Examples:
  artpop              # Update art.html
  artpop --dry-run    # Show what would happen without writing
  artpop check        # Exit non-zero if art.html is out of date
  artpop list         # Show the years and files that would be published`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPopulate()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./artpop.toml if present)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&a.dryRun, "dry-run", "n", false, "preview changes without writing files")

	rootCmd.AddCommand(a.newCheckCmd())
	rootCmd.AddCommand(a.newListCmd())
	rootCmd.AddCommand(a.newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// setup loads configuration and builds the logger and runner
func (a *app) setup() (*config.Config, *populate.Runner, *logging.Logger, error) {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return nil, nil, nil, err
	}

	logCfg := cfg.Logging
	logCfg.File, err = cfg.LogPath()
	if err != nil {
		return nil, nil, nil, err
	}

	logger, err := logging.New(logCfg, a.stderr)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	if a.verbose {
		logger.SetLevel(logging.LevelDebug)
	}

	// Validate already accepted the mode
	mode, _ := cfg.Output.ParseFileMode()

	runner := populate.New(a.fs, populate.Options{
		Document:     cfg.Site.Document,
		PortfolioDir: cfg.Site.PortfolioDir,
		HrefPrefix:   cfg.Site.HrefPrefix,
		BackupSuffix: cfg.Output.BackupSuffix,
		Extensions:   cfg.Site.Extensions,
		Markers:      patch.Markers{Begin: cfg.Markers.Begin, End: cfg.Markers.End},
		FileMode:     mode,
		DryRun:       a.dryRun,
	}, logger)

	return cfg, runner, logger, nil
}

func (a *app) runPopulate() error {
	_, runner, logger, err := a.setup()
	if err != nil {
		return err
	}
	defer logger.Close()

	result, err := runner.Run()
	if err != nil {
		return err
	}

	fmt.Fprintln(a.stdout, result.StatusLine())
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "artpop %s\n", version)
		},
	}
}
