package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Nomadcxx/artpop/internal/populate"
	"github.com/Nomadcxx/artpop/internal/ui"
)

func (a *app) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report whether art.html matches the portfolio directory",
		Long: `Compare the entries published in the generated block of art.html with the
files currently under the portfolio directory. Nothing is written.

Exits with status 1 when the block is missing or out of date, which makes it
usable as a pre-deploy check.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck()
		},
	}
}

func (a *app) runCheck() error {
	_, runner, logger, err := a.setup()
	if err != nil {
		return err
	}
	defer logger.Close()

	result, err := runner.Check()
	if err != nil {
		return err
	}

	if !result.Stale() {
		ui.SuccessMsg(a.stdout, "%s is up to date (%d files)", ui.Path(result.Document), len(result.Published))
		return nil
	}

	if !result.HasBlock {
		ui.WarningMsg(a.stdout, "%s has no generated block", result.Document)
	}
	for _, e := range result.Missing {
		fmt.Fprintf(a.stdout, "  + %s  %s\n", e, ui.Path(e.Href))
	}
	for _, e := range result.Extra {
		fmt.Fprintf(a.stdout, "  - %s  %s\n", ui.Dim(e.String()), ui.Dim(e.Href))
	}

	return fmt.Errorf("%s: %d missing, %d extra: %w",
		result.Document, len(result.Missing), len(result.Extra), populate.ErrStale)
}
