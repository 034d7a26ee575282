package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Nomadcxx/artpop/internal/ui"
)

func (a *app) newListCmd() *cobra.Command {
	var (
		showFiles bool
		showAll   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the years and files that would be published",
		Long: `Scan the portfolio directory and list what the next run would publish.

Examples:
  artpop list            # One row per year with a file count
  artpop list --files    # Every file under its year
  artpop list --all      # Include year directories with no eligible files`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(showFiles, showAll)
		},
	}

	cmd.Flags().BoolVarP(&showFiles, "files", "f", false, "list individual files")
	cmd.Flags().BoolVarP(&showAll, "all", "a", false, "include empty year directories")

	return cmd
}

func (a *app) runList(showFiles, showAll bool) error {
	cfg, runner, logger, err := a.setup()
	if err != nil {
		return err
	}
	defer logger.Close()

	years, err := runner.Scan()
	if err != nil {
		return err
	}

	if len(years) == 0 {
		ui.WarningMsg(a.stdout, "no year directories under %s", cfg.Site.PortfolioDir)
		return nil
	}

	if showFiles {
		ui.Section(a.stdout, "years")
		for _, y := range years {
			if len(y.Files) == 0 && !showAll {
				continue
			}
			fmt.Fprintln(a.stdout, ui.Year(y.Name))
			for _, f := range y.Files {
				fmt.Fprintf(a.stdout, "  %s\n", f.Name)
			}
		}
		return nil
	}

	var rows [][]string
	total := 0
	for _, y := range years {
		if len(y.Files) == 0 && !showAll {
			continue
		}
		rows = append(rows, []string{y.Name, strconv.Itoa(len(y.Files))})
		total += len(y.Files)
	}

	ui.CompactTable(a.stdout, []string{"YEAR", "FILES"}, rows)
	fmt.Fprintln(a.stdout, ui.Dim(fmt.Sprintf("%d files in %d years", total, len(rows))))

	if info, err := a.fs.Stat(cfg.Site.Document); err == nil {
		fmt.Fprintln(a.stdout, ui.Dim(fmt.Sprintf("%s: %s", ui.Path(cfg.Site.Document), ui.FormatBytes(info.Size()))))
	}
	return nil
}
