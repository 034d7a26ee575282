package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Nomadcxx/artpop/internal/config"
)

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect artpop configuration",
		Long: `Commands for inspecting artpop configuration.

artpop runs with built-in defaults. An artpop.toml in the working directory,
or a file passed with --config, overrides them.

Examples:
  artpop config show    # Display the effective configuration
  artpop config path    # Show the config file location`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.cfgFile)
			if err != nil {
				return err
			}
			fmt.Fprint(a.stdout, cfg.ToTOML())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ConfigPath(a.cfgFile)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, path)
			return nil
		},
	})

	return cmd
}
