package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/actionlog/internal/platform"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
		Long: `Configuration is read from config.toml (or .yaml) in the working directory
or in <user config dir>/actionlog/. ACTIONLOG_LOG_FILE overrides log_file,
and --file overrides both.`,
	}

	cmd.AddCommand(newConfigShowCmd(a), newConfigInitCmd(a))
	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.cfg.YAML()
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}

			w := cmd.OutOrStdout()
			if a.cfg.Source != "" {
				fmt.Fprintf(w, "# source: %s\n", a.cfg.Source)
			} else {
				fmt.Fprintln(w, "# source: defaults")
			}
			_, err = w.Write(out)
			return err
		},
	}
}

func newConfigInitCmd(a *app) *cobra.Command {
	var (
		path  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to a config.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				dir, err := platform.ConfigDir()
				if err != nil {
					return err
				}
				path = filepath.Join(dir, "config.toml")
			}

			if err := platform.WriteConfig(path, a.cfg, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Destination file (default <user config dir>/actionlog/config.toml)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
