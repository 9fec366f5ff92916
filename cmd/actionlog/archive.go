package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/actionlog/pkg/adapters/fs"
)

const defaultArchiveDays = 30

func newArchiveCmd(a *app) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Move old entries to the archive file",
		Long: `Archive moves entries older than --days days to the archive file next to
the log. Lines that cannot be decoded are dropped and reported in the logs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			n, err := svc.Archive(cmd.Context(), days)
			if err != nil {
				return fmt.Errorf("archiving entries: %w", err)
			}

			dest := ""
			if repo, ok := svc.Repository().(*fs.Repository); ok {
				dest = " to " + repo.ArchivePath
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived %d %s%s\n", n, plural(n, "entry", "entries"), dest)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", defaultArchiveDays, "Archive entries older than this many days")
	return cmd
}
