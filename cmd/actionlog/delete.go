package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [id...]",
		Short: "Delete entries by ID",
		Long: `Delete removes the given entries in one rewrite.
IDs refer to the listing before the delete; IDs that do not exist are skipped.`,
		Example: `  actionlog delete 3 7 8`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int, 0, len(args))
			for _, arg := range args {
				id, err := parseID(arg)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			svc, err := a.service()
			if err != nil {
				return err
			}
			res, err := svc.Delete(cmd.Context(), ids)
			if err != nil {
				return fmt.Errorf("deleting entries: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, id := range res.Skipped {
				fmt.Fprintf(out, "Skipping invalid ID %d\n", id)
			}
			fmt.Fprintf(out, "Deleted %d %s\n", res.Deleted, plural(res.Deleted, "entry", "entries"))
			return nil
		},
	}
	return cmd
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
