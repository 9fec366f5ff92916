package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCopyCmd(a *app) *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "copy [id]",
		Short: "Log an existing entry again with the current time",
		Long: `Copy appends a duplicate of entry id stamped now, keeping its tags.
Use --content to log the copy with different text.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var override *string
			if cmd.Flags().Changed("content") {
				override = &content
			}

			svc, err := a.service()
			if err != nil {
				return err
			}
			newID, err := svc.Copy(cmd.Context(), id, override)
			if err != nil {
				return fmt.Errorf("copying entry %d: %w", id, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Copied entry %d to %d\n", id, newID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&content, "content", "c", "", "Content for the copy")
	return cmd
}
