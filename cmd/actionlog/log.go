package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/actionlog/pkg/core"
)

func newLogCmd(a *app) *cobra.Command {
	var tags string

	cmd := &cobra.Command{
		Use:   "log [content]",
		Short: "Log a new action",
		Long: `Log appends a new entry stamped with the current local time.
Multiple arguments are joined with spaces.`,
		Example: `  actionlog log "Reviewed the deploy plan" -t work,ops`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}

			content := strings.Join(args, " ")
			id, err := svc.Log(cmd.Context(), content, core.ParseTagList(tags))
			if err != nil {
				return fmt.Errorf("logging entry: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged entry %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&tags, "tags", "t", "", "Comma-separated list of tags")
	return cmd
}
