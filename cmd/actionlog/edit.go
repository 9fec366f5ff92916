package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/actionlog/pkg/core"
)

func newEditCmd(a *app) *cobra.Command {
	var tags string

	cmd := &cobra.Command{
		Use:   "edit [id] [content]",
		Short: "Replace the content of an entry",
		Long: `Edit rewrites the content of entry id, keeping its timestamp.
Tags are left alone unless --tags is given; --tags "" removes them.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var newTags []string
			if cmd.Flags().Changed("tags") {
				newTags = core.ParseTagList(tags)
			}

			svc, err := a.service()
			if err != nil {
				return err
			}
			content := strings.Join(args[1:], " ")
			if err := svc.Edit(cmd.Context(), id, content, newTags); err != nil {
				return fmt.Errorf("editing entry %d: %w", id, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated entry %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&tags, "tags", "t", "", "Replace tags (comma-separated)")
	return cmd
}

// parseID converts a positional ID argument.
func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w %q: not a number", core.ErrInvalidID, s)
	}
	return id, nil
}
