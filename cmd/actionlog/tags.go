package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/actionlog/pkg/render"
)

func newTagsCmd(a *app) *cobra.Command {
	var match string

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Show how often each tag is used",
		Long: `Tags counts every tag across the log, most used first.
--match keeps only tags matching a glob such as "work*" or "proj/**".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			counts, err := svc.TagCounts(cmd.Context(), match)
			if err != nil {
				return fmt.Errorf("counting tags: %w", err)
			}
			return render.TagCounts(cmd.OutOrStdout(), counts)
		},
	}

	cmd.Flags().StringVar(&match, "match", "", "Only report tags matching this glob")
	return cmd
}

func newCountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), svc.Count(cmd.Context()))
			return nil
		},
	}
}
