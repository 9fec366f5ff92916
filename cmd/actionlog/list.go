package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/actionlog/pkg/core"
	"github.com/aretw0/actionlog/pkg/render"
)

func newListCmd(a *app) *cobra.Command {
	var (
		date     string
		rangeArg string
		tags     string
		search   string
		output   string
		markdown bool
		raw      bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List log entries",
		Long: `List prints the entries accepted by every given filter, in log order.
IDs shown are line numbers and are the ones edit, delete and copy expect.`,
		Example: `  actionlog list --range 7 --tags work
  actionlog list --date 2024-03-01 --output markdown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rangeDays, err := core.ParseRange(rangeArg)
			if err != nil {
				return err
			}
			filter, err := core.NewFilter(date, rangeDays, core.ParseTagList(tags), search)
			if err != nil {
				return err
			}

			format, err := render.ParseFormat(output)
			if err != nil {
				return err
			}
			if markdown {
				format = render.FormatMarkdown
			}

			svc, err := a.service()
			if err != nil {
				return err
			}
			items, err := svc.List(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("listing entries: %w", err)
			}

			out := cmd.OutOrStdout()
			if format == render.FormatMarkdown && !raw {
				if f, ok := terminal(out); ok {
					return writeGlamour(f, items)
				}
			}
			return render.Items(out, format, items)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&date, "date", "d", "", "Filter logs by date (YYYY-MM-DD)")
	flags.StringVarP(&rangeArg, "range", "r", "", "Filter logs by age in days")
	flags.StringVarP(&tags, "tags", "t", "", "Filter logs by tags (comma-separated, all must match)")
	flags.StringVarP(&search, "search", "s", "", "Case-insensitive keyword in content or tags")
	flags.StringVarP(&output, "output", "o", string(render.FormatTable), "Output format: table, plain, markdown, json, yaml")
	flags.BoolVarP(&markdown, "markdown", "m", false, "Shorthand for --output markdown")
	flags.BoolVar(&raw, "raw", false, "Print markdown source even on a terminal")
	return cmd
}

// terminal returns w as a file when it is an interactive terminal.
func terminal(w io.Writer) (*os.File, bool) {
	f, ok := w.(*os.File)
	if !ok || !render.IsTerminal(f) {
		return nil, false
	}
	return f, true
}

func writeGlamour(f *os.File, items []core.Item) error {
	var buf bytes.Buffer
	if err := render.Markdown(&buf, items); err != nil {
		return err
	}
	out, err := render.RenderMarkdown(buf.String(), render.TerminalWidth(f, 80))
	if err != nil {
		slog.Debug("markdown rendering failed, printing source", "error", err)
	}
	_, err = f.WriteString(out)
	return err
}
