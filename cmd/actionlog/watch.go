package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/actionlog/pkg/adapters/lifecycle"
	"github.com/aretw0/actionlog/pkg/core"
)

func newWatchCmd(a *app) *cobra.Command {
	var only string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print entries as they are logged",
		Long: `Watch follows the log file and prints each appended entry.
Rewrites from edit, delete or archive are reported since they renumber entries.
Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := parseEventTypes(only)
			if err != nil {
				return err
			}

			svc, err := a.service()
			if err != nil {
				return err
			}
			events, err := svc.Watch(cmd.Context())
			if err != nil {
				return fmt.Errorf("watching log: %w", err)
			}

			src := lifecycle.NewSource(events, types...)
			if err := src.Start(cmd.Context()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for e := range src.Events() {
				ev, ok := e.(core.Event)
				if !ok {
					continue
				}
				switch ev.Type {
				case core.EventAppend:
					fmt.Fprintf(out, "%d\t%s\t%s\t%s\n",
						ev.ID,
						ev.Entry.Timestamp.Format("2006-01-02 15:04:05"),
						strings.Join(core.SortTags(ev.Entry.Tags), ", "),
						ev.Entry.Content,
					)
				case core.EventRewrite:
					fmt.Fprintf(out, "-- log rewritten, %d %s\n", ev.Count, plural(ev.Count, "entry", "entries"))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&only, "only", "", "Only report these event types (append, rewrite)")
	return cmd
}

func parseEventTypes(s string) ([]core.EventType, error) {
	var types []core.EventType
	for _, name := range core.ParseTagList(s) {
		switch t := core.EventType(strings.ToUpper(name)); t {
		case core.EventAppend, core.EventRewrite:
			types = append(types, t)
		default:
			return nil, fmt.Errorf("unknown event type %q (want append or rewrite)", name)
		}
	}
	return types, nil
}
