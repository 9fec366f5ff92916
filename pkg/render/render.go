// Package render formats log entries for people and for other programs.
//
// Every renderer takes items in log order and writes them unchanged in that
// order. Tags are shown sorted by length then lexically; exports keep the
// stored order.
package render

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/actionlog/pkg/core"
)

// Format selects a renderer.
type Format string

const (
	FormatTable    Format = "table"
	FormatPlain    Format = "plain"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// Formats lists the accepted format names.
var Formats = []Format{FormatTable, FormatPlain, FormatMarkdown, FormatJSON, FormatYAML}

// ParseFormat resolves a format name. "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatPlain, FormatMarkdown, FormatJSON, FormatYAML:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown output format %q (want one of %v)", s, Formats)
}

const (
	timeLayout = "15:04:05"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	idStyle     = cellStyle.Foreground(lipgloss.Color("245"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Items writes items in format f.
func Items(w io.Writer, f Format, items []core.Item) error {
	switch f {
	case FormatTable:
		_, err := io.WriteString(w, Table(items)+"\n")
		return err
	case FormatPlain:
		return Plain(w, items)
	case FormatMarkdown:
		return Markdown(w, items)
	case FormatJSON:
		return JSON(w, items)
	case FormatYAML:
		return YAML(w, items)
	}
	return fmt.Errorf("unknown output format %q", f)
}

// Table renders items as a bordered terminal table.
func Table(items []core.Item) string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			strconv.Itoa(it.ID),
			it.Entry.Timestamp.Format(core.DateLayout),
			it.Entry.Timestamp.Format(timeLayout),
			displayTags(it.Entry.Tags),
			it.Entry.Content,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return idStyle
			default:
				return cellStyle
			}
		}).
		Headers("ID", "Date", "Time", "Tags", "Content").
		Rows(rows...)

	return t.String()
}

// Plain writes one tab-separated header line per entry followed by its content.
func Plain(w io.Writer, items []core.Item) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "ID\tDate\t\tTime\t\tTags")
	fmt.Fprintln(bw, "--\t----\t\t----\t\t----")
	for _, it := range items {
		fmt.Fprintf(bw, "%d\t%s\t%s\t%s\nContent> %s\n",
			it.ID,
			it.Entry.Timestamp.Format(core.DateLayout),
			it.Entry.Timestamp.Format(timeLayout),
			displayTags(it.Entry.Tags),
			it.Entry.Content,
		)
	}
	return bw.Flush()
}

// Markdown writes items as a GitHub-flavored markdown table.
// Pipes in content are escaped and newlines become <br>.
func Markdown(w io.Writer, items []core.Item) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "| ID | Date | Time | Tags | Content |")
	fmt.Fprintln(bw, "|---:|------|------|------|---------|")
	for _, it := range items {
		fmt.Fprintf(bw, "| %d | %s | %s | %s | %s |\n",
			it.ID,
			it.Entry.Timestamp.Format(core.DateLayout),
			it.Entry.Timestamp.Format(timeLayout),
			escapeCell(displayTags(it.Entry.Tags)),
			escapeCell(it.Entry.Content),
		)
	}
	return bw.Flush()
}

// record is the export shape shared by JSON and YAML.
type record struct {
	ID        int      `json:"id" yaml:"id"`
	Timestamp string   `json:"timestamp" yaml:"timestamp"`
	Content   string   `json:"content" yaml:"content"`
	Tags      []string `json:"tags" yaml:"tags"`
}

func toRecords(items []core.Item) []record {
	out := make([]record, 0, len(items))
	for _, it := range items {
		tags := it.Entry.Tags
		if tags == nil {
			tags = []string{}
		}
		out = append(out, record{
			ID:        it.ID,
			Timestamp: it.Entry.Timestamp.Format(time.RFC3339),
			Content:   it.Entry.Content,
			Tags:      tags,
		})
	}
	return out
}

// JSON writes items as an indented JSON array.
func JSON(w io.Writer, items []core.Item) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(toRecords(items))
}

// YAML writes items as a YAML sequence.
func YAML(w io.Writer, items []core.Item) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toRecords(items)); err != nil {
		return err
	}
	return enc.Close()
}

// TagCounts writes a two-column tag usage report.
func TagCounts(w io.Writer, counts []core.TagCount) error {
	bw := bufio.NewWriter(w)
	if len(counts) == 0 {
		fmt.Fprintln(bw, "No tags found.")
		return bw.Flush()
	}
	fmt.Fprintf(bw, "%-20s %s\n", "TAG", "COUNT")
	fmt.Fprintf(bw, "%-20s %s\n", "---", "-----")
	for _, c := range counts {
		fmt.Fprintf(bw, "%-20s %d\n", c.Tag, c.Count)
	}
	return bw.Flush()
}

func displayTags(tags []string) string {
	return strings.Join(core.SortTags(tags), ", ")
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", "<br>", "\n", "<br>")

func escapeCell(s string) string {
	return cellEscaper.Replace(s)
}
