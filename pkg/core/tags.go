package core

import (
	"sort"
	"strings"
)

// NormalizeTags removes duplicate tags, keeping the first occurrence of each.
// Tags are case-sensitive. The result is never nil so that callers can tell
// "no tags" apart from "tags not supplied".
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// SortTags returns a copy of tags ordered by length, then lexically.
// It is the display order used by the renderers.
func SortTags(tags []string) []string {
	out := append([]string(nil), tags...)
	sort.SliceStable(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) < len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}

// ParseTagList splits a comma-separated tag argument, trimming blanks and
// dropping empty items.
func ParseTagList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// TagCount is the number of entries carrying a tag.
type TagCount struct {
	Tag   string
	Count int
}

// CountTags tallies tag usage over items, sorted by count descending and then
// by tag name ascending.
func CountTags(items []Item) []TagCount {
	counts := make(map[string]int)
	for _, it := range items {
		for _, t := range it.Entry.Tags {
			counts[t]++
		}
	}

	out := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}
