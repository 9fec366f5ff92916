// Package core holds the domain of the action log: entries, filters, the
// repository port and the service that callers talk to.
package core

import "time"

// Entry is one timestamped log record.
// Tags behave as a set: duplicates are collapsed on write and order carries no meaning.
type Entry struct {
	Timestamp time.Time
	Content   string
	Tags      []string
}

// HasTag reports whether tag is present in the entry, using exact comparison.
func (e Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Item pairs an entry with its positional ID.
//
// IDs are the 1-based line number of the entry in the log file at the time it
// was read. They are not stable: any delete or archive renumbers every entry
// that follows the removed lines. Treat an ID as valid only until the next
// mutating operation.
type Item struct {
	ID    int
	Entry Entry
}

// DeleteResult reports the outcome of a batch delete.
type DeleteResult struct {
	// Deleted is the number of lines actually removed.
	Deleted int
	// Skipped lists the requested IDs that did not address a line, in ascending order.
	Skipped []int
}

// EventType represents the kind of change observed on the log file.
type EventType string

const (
	// EventAppend is emitted once per line added at the end of the log.
	EventAppend EventType = "APPEND"
	// EventRewrite is emitted when the file was rewritten (edit, delete, archive)
	// and previously seen IDs may no longer be valid.
	EventRewrite EventType = "REWRITE"
)

// Event represents a change in the log file.
type Event struct {
	Type EventType
	// ID is the positional ID of the appended entry (EventAppend only).
	ID int
	// Entry is the appended entry (EventAppend only).
	Entry Entry
	// Count is the number of lines in the file after the change.
	Count int
}

func (e Event) String() string {
	return string(e.Type)
}
