package core

import "context"

// Repository defines the contract for the record store.
// Adhering to this interface keeps the core independent of the storage format.
//
// Every method addresses entries by positional ID (see Item). Implementations
// hold no state between calls: each operation reads the backing store, computes
// and writes back in full.
type Repository interface {
	// Append stores a new entry stamped with the current local time and returns its ID.
	// The backing store is created if missing.
	Append(ctx context.Context, content string, tags []string) (int, error)

	// Scan returns, in store order, every entry accepted by f.
	// IDs reflect the position in the store, not in the filtered result.
	Scan(ctx context.Context, f Filter) ([]Item, error)

	// Update replaces the content of entry id. A nil tags slice leaves the tags
	// untouched; a non-nil slice (even empty) replaces them.
	Update(ctx context.Context, id int, content string, tags []string) error

	// Delete removes the given IDs, validated against the count before deletion.
	// Invalid IDs are skipped and reported in the result.
	Delete(ctx context.Context, ids []int) (DeleteResult, error)

	// Copy appends a new entry seeded from entry id, keeping its tags.
	// A nil content keeps the original content. It returns the new ID.
	Copy(ctx context.Context, id int, content *string) (int, error)

	// Archive moves entries strictly older than cutoffDays to the archive and
	// returns how many were moved.
	Archive(ctx context.Context, cutoffDays int) (int, error)

	// Count returns the number of lines in the store, or 0 when it does not exist.
	Count(ctx context.Context) int
}

// Watchable defines an interface for repositories that can stream changes.
type Watchable interface {
	// Watch emits an Event for each change until ctx is cancelled.
	Watch(ctx context.Context) (<-chan Event, error)
}

// LenientScanner is implemented by repositories that can read past lines that
// do not decode. Reports that tolerate partial data use it when available.
type LenientScanner interface {
	// ScanDecodable returns every decodable entry in store order, with positional IDs.
	ScanDecodable(ctx context.Context) ([]Item, error)
}
