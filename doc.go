// Package actionlog is the Composition Root for the actionlog application.
//
// It connects the core business logic (Domain Layer) with the infrastructure adapters
// (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// actionlog is a personal journal of short timestamped actions. The whole log is a
// single line-oriented file, one JSON object per line, readable and greppable without
// the tool. An entry is addressed by its 1-based line number, which shifts whenever
// earlier lines are deleted or archived.
//
// Features:
//
//   - **Hexagonal Architecture**: Core domain is isolated from persistence details.
//   - **Atomic Rewrites**: Edits, deletes and archival replace the file via rename.
//   - **Filtering**: Date, day range, tags and case-insensitive keyword, combined.
//   - **Archival**: Old entries move to a sibling archive file.
//   - **Watching**: Appended entries are streamed as they land on disk.
//
// Usage:
//
//	svc, err := actionlog.New("./action_log.json",
//		actionlog.WithLogger(logger),
//	)
//
//	id, err := svc.Log(ctx, "fixed the build", []string{"work"})
package actionlog
