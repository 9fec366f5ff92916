package actionlog_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aretw0/actionlog"
)

// Example_basic demonstrates how to open a log, record an entry and list it back.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "actionlog-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	svc, err := actionlog.New(filepath.Join(tmpDir, "action_log.json"))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	// 1. Log an action
	if _, err := svc.Log(ctx, "Wrote the quarterly report", []string{"work", "writing"}); err != nil {
		log.Fatal(err)
	}
	if _, err := svc.Log(ctx, "Went for a run", []string{"health"}); err != nil {
		log.Fatal(err)
	}

	// 2. List entries tagged "work"
	filter, err := actionlog.NewFilter("", nil, []string{"work"}, "")
	if err != nil {
		log.Fatal(err)
	}
	items, err := svc.List(ctx, filter)
	if err != nil {
		log.Fatal(err)
	}

	for _, it := range items {
		fmt.Printf("%d: %s\n", it.ID, it.Entry.Content)
	}
	// Output:
	// 1: Wrote the quarterly report
}

// Example_archive shows entries moving to the archive file.
func Example_archive() {
	tmpDir, err := os.MkdirTemp("", "actionlog-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	svc, err := actionlog.New(filepath.Join(tmpDir, "action_log.json"))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	svc.Log(ctx, "today", nil)

	// Everything is younger than 30 days.
	n, err := svc.Archive(ctx, 30)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("archived %d, kept %d\n", n, svc.Count(ctx))
	// Output:
	// archived 0, kept 1
}
