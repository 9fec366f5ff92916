package fs

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestRewriteLines(t *testing.T) {
	t.Run("Creates New File", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "log.json")

		if err := rewriteLines(filename, [][]byte{[]byte("one"), []byte("two")}); err != nil {
			t.Fatalf("rewriteLines failed: %v", err)
		}

		got, err := os.ReadFile(filename)
		if err != nil {
			t.Fatalf("Failed to read file: %v", err)
		}
		if string(got) != "one\ntwo\n" {
			t.Errorf("Expected content %q, got %q", "one\ntwo\n", string(got))
		}
	})

	t.Run("Overwrites Existing File", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "log.json")
		if err := os.WriteFile(filename, []byte("a\nb\nc\n"), 0644); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}

		if err := rewriteLines(filename, [][]byte{[]byte("b")}); err != nil {
			t.Fatalf("rewriteLines failed: %v", err)
		}

		got, _ := os.ReadFile(filename)
		if string(got) != "b\n" {
			t.Errorf("Expected content %q, got %q", "b\n", string(got))
		}
	})

	t.Run("Writes Empty File For No Lines", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "log.json")
		os.WriteFile(filename, []byte("a\n"), 0644)

		if err := rewriteLines(filename, nil); err != nil {
			t.Fatalf("rewriteLines failed: %v", err)
		}

		info, err := os.Stat(filename)
		if err != nil {
			t.Fatal(err)
		}
		if info.Size() != 0 {
			t.Errorf("Expected empty file, got %d bytes", info.Size())
		}
	})

	t.Run("Keeps Permissions", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("unix permissions")
		}
		filename := filepath.Join(t.TempDir(), "log.json")
		os.WriteFile(filename, []byte("a\n"), 0600)

		if err := rewriteLines(filename, [][]byte{[]byte("b")}); err != nil {
			t.Fatalf("rewriteLines failed: %v", err)
		}

		info, err := os.Stat(filename)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("Expected mode 0600, got %v", info.Mode().Perm())
		}
	})

	t.Run("Leaves No Temp Files", func(t *testing.T) {
		dir := t.TempDir()
		filename := filepath.Join(dir, "log.json")
		rewriteLines(filename, [][]byte{[]byte("x")})

		entries, _ := os.ReadDir(dir)
		if len(entries) != 1 {
			t.Errorf("Expected only the log file, found %d entries", len(entries))
		}
	})

	t.Run("Fails if Directory Missing", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "missing_folder", "log.json")

		if err := rewriteLines(filename, [][]byte{[]byte("fail")}); err == nil {
			t.Error("Expected error when directory is missing, got nil")
		}
	})
}

func TestAppendLines(t *testing.T) {
	t.Run("Creates File And Parents", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "nested", "deeper", "log.json")

		if err := appendLines(filename, [][]byte{[]byte("one")}); err != nil {
			t.Fatalf("appendLines failed: %v", err)
		}

		got, _ := os.ReadFile(filename)
		if string(got) != "one\n" {
			t.Errorf("Expected %q, got %q", "one\n", string(got))
		}
	})

	t.Run("Appends To Existing", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "log.json")
		os.WriteFile(filename, []byte("one\n"), 0644)

		if err := appendLines(filename, [][]byte{[]byte("two"), []byte("three")}); err != nil {
			t.Fatalf("appendLines failed: %v", err)
		}

		got, _ := os.ReadFile(filename)
		if string(got) != "one\ntwo\nthree\n" {
			t.Errorf("Unexpected content %q", string(got))
		}
	})

	t.Run("Repairs Missing Trailing Newline", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "log.json")
		os.WriteFile(filename, []byte("one"), 0644)

		if err := appendLines(filename, [][]byte{[]byte("two")}); err != nil {
			t.Fatalf("appendLines failed: %v", err)
		}

		got, _ := os.ReadFile(filename)
		if string(got) != "one\ntwo\n" {
			t.Errorf("Unexpected content %q", string(got))
		}
	})
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"a\n", 1},
		{"a", 1},
		{"a\nb\n", 2},
		{"a\n\nb\n", 3},
		{"\n", 1},
	}
	for _, tc := range tests {
		if got := len(splitLines([]byte(tc.in))); got != tc.want {
			t.Errorf("splitLines(%q): expected %d lines, got %d", tc.in, tc.want, got)
		}
	}
}
