package fs

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// TempFilePrefix is the prefix used for temporary rewrite files.
	TempFilePrefix = ".actionlog-tmp-"

	defaultFilePerm os.FileMode = 0644
	defaultDirPerm  os.FileMode = 0755
)

// rewriteLines replaces filename with the given lines, each terminated by a
// newline. The data goes to a temp file in the same directory which is then
// renamed over the target, so readers see either the old or the new file.
// The target's permissions are kept when it already exists.
func rewriteLines(filename string, lines [][]byte) error {
	perm := defaultFilePerm
	if info, err := os.Stat(filename); err == nil {
		perm = info.Mode().Perm()
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(filename), TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name()) // no-op once renamed

	w := bufio.NewWriter(tmpFile)
	for _, line := range lines {
		if _, err := w.Write(line); err != nil {
			tmpFile.Close()
			return fmt.Errorf("failed to write to temp file: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			tmpFile.Close()
			return fmt.Errorf("failed to write to temp file: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to flush temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}

	return nil
}

// appendLines adds lines to the end of filename, creating it and its parent
// directories when missing. If the file does not end with a newline one is
// written first so every line stays independently decodable.
func appendLines(filename string, lines [][]byte) error {
	if err := os.MkdirAll(filepath.Dir(filename), defaultDirPerm); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_RDWR, defaultFilePerm)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	needsNewline, err := lacksTrailingNewline(f)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	if needsNewline {
		w.WriteByte('\n')
	}
	for _, line := range lines {
		w.Write(line)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func lacksTrailingNewline(f *os.File) (bool, error) {
	info, err := f.Stat()
	if err != nil {
		return false, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.Size() == 0 {
		return false, nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return false, fmt.Errorf("failed to read file tail: %w", err)
	}
	return last[0] != '\n', nil
}
