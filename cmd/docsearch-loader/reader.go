// Streaming readers for document dumps.
// NDJSON files are scanned line by line, parquet files are read row group
// by row group so large dumps never load fully into memory.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// maxLineBytes bounds a single NDJSON line. Summaries are capped upstream,
// so anything past this is a corrupt dump.
const maxLineBytes = 1 << 20

// readCallback is invoked per record with its 0-based sequence number.
// Return false to stop reading.
type readCallback[T any] func(rec *T, seq int) bool

// detectFormat resolves the input format from the override flag or the
// file extension.
func detectFormat(path, override string) (string, error) {
	if override != "" {
		if override != "ndjson" && override != "parquet" {
			return "", fmt.Errorf("unknown format %q (want ndjson or parquet)", override)
		}
		return override, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return "parquet", nil
	case ".ndjson", ".jsonl", ".json":
		return "ndjson", nil
	}
	return "", fmt.Errorf("cannot detect format of %s (use -format)", path)
}

// readRecords streams records of type T from path, honoring maxRows
// (0 = unlimited).
func readRecords[T any](path, format string, maxRows int, cb readCallback[T]) error {
	f, err := detectFormat(path, format)
	if err != nil {
		return err
	}
	if f == "parquet" {
		return readParquet(path, maxRows, cb)
	}
	return readNDJSON(path, maxRows, cb)
}

func readNDJSON[T any](path string, maxRows int, cb readCallback[T]) error {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	seq := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec T
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return fmt.Errorf("line %d: %w", seq+1, err)
		}
		if !cb(&rec, seq) {
			return nil
		}
		seq++
		if maxRows > 0 && seq >= maxRows {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	return nil
}

func readParquet[T any](path string, maxRows int, cb readCallback[T]) error {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := parquet.NewGenericReader[T](f)
	defer func() { _ = reader.Close() }()

	buf := make([]T, 1000)
	seq := 0
	for {
		n, readErr := reader.Read(buf)
		for i := 0; i < n; i++ {
			if !cb(&buf[i], seq) {
				return nil
			}
			seq++
			if maxRows > 0 && seq >= maxRows {
				return nil
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return fmt.Errorf("read rows: %w", readErr)
		}
	}
}
