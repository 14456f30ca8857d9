package minireduce

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// MapSection applies w.Map to every line in the half-open byte range
// [start, end) of the file at path and returns the emitted items in order.
// The boundary check runs between line reads, so the line that begins before
// end is consumed whole even if its terminator sits past it. Each call opens
// its own file handle; concurrent calls over disjoint sections need no
// locking.
func MapSection(path string, start, end int64, w Worker) ([]string, error) {
	if path == "" || w == nil {
		return nil, fmt.Errorf("map section: %w", ErrInvalidArgument)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	if _, err := f.Seek(start, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to %d: %w", start, err)
	}

	var out []string
	emit := func(item string) { out = append(out, item) }

	r := bufio.NewReader(f)
	pos := start
	for pos < end {
		line, err := r.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read line at %d: %w", pos, err)
		}
		if line == "" {
			break
		}

		pos += int64(len(line))
		if mapErr := w.Map(strings.TrimSuffix(line, "\n"), emit); mapErr != nil {
			return nil, fmt.Errorf("map line ending at %d: %w", pos, mapErr)
		}

		if err == io.EOF {
			break
		}
	}

	return out, nil
}
