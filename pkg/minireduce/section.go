package minireduce

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// ComputeSections splits the file at path into n contiguous byte ranges
// aligned to line boundaries. It returns n+1 offsets where offsets[i] is the
// start of section i and offsets[n] is the file size. Interior boundaries are
// the equal-width targets i*(size/n) advanced past the next newline, so no
// line straddles two sections. Boundaries are non-decreasing; when a line is
// longer than the section width, adjacent boundaries coincide and the section
// between them is empty.
func ComputeSections(path string, n int) ([]int64, error) {
	if path == "" || n <= 0 {
		return nil, fmt.Errorf("compute sections: %w", ErrInvalidArgument)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}

	size := info.Size()
	if size == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyInput)
	}

	offsets := make([]int64, n+1)
	offsets[0] = 0
	offsets[n] = size

	width := size / int64(n)
	for i := 1; i < n; i++ {
		boundary, err := nextLineStart(f, width*int64(i), size)
		if err != nil {
			return nil, fmt.Errorf("align section boundary %d: %w", i, err)
		}
		offsets[i] = boundary
	}

	return offsets, nil
}

// nextLineStart returns the offset of the first line start at or after target.
// A target past the final newline snaps to the file size.
func nextLineStart(f *os.File, target, size int64) (int64, error) {
	if _, err := f.Seek(target, io.SeekStart); err != nil {
		return 0, err
	}

	rest, err := bufio.NewReader(f).ReadBytes('\n')
	if err == io.EOF {
		return size, nil
	}
	if err != nil {
		return 0, err
	}

	return target + int64(len(rest)), nil
}
