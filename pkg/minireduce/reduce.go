package minireduce

import (
	"bufio"
	"fmt"
	"os"
)

// ReduceBucket applies w.Reduce to one bucket and writes the emitted results
// to outPath, one item per line, in emission order. An existing file at
// outPath is truncated first.
func ReduceBucket(bucket []string, w Worker, outPath string) error {
	if len(bucket) == 0 || w == nil || outPath == "" {
		return fmt.Errorf("reduce bucket: %w", ErrInvalidArgument)
	}

	var results []string
	emit := func(item string) { results = append(results, item) }
	if err := w.Reduce(bucket, emit); err != nil {
		return fmt.Errorf("reduce: %w", err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	bw := bufio.NewWriter(f)
	for _, item := range results {
		if _, err := bw.WriteString(item + "\n"); err != nil {
			f.Close()
			return fmt.Errorf("write output: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush output: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	return nil
}
