package minireduce

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeInput(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func TestComputeSections_InvalidArguments(t *testing.T) {
	t.Parallel()

	path := writeInput(t, "a\nb\n")

	tests := []struct {
		name string
		path string
		n    int
	}{
		{"empty path", "", 2},
		{"zero sections", path, 0},
		{"negative sections", path, -3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ComputeSections(tt.path, tt.n)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("ComputeSections(%q, %d) error = %v, want ErrInvalidArgument", tt.path, tt.n, err)
			}
		})
	}
}

func TestComputeSections_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := ComputeSections(filepath.Join(t.TempDir(), "nope.txt"), 2)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ComputeSections on missing file error = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestComputeSections_EmptyFile(t *testing.T) {
	t.Parallel()

	path := writeInput(t, "")

	_, err := ComputeSections(path, 2)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("ComputeSections on empty file error = %v, want ErrEmptyInput", err)
	}
}

func TestComputeSections_Boundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		n       int
		want    []int64
	}{
		{
			// Target 4 lands on a line start, but the partial-line skip
			// still consumes that whole line.
			name:    "four short lines",
			content: "a\nb\na\nc\n",
			n:       2,
			want:    []int64{0, 6, 8},
		},
		{
			name:    "single section spans file",
			content: "a\nb\nc\n",
			n:       1,
			want:    []int64{0, 6},
		},
		{
			name:    "one long line collapses interior boundaries",
			content: "aaaaaaaaaaaaaaaaaaaa\n",
			n:       4,
			want:    []int64{0, 21, 21, 21, 21},
		},
		{
			name:    "no trailing newline",
			content: "aa\nbb",
			n:       2,
			want:    []int64{0, 3, 5},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeInput(t, tt.content)

			got, err := ComputeSections(path, tt.n)
			if err != nil {
				t.Fatalf("ComputeSections: %v", err)
			}

			if len(got) != len(tt.want) {
				t.Fatalf("got %d offsets, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("offsets[%d] = %d, want %d (all: %v)", i, got[i], tt.want[i], got)
				}
			}
		})
	}
}

func TestComputeSections_BoundaryAlignment(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	for i := 0; i < 200; i++ {
		sb.WriteString(strings.Repeat("x", i%17+1))
		sb.WriteByte('\n')
	}
	content := sb.String()
	path := writeInput(t, content)

	offsets, err := ComputeSections(path, 7)
	if err != nil {
		t.Fatalf("ComputeSections: %v", err)
	}

	if offsets[0] != 0 {
		t.Errorf("offsets[0] = %d, want 0", offsets[0])
	}
	if offsets[len(offsets)-1] != int64(len(content)) {
		t.Errorf("last offset = %d, want file size %d", offsets[len(offsets)-1], len(content))
	}

	for i := 1; i < len(offsets)-1; i++ {
		b := offsets[i]
		if b < offsets[i-1] {
			t.Errorf("offsets not non-decreasing at %d: %v", i, offsets)
		}
		if b > 0 && b < int64(len(content)) && content[b-1] != '\n' {
			t.Errorf("boundary %d at byte %d does not follow a newline", i, b)
		}
	}
}

func TestComputeSections_Deterministic(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	for i := 0; i < 100; i++ {
		sb.WriteString("line content here\n")
	}
	path := writeInput(t, sb.String())

	first, err := ComputeSections(path, 5)
	if err != nil {
		t.Fatalf("first ComputeSections: %v", err)
	}
	second, err := ComputeSections(path, 5)
	if err != nil {
		t.Fatalf("second ComputeSections: %v", err)
	}

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("boundaries differ between runs: %v vs %v", first, second)
		}
	}
}
