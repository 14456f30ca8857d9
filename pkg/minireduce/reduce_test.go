package minireduce

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReduceBucket_InvalidArguments(t *testing.T) {
	t.Parallel()

	outPath := filepath.Join(t.TempDir(), "out.txt")

	tests := []struct {
		name    string
		bucket  []string
		worker  Worker
		outPath string
	}{
		{"empty bucket", nil, identityWorker{}, outPath},
		{"nil worker", []string{"a"}, nil, outPath},
		{"empty output path", []string{"a"}, identityWorker{}, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ReduceBucket(tt.bucket, tt.worker, tt.outPath)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("ReduceBucket error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestReduceBucket_WritesOneItemPerLine(t *testing.T) {
	t.Parallel()

	outPath := filepath.Join(t.TempDir(), "output_0.txt")

	if err := ReduceBucket([]string{"a", "a", "c"}, identityWorker{}, outPath); err != nil {
		t.Fatalf("ReduceBucket: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	if string(data) != "a\na\nc\n" {
		t.Errorf("output = %q, want %q", data, "a\na\nc\n")
	}
}

func TestReduceBucket_OverwritesExistingArtifact(t *testing.T) {
	t.Parallel()

	outPath := filepath.Join(t.TempDir(), "output_0.txt")
	if err := os.WriteFile(outPath, []byte("stale content\nmore stale\n"), 0644); err != nil {
		t.Fatalf("seed stale output: %v", err)
	}

	if err := ReduceBucket([]string{"fresh"}, identityWorker{}, outPath); err != nil {
		t.Fatalf("ReduceBucket: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	if string(data) != "fresh\n" {
		t.Errorf("output = %q, want %q", data, "fresh\n")
	}
}

func TestReduceBucket_UnwritableDirectory(t *testing.T) {
	t.Parallel()

	outPath := filepath.Join(t.TempDir(), "missing", "output_0.txt")

	err := ReduceBucket([]string{"a"}, identityWorker{}, outPath)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReduceBucket into missing dir error = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestReduceBucket_ReduceErrorPropagates(t *testing.T) {
	t.Parallel()

	outPath := filepath.Join(t.TempDir(), "output_0.txt")
	boom := errors.New("boom")

	err := ReduceBucket([]string{"ok", "boom"}, failingWorker{trigger: "boom", err: boom}, outPath)
	if !errors.Is(err, boom) {
		t.Errorf("ReduceBucket error = %v, want wrapped reduce error", err)
	}

	// The reduce function failed before the artifact was opened.
	if _, statErr := os.Stat(outPath); !errors.Is(statErr, os.ErrNotExist) {
		t.Errorf("artifact exists after reduce failure, stat err = %v", statErr)
	}
}
