package identity

import "pkg.jsn.cam/minireduce/pkg/minireduce"

// IdentityWorker passes lines through both phases untouched: Map emits the
// line as its own key and Reduce replays the bucket. Running the pipeline
// with it partitions the input's lines across the output files without
// changing any of them.
type IdentityWorker struct{}

func (w IdentityWorker) Map(line string, emit minireduce.Emitter) error {
	emit(line)
	return nil
}

func (w IdentityWorker) Reduce(bucket []string, emit minireduce.Emitter) error {
	for _, item := range bucket {
		emit(item)
	}
	return nil
}

func (w IdentityWorker) Description() string {
	return "passes input lines through unchanged"
}
