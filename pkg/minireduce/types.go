package minireduce

// Emitter collects one output string from a map or reduce call.
type Emitter func(string)

// Worker is a map/reduce strategy plugged into the pipeline. Implementations
// must not keep mutable state across calls: Map runs concurrently from one
// goroutine per section, Reduce from one goroutine per bucket.
type Worker interface {
	// Map consumes a single input line and emits zero or more items.
	Map(line string, emit Emitter) error
	// Reduce consumes one bucket of grouped items and emits the result lines.
	Reduce(bucket []string, emit Emitter) error
	Description() string
}
