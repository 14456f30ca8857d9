package minireduce

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a pipeline run.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSectioning Status = "sectioning"
	StatusMapping    Status = "mapping"
	StatusShuffling  Status = "shuffling"
	StatusReducing   Status = "reducing"
	StatusDone       Status = "done"
	StatusFailed     Status = "failed"
)

// Config holds pipeline configuration.
type Config struct {
	InputPath string
	Mappers   int
	Reducers  int
	OutputDir string // defaults to the current directory
	Worker    Worker

	// OnProgress, when set, is called once per finished map or reduce task.
	// Calls are serialized but may come from task goroutines.
	OnProgress func(done, total int)
}

// StageRecord captures the duration of one completed pipeline stage.
type StageRecord struct {
	Name     Status        `json:"name"`
	Duration time.Duration `json:"duration"`
}

// Report summarizes one pipeline run. It is complete once Run returns.
type Report struct {
	RunID       string        `json:"run_id"`
	InputPath   string        `json:"input_path"`
	InputSize   int64         `json:"input_size"`
	Mappers     int           `json:"mappers"`
	Reducers    int           `json:"reducers"`
	Worker      string        `json:"worker"`
	Status      Status        `json:"status"`
	Error       string        `json:"error,omitempty"`
	StartedAt   time.Time     `json:"started_at"`
	CompletedAt time.Time     `json:"completed_at"`
	Stages      []StageRecord `json:"stages"`
	MapEmits    []int         `json:"map_emits"`
	BucketSizes []int         `json:"bucket_sizes"`
}

// Pipeline drives one run: sectioning, parallel mapping, shuffling, parallel
// reducing. A Pipeline is single-use; create a new one per run.
type Pipeline struct {
	cfg   Config
	runID string

	mu         sync.Mutex
	status     Status
	stageStart time.Time
	report     Report

	progressMu sync.Mutex
	done       int
}

// New validates cfg and prepares a pipeline run.
func New(cfg Config) (*Pipeline, error) {
	if cfg.InputPath == "" || cfg.Mappers <= 0 || cfg.Reducers <= 0 || cfg.Worker == nil {
		return nil, fmt.Errorf("pipeline config: %w", ErrInvalidArgument)
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}

	p := &Pipeline{
		cfg:    cfg,
		runID:  uuid.New().String(),
		status: StatusIdle,
	}
	p.report = Report{
		RunID:     p.runID,
		InputPath: cfg.InputPath,
		Mappers:   cfg.Mappers,
		Reducers:  cfg.Reducers,
		Worker:    cfg.Worker.Description(),
		Status:    StatusIdle,
	}

	return p, nil
}

// RunID returns the unique identifier of this run.
func (p *Pipeline) RunID() string { return p.runID }

// Status returns the current lifecycle state. Safe to call concurrently
// with Run.
func (p *Pipeline) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Report returns a snapshot of the run summary.
func (p *Pipeline) Report() Report {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.report
}

// OutputName returns the artifact name for reducer i.
func OutputName(i int) string {
	return fmt.Sprintf("output_%d.txt", i)
}

// Run executes the full pipeline. Any stage failure moves the pipeline to
// StatusFailed and is returned; later stages do not run. A failure inside a
// map or reduce goroutine is captured per task and surfaced from the phase
// barrier rather than aborting the process.
func (p *Pipeline) Run() error {
	p.mu.Lock()
	p.report.StartedAt = time.Now()
	p.mu.Unlock()

	err := p.run()

	p.mu.Lock()
	now := time.Now()
	p.report.CompletedAt = now
	if p.status != StatusIdle {
		p.report.Stages = append(p.report.Stages, StageRecord{
			Name:     p.status,
			Duration: now.Sub(p.stageStart),
		})
	}
	if err != nil {
		p.status = StatusFailed
		p.report.Error = err.Error()
	} else {
		p.status = StatusDone
	}
	p.report.Status = p.status
	p.mu.Unlock()

	if err != nil {
		log.Printf("[pipeline:%s] failed: %v", p.runID, err)
		return err
	}

	log.Printf("[pipeline:%s] done: %d output files in %s", p.runID, p.cfg.Reducers, p.cfg.OutputDir)
	return nil
}

func (p *Pipeline) run() error {
	p.enterStage(StatusSectioning)
	offsets, err := ComputeSections(p.cfg.InputPath, p.cfg.Mappers)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.report.InputSize = offsets[p.cfg.Mappers]
	p.mu.Unlock()
	log.Printf("[pipeline:%s] sectioned %s into %d sections (%d bytes)",
		p.runID, p.cfg.InputPath, p.cfg.Mappers, offsets[p.cfg.Mappers])

	p.enterStage(StatusMapping)
	mapOutputs := make([][]string, p.cfg.Mappers)
	mapErrs := make([]error, p.cfg.Mappers)
	var wg sync.WaitGroup
	for i := range mapOutputs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := MapSection(p.cfg.InputPath, offsets[i], offsets[i+1], p.cfg.Worker)
			if err != nil {
				mapErrs[i] = fmt.Errorf("mapper %d: %w", i, err)
				return
			}
			mapOutputs[i] = out
			p.taskDone()
		}(i)
	}
	wg.Wait()
	if err := errors.Join(mapErrs...); err != nil {
		return err
	}

	emits := make([]int, p.cfg.Mappers)
	total := 0
	for i, out := range mapOutputs {
		emits[i] = len(out)
		total += len(out)
	}
	p.mu.Lock()
	p.report.MapEmits = emits
	p.mu.Unlock()
	log.Printf("[pipeline:%s] mapping emitted %d items", p.runID, total)

	p.enterStage(StatusShuffling)
	buckets, err := Shuffle(mapOutputs, p.cfg.Reducers)
	if err != nil {
		return err
	}

	sizes := make([]int, len(buckets))
	for i, b := range buckets {
		sizes[i] = len(b)
	}
	p.mu.Lock()
	p.report.BucketSizes = sizes
	p.mu.Unlock()
	log.Printf("[pipeline:%s] shuffled into %d buckets %v", p.runID, len(buckets), sizes)

	p.enterStage(StatusReducing)
	reduceErrs := make([]error, p.cfg.Reducers)
	for i := range buckets {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outPath := filepath.Join(p.cfg.OutputDir, OutputName(i))
			if err := ReduceBucket(buckets[i], p.cfg.Worker, outPath); err != nil {
				reduceErrs[i] = fmt.Errorf("reducer %d: %w", i, err)
				return
			}
			p.taskDone()
		}(i)
	}
	wg.Wait()

	return errors.Join(reduceErrs...)
}

// enterStage records the previous stage's duration and switches status.
func (p *Pipeline) enterStage(s Status) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	if p.status != StatusIdle {
		p.report.Stages = append(p.report.Stages, StageRecord{
			Name:     p.status,
			Duration: now.Sub(p.stageStart),
		})
	}
	p.status = s
	p.report.Status = s
	p.stageStart = now
}

func (p *Pipeline) taskDone() {
	p.progressMu.Lock()
	defer p.progressMu.Unlock()

	p.done++
	if p.cfg.OnProgress != nil {
		p.cfg.OnProgress(p.done, p.cfg.Mappers+p.cfg.Reducers)
	}
}
