package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"pkg.jsn.cam/minireduce/internal/journal"
	"pkg.jsn.cam/minireduce/pkg/minireduce"
	"pkg.jsn.cam/minireduce/pkg/storage"
	"pkg.jsn.cam/minireduce/workers"
)

var (
	workerName   = flag.String("worker", workers.DefaultWorker, "map/reduce worker to run")
	outputDir    = flag.String("output-dir", ".", "directory for the output_<i>.txt files")
	journalPath  = flag.String("journal", "", "path to a bbolt run journal (disabled when empty)")
	listWorkers  = flag.Bool("list-workers", false, "list registered workers and exit")
	showProgress = flag.Bool("progress", true, "show a task progress bar")
)

func usage() {
	fmt.Printf("Usage: %s [flags] <input-path> <mapper-count> <reducer-count>\n", os.Args[0])
	fmt.Println("Flags:")
	flag.CommandLine.SetOutput(os.Stdout)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *listWorkers {
		for _, name := range workers.ListWorkers() {
			fmt.Printf("%-12s %s\n", name, workers.GetWorker(name).Description())
		}
		return
	}

	args := flag.Args()
	if len(args) != 3 {
		usage()
		os.Exit(2)
	}

	mappers, err := strconv.Atoi(args[1])
	if err != nil {
		usage()
		os.Exit(2)
	}

	reducers, err := strconv.Atoi(args[2])
	if err != nil {
		usage()
		os.Exit(2)
	}

	if !workers.IsValidWorker(*workerName) {
		fmt.Fprintf(os.Stderr, "unknown worker %q (see -list-workers)\n", *workerName)
		os.Exit(2)
	}

	if err := run(args[0], mappers, reducers); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(inputPath string, mappers, reducers int) error {
	if info, err := os.Stat(inputPath); err == nil {
		fmt.Printf("Input: %s (%s)\n", inputPath, humanize.Bytes(uint64(info.Size())))
	}

	cfg := minireduce.Config{
		InputPath: inputPath,
		Mappers:   mappers,
		Reducers:  reducers,
		OutputDir: *outputDir,
		Worker:    workers.GetWorker(*workerName),
	}

	var bar *progressbar.ProgressBar
	if *showProgress {
		bar = progressbar.Default(int64(mappers+reducers), "tasks")
		cfg.OnProgress = func(done, total int) {
			_ = bar.Set(done)
		}
	}

	p, err := minireduce.New(cfg)
	if err != nil {
		return err
	}

	runErr := p.Run()
	if bar != nil {
		_ = bar.Finish()
	}

	if *journalPath != "" {
		if err := recordRun(*journalPath, p.Report()); err != nil {
			log.Printf("[cli] recording run %s failed: %v", p.RunID(), err)
		}
	}

	return runErr
}

// recordRun appends the run report to the journal at dbPath, creating the
// journal on first use.
func recordRun(dbPath string, report minireduce.Report) error {
	backend, err := storage.NewBoltBackend(dbPath)
	if err != nil {
		return err
	}

	j, err := journal.Open(backend)
	if err != nil {
		backend.Close()
		return err
	}
	defer j.Close()

	return j.Record(report)
}
