// Package journal persists pipeline run reports so past runs can be inspected
// after the process exits.
package journal

import (
	"encoding/json"
	"errors"
	"fmt"

	"pkg.jsn.cam/minireduce/pkg/minireduce"
	"pkg.jsn.cam/minireduce/pkg/storage"
)

var (
	metaBucket = []byte("meta")
	runsBucket = []byte("runs")
	versionKey = []byte("schema_version")
)

// ErrIncompatibleJournal reports a journal written by an incompatible schema
// version.
var ErrIncompatibleJournal = errors.New("incompatible journal schema version")

// ErrRunNotFound reports a lookup for a run ID the journal has no record of.
var ErrRunNotFound = errors.New("run not found")

// Journal stores one JSON-encoded run report per run ID.
type Journal struct {
	store storage.Backend
}

// Open wraps backend as a run journal, creating its buckets and checking the
// schema version. A journal written under a different major schema version is
// rejected with ErrIncompatibleJournal; minor and patch differences are fine.
func Open(backend storage.Backend) (*Journal, error) {
	for _, bucket := range [][]byte{metaBucket, runsBucket} {
		if err := backend.CreateBucket(bucket); err != nil {
			return nil, fmt.Errorf("create journal bucket %s: %w", bucket, err)
		}
	}

	stored, err := backend.Get(metaBucket, versionKey)
	if err != nil {
		return nil, fmt.Errorf("read journal schema version: %w", err)
	}

	if stored == nil {
		if err := backend.Put(metaBucket, versionKey, []byte(SchemaVersion)); err != nil {
			return nil, fmt.Errorf("write journal schema version: %w", err)
		}
	} else if compatible, err := IsCompatibleVersion(string(stored), SchemaVersion); err != nil || !compatible {
		return nil, fmt.Errorf("journal schema %s, running %s: %w",
			stored, SchemaVersion, ErrIncompatibleJournal)
	}

	return &Journal{store: backend}, nil
}

// Record persists a run report keyed by its run ID. Recording the same run ID
// again overwrites the earlier report.
func (j *Journal) Record(report minireduce.Report) error {
	if report.RunID == "" {
		return fmt.Errorf("record run: %w", minireduce.ErrInvalidArgument)
	}

	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode run %s: %w", report.RunID, err)
	}

	if err := j.store.Put(runsBucket, []byte(report.RunID), data); err != nil {
		return fmt.Errorf("persist run %s: %w", report.RunID, err)
	}

	return nil
}

// Run fetches one recorded run by ID.
func (j *Journal) Run(runID string) (minireduce.Report, error) {
	var report minireduce.Report

	data, err := j.store.Get(runsBucket, []byte(runID))
	if err != nil {
		return report, fmt.Errorf("load run %s: %w", runID, err)
	}
	if data == nil {
		return report, fmt.Errorf("%s: %w", runID, ErrRunNotFound)
	}

	if err := json.Unmarshal(data, &report); err != nil {
		return report, fmt.Errorf("decode run %s: %w", runID, err)
	}

	return report, nil
}

// Runs returns every recorded run in run-ID order.
func (j *Journal) Runs() ([]minireduce.Report, error) {
	var reports []minireduce.Report

	err := j.store.ForEach(runsBucket, func(k, v []byte) error {
		var report minireduce.Report
		if err := json.Unmarshal(v, &report); err != nil {
			return fmt.Errorf("decode run %s: %w", k, err)
		}
		reports = append(reports, report)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return reports, nil
}

// Close closes the underlying backend.
func (j *Journal) Close() error {
	return j.store.Close()
}
