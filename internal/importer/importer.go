package importer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"

	"github.com/oskarlind/tripkit/internal/store"
)

// Result summarizes one import run.
type Result struct {
	FilesScanned  int
	FilesImported int
	FilesSkipped  int
	Expenses      int
	BadRows       int
	Errors        []error
}

// Options tunes an import run.
type Options struct {
	// Workers bounds parallel file parsing. Zero means NumCPU, capped at 8.
	Workers int
	// Force re-imports files even when the tracker says they are unchanged.
	Force bool
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	n := runtime.NumCPU()
	if n > 8 {
		n = 8
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Import scans dir for expense export files and loads them into the
// given trip. Files whose size and mtime match the tracker are skipped
// so repeated runs only pay for what changed.
func Import(st *store.Store, tripID, dir string, opts Options) (Result, error) {
	var result Result

	files, err := ScanDir(dir)
	if err != nil {
		return result, fmt.Errorf("scanning %s: %w", dir, err)
	}
	result.FilesScanned = len(files)
	if len(files) == 0 {
		return result, nil
	}

	tracked, err := st.TrackedFiles()
	if err != nil {
		return result, fmt.Errorf("loading import tracker: %w", err)
	}

	var pending []DiscoveredFile
	for _, f := range files {
		if !opts.Force {
			if prev, ok := tracked[f.Path]; ok && prev.MtimeNs == f.MtimeNs && prev.SizeBytes == f.SizeBytes {
				result.FilesSkipped++
				continue
			}
		}
		pending = append(pending, f)
	}
	if len(pending) == 0 {
		return result, nil
	}

	jobs := make(chan DiscoveredFile)
	parsed := make(chan ParseResult, len(pending))

	var wg sync.WaitGroup
	for i := 0; i < opts.workers(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for f := range jobs {
				parsed <- ParseFile(f.Path)
			}
		}()
	}
	go func() {
		for _, f := range pending {
			jobs <- f
		}
		close(jobs)
		wg.Wait()
		close(parsed)
	}()

	byPath := make(map[string]DiscoveredFile, len(pending))
	for _, f := range pending {
		byPath[f.Path] = f
	}

	// Writes stay on this goroutine; sqlite handles one writer best.
	for pr := range parsed {
		if pr.Err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", pr.Path, pr.Err))
			continue
		}
		result.BadRows += pr.BadRows

		failed := false
		for _, e := range pr.Expenses {
			e.ID = uuid.NewString()
			e.TripID = tripID
			if err := st.AddExpense(e); err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("%s: %w", pr.Path, err))
				failed = true
				break
			}
			result.Expenses++
		}
		if failed {
			continue
		}

		f := byPath[pr.Path]
		if err := st.TrackFile(f.Path, f.MtimeNs, f.SizeBytes); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("tracking %s: %w", f.Path, err))
			continue
		}
		result.FilesImported++
	}

	return result, nil
}
