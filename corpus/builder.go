package corpus

import (
	"fmt"
	"log"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"gonum.org/v1/gonum/mat"
)

// progressLogInterval is how many processed files pass between progress
// log lines. Observability only.
const progressLogInterval = 100

// ExtractFunc computes one track's descriptor. Implementations must be
// safe for concurrent use; mfcc.Extract qualifies.
type ExtractFunc func(path string) ([]float64, error)

// Builder assembles the dense descriptor matrix for a scanned corpus.
// Per-file failures are logged and skipped, never fatal.
type Builder struct {
	Extract        ExtractFunc
	DescriptorSize int
	Workers        int  // <= 0 means NumCPU-1 (min 1)
	ShowProgress   bool // render an mpb progress bar
}

type extractResult struct {
	pos int
	err error
}

// Build runs extraction over every path and returns the compacted
// descriptor matrix plus the dense index -> path mapping. Each worker
// writes only the slot of its file's original scan position, so output
// is deterministic regardless of completion order. Rows left all-zero
// (failed or degenerate extractions) are filtered out and the surviving
// rows renumbered from 0 with no gaps.
//
// A nil matrix with an empty mapping means nothing survived.
func (b *Builder) Build(paths []string) (*mat.Dense, map[int]string) {
	titles := make(map[int]string, len(paths))
	if len(paths) == 0 {
		return nil, titles
	}

	d := b.DescriptorSize
	rows := make([][]float64, len(paths))
	success := make([]bool, len(paths))

	workers := b.Workers
	if workers <= 0 {
		workers = runtime.NumCPU() - 1
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	var progress *mpb.Progress
	var bar *mpb.Bar
	if b.ShowProgress {
		progress = mpb.New(mpb.WithWidth(64))
		bar = progress.AddBar(int64(len(paths)),
			mpb.PrependDecorators(
				decor.Name("Extracting: "),
				decor.CountersNoUnit("%d / %d"),
			),
			mpb.AppendDecorators(
				decor.Percentage(),
				decor.EwmaETA(decor.ET_STYLE_GO, 60),
			),
		)
	}

	log.Printf("[extract] %d candidate files, %d workers", len(paths), workers)

	jobs := make(chan int, len(paths))
	results := make(chan extractResult, len(paths))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				descriptor, err := b.Extract(paths[i])
				if err == nil && len(descriptor) != d {
					err = fmt.Errorf("descriptor has %d values, want %d", len(descriptor), d)
				}
				if err == nil {
					// disjoint slot per scan position, no lock needed
					rows[i] = descriptor
					success[i] = true
				}
				results <- extractResult{pos: i, err: err}
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	processed := 0
	for r := range results {
		processed++
		if bar != nil {
			bar.Increment()
		}
		if r.err != nil {
			log.Printf("[extract] could not process %s: %v", filepath.Base(paths[r.pos]), r.err)
		}
		if processed%progressLogInterval == 0 {
			log.Printf("[extract] completed %d / %d audio files", processed, len(paths))
		}
	}
	if progress != nil {
		progress.Wait()
	}

	// compact: original scan position -> dense index, zero rows dropped
	remap := make(map[int]int, len(paths))
	kept := 0
	for i := range rows {
		if !success[i] || isZeroRow(rows[i]) {
			continue
		}
		remap[i] = kept
		kept++
	}

	log.Printf("[extract] kept %d / %d descriptors", kept, len(paths))

	if kept == 0 {
		return nil, titles
	}

	flat := make([]float64, 0, kept*d)
	for i := range rows {
		newIdx, ok := remap[i]
		if !ok {
			continue
		}
		titles[newIdx] = paths[i]
		flat = append(flat, rows[i]...)
	}

	return mat.NewDense(kept, d, flat), titles
}

func isZeroRow(row []float64) bool {
	for _, v := range row {
		if v != 0 {
			return false
		}
	}
	return true
}
