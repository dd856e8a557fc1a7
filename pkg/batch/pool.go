// Package batch runs many pairwise alignments on a bounded worker pool.
package batch

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/scttfrdmn/galign-go/pkg/align"
	"github.com/scttfrdmn/galign-go/pkg/genome"
)

// MaxWorkers caps the pool size; every worker holds a full score matrix
const MaxWorkers = 32

// Job is one pair to align
type Job struct {
	Reference genome.Sequence `json:"reference"`
	Query     genome.Sequence `json:"query"`
}

// Output is a finished job
type Output struct {
	Job
	Result align.Result `json:"result"`
}

// Guard rejects a pair by its sequence lengths before any matrix is
// allocated
type Guard func(m, n int) error

// Options configures a Pool
type Options struct {
	Workers   int // <= 0 uses the CPU count
	Algorithm align.Algorithm
	Scoring   align.Scoring
	Guard     Guard
	Progress  io.Writer // progress bar destination, nil for none
}

// Pool aligns jobs in parallel
type Pool struct {
	opts    Options
	workers int
}

// task is a job tagged with its position in the input
type task struct {
	slot int
	job  Job
}

// taskResult is a finished task
type taskResult struct {
	slot    int
	output  Output
	elapsed time.Duration
	err     error
}

// NewPool creates a pool
func NewPool(opts Options) *Pool {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}
	return &Pool{opts: opts, workers: workers}
}

// Workers returns the number of parallel workers
func (p *Pool) Workers() int {
	return p.workers
}

// Run aligns every job and returns the outputs in input order. The first
// failing job stops the run and its error is returned.
func (p *Pool) Run(ctx context.Context, jobs []Job) ([]Output, error) {
	if len(jobs) == 0 {
		return []Output{}, nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	taskQueue := make(chan task, p.workers*2)
	resultQueue := make(chan taskResult, p.workers*2)
	errorChan := make(chan error, 1)
	outputs := make([]Output, len(jobs))
	completed := 0

	var progress *mpb.Progress
	var bar *mpb.Bar
	if p.opts.Progress != nil {
		progress, bar = newBar(p.opts.Progress, len(jobs))
	}

	var workerWg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		workerWg.Add(1)
		go func(id int) {
			defer workerWg.Done()
			p.worker(runCtx, id, taskQueue, resultQueue)
		}(i)
	}

	var resultWg sync.WaitGroup
	resultWg.Add(1)
	go func() {
		defer resultWg.Done()
		for r := range resultQueue {
			if r.err != nil {
				select {
				case errorChan <- r.err:
				default:
				}
				cancel()
				continue
			}
			outputs[r.slot] = r.output
			completed++
			if bar != nil {
				bar.EwmaIncrBy(1, r.elapsed)
			}
		}
	}()

submit:
	for i, job := range jobs {
		select {
		case taskQueue <- task{slot: i, job: job}:
		case <-runCtx.Done():
			break submit
		}
	}
	close(taskQueue)

	workerWg.Wait()
	close(resultQueue)
	resultWg.Wait()

	var err error
	select {
	case err = <-errorChan:
	default:
		if completed < len(jobs) {
			err = ctx.Err()
		}
	}

	if progress != nil {
		if err != nil {
			bar.Abort(false)
		}
		progress.Wait()
	}

	if err != nil {
		return nil, err
	}
	return outputs, nil
}

func (p *Pool) worker(ctx context.Context, id int, tasks <-chan task, results chan<- taskResult) {
	for t := range tasks {
		if ctx.Err() != nil {
			// Drain so the submitter never blocks
			continue
		}

		start := time.Now()
		r := taskResult{slot: t.slot}
		res, err := p.align(t.job)
		if err != nil {
			r.err = fmt.Errorf("worker %d failed to align %s against %s: %w", id, t.job.Query.ID, t.job.Reference.ID, err)
		} else {
			r.output = Output{Job: t.job, Result: res}
		}
		r.elapsed = time.Since(start)

		select {
		case results <- r:
		case <-ctx.Done():
		}
	}
}

func (p *Pool) align(job Job) (align.Result, error) {
	if p.opts.Guard != nil {
		if err := p.opts.Guard(len(job.Reference.Sequence), len(job.Query.Sequence)); err != nil {
			return align.Result{}, err
		}
	}
	return align.Align(job.Reference.Sequence, job.Query.Sequence, p.opts.Algorithm, p.opts.Scoring)
}

func newBar(w io.Writer, total int) (*mpb.Progress, *mpb.Bar) {
	progress := mpb.New(mpb.WithWidth(40), mpb.WithOutput(w))
	bar := progress.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name("aligned pairs: ", decor.WC{W: len("aligned pairs: "), C: decor.DindentRight}),
			decor.Name("", decor.WCSyncSpaceR),
			decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Name("ETA: ", decor.WC{W: len("ETA: ")}),
			decor.EwmaETA(decor.ET_STYLE_GO, 1024),
			decor.OnComplete(decor.Name(""), ". done"),
		),
	)
	return progress, bar
}
