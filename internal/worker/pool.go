// Package worker provides a worker pool for replaying games in parallel.
package worker

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/chess-rules-go/internal/game"
)

// Job is one game to replay: a start position and its move tokens.
type Job struct {
	Index int    // Position in the input, used to restore order
	FEN   string // Empty means the standard start position
	Moves []string
}

// Result is the outcome of replaying a Job.
type Result struct {
	Index       int
	Outcome     game.Outcome
	InitialFEN  string
	FEN         string   // Final position
	Plies       int      // Moves accepted before the game ended or the script ran out
	Moves       []string // Accepted moves in coordinate form
	Repetitions int      // Occurrences of the most repeated position
	Err         error
}

// ProcessFunc replays one job. It should return promptly once ctx is done.
type ProcessFunc func(ctx context.Context, job Job) Result

// Pool manages a pool of workers for parallel replay.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan Job
	resultChan  chan Result
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopFlag    int32 // Atomic flag for early termination
	cancel      context.CancelFunc
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a pool with the given number of workers and buffer size.
func NewPool(numWorkers, bufferSize int, processFunc ProcessFunc) *Pool {
	return NewPoolWithOptions(processFunc, WithWorkers(numWorkers), WithBufferSize(bufferSize))
}

// NewPoolWithOptions creates a pool using functional options.
// Default: 1 worker, buffer size of 10.
func NewPoolWithOptions(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.workChan = make(chan Job, p.bufferSize)
	p.resultChan = make(chan Result, p.bufferSize)
	return p
}

// Start starts the worker goroutines. Jobs run under a context derived
// from ctx that Stop cancels.
func (p *Pool) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

// worker processes jobs until the work channel is closed.
func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()

	for job := range p.workChan {
		if p.IsStopped() {
			continue // Drain channel without processing
		}
		p.resultChan <- p.processFunc(ctx, job)
	}
}

// Submit queues a job. It blocks while the work channel is full.
func (p *Pool) Submit(job Job) {
	p.workChan <- job
}

// TrySubmit queues a job without blocking.
// Returns false if the work channel is full or the pool is stopped.
func (p *Pool) TrySubmit(job Job) bool {
	if p.IsStopped() {
		return false
	}
	select {
	case p.workChan <- job:
		return true
	default:
		return false
	}
}

// Stop cancels running jobs and skips queued ones.
func (p *Pool) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
	if p.cancel != nil {
		p.cancel()
	}
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the work channel and waits for all workers to finish.
// The result channel is closed once they have.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
	if p.cancel != nil {
		p.cancel()
	}
}

// Results returns the result channel.
func (p *Pool) Results() <-chan Result {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Run replays jobs on a started pool and returns the results in job
// order. It closes the pool when every job has been submitted.
func (p *Pool) Run(jobs []Job) []Result {
	go func() {
		for _, job := range jobs {
			p.Submit(job)
		}
		p.Close()
	}()

	results := make([]Result, 0, len(jobs))
	for r := range p.Results() {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	return results
}
