package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/panelforge/panelcut/internal/model"
)

// ErrWorkerCrashed marks a response produced by a panicking worker run.
// Submit recovers from it by falling back to the synchronous path, so
// callers only ever see it when the fallback fails too.
var ErrWorkerCrashed = errors.New("optimizer worker crashed")

// Request is one optimization job: the prepared parts plus the sheet/kerf
// configuration. Token is a monotonically increasing identifier the caller
// uses to discard stale results when runs overlap.
type Request struct {
	Token  uint64
	Parts  []model.Part
	Config model.CutConfig
}

// Response carries the result of one Request. The worker and synchronous
// paths produce byte-for-byte identical Groups for identical input.
type Response struct {
	Token  uint64
	Groups []model.GroupResult
	Err    error
}

type workerJob struct {
	req   Request
	reply chan Response
}

// Worker executes optimization requests on a single background goroutine.
// The zero value is not usable; create one with NewWorker and Start it.
type Worker struct {
	jobs    chan workerJob
	quit    chan struct{}
	running atomic.Bool
}

func NewWorker() *Worker {
	return &Worker{
		jobs: make(chan workerJob),
		quit: make(chan struct{}),
	}
}

// Start launches the worker goroutine. Starting an already-running worker
// is a no-op.
func (w *Worker) Start() {
	if !w.running.CompareAndSwap(false, true) {
		return
	}
	go w.loop()
}

// Stop shuts the worker down. A stopped worker cannot be restarted; any
// Submit after Stop runs synchronously.
func (w *Worker) Stop() {
	if w.running.CompareAndSwap(true, false) {
		close(w.quit)
	}
}

func (w *Worker) loop() {
	for {
		select {
		case job := <-w.jobs:
			job.reply <- safeRun(job.req)
		case <-w.quit:
			return
		}
	}
}

// safeRun executes one request, converting any panic into a structured
// ErrWorkerCrashed response instead of killing the worker goroutine.
func safeRun(req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			resp = Response{Token: req.Token, Err: fmt.Errorf("%w: %v", ErrWorkerCrashed, r)}
		}
	}()
	groups, err := New(req.Config).Run(req.Parts)
	return Response{Token: req.Token, Groups: groups, Err: err}
}

// runSync is the synchronous execution path. It shares the identical pure
// engine with the worker path; only the executing goroutine differs.
func runSync(req Request) Response {
	groups, err := New(req.Config).Run(req.Parts)
	return Response{Token: req.Token, Groups: groups, Err: err}
}

// Submit runs the request on the worker and waits for its response. A
// worker that is not running, has been stopped, or crashes mid-request
// falls back to synchronous execution rather than hanging or surfacing the
// crash. Context cancellation bounds the wait; the in-flight computation
// is not cancelled, its result is simply abandoned.
func (w *Worker) Submit(ctx context.Context, req Request) Response {
	if !w.running.Load() {
		return runSync(req)
	}

	job := workerJob{req: req, reply: make(chan Response, 1)}
	select {
	case w.jobs <- job:
	case <-w.quit:
		return runSync(req)
	case <-ctx.Done():
		return Response{Token: req.Token, Err: ctx.Err()}
	}

	select {
	case resp := <-job.reply:
		if errors.Is(resp.Err, ErrWorkerCrashed) {
			return runSync(req)
		}
		return resp
	case <-w.quit:
		return runSync(req)
	case <-ctx.Done():
		return Response{Token: req.Token, Err: ctx.Err()}
	}
}

// Runner ties a token sequence to an optional background worker. It is the
// execution wrapper callers interact with: Run for the synchronous path,
// RunAsync for the offloaded one, and token helpers for discarding results
// superseded by rapid re-runs.
type Runner struct {
	worker *Worker
	seq    atomic.Uint64
}

// NewRunner creates a runner backed by the given worker. A nil worker
// makes every run synchronous.
func NewRunner(w *Worker) *Runner {
	return &Runner{worker: w}
}

// NextToken issues the next request token.
func (r *Runner) NextToken() uint64 {
	return r.seq.Add(1)
}

// IsStale reports whether a token has been superseded by a newer request.
func (r *Runner) IsStale(token uint64) bool {
	return token != r.seq.Load()
}

// Run executes the request synchronously on the calling goroutine.
func (r *Runner) Run(req Request) Response {
	return runSync(req)
}

// RunAsync submits the request to the worker and delivers the response on
// the returned channel. The channel is buffered; an abandoned (stale)
// response never blocks the worker.
func (r *Runner) RunAsync(ctx context.Context, req Request) <-chan Response {
	out := make(chan Response, 1)
	go func() {
		if r.worker == nil {
			out <- runSync(req)
			return
		}
		out <- r.worker.Submit(ctx, req)
	}()
	return out
}
