// Package worker evaluates golden cases in parallel. Each worker owns its
// own noise generator, so no generator state is shared between goroutines.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/MeKo-Tech/hexnoise/internal/golden"
	"github.com/MeKo-Tech/hexnoise/pkg/qrnoise"
)

// Evaluator computes a case on a generator owned by the calling worker.
type Evaluator interface {
	Evaluate(ctx context.Context, gen *qrnoise.Generator, c golden.Case) (int, error)
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(ctx context.Context, gen *qrnoise.Generator, c golden.Case) (int, error)

// Evaluate calls f(ctx, gen, c).
func (f EvaluatorFunc) Evaluate(ctx context.Context, gen *qrnoise.Generator, c golden.Case) (int, error) {
	return f(ctx, gen, c)
}

// DefaultEvaluator runs golden.Evaluate.
var DefaultEvaluator = EvaluatorFunc(func(_ context.Context, gen *qrnoise.Generator, c golden.Case) (int, error) {
	return golden.Evaluate(gen, c)
})

// Task represents a single evaluation.
type Task struct {
	Case golden.Case
}

// Result represents the outcome of a task.
type Result struct {
	Task    Task
	Got     int
	Err     error
	Elapsed time.Duration
}

// Outcome converts a successful result into a golden.Outcome.
func (r Result) Outcome() golden.Outcome {
	return golden.Outcome{Case: r.Task.Case, Got: r.Got}
}

// ProgressFunc is called after each task completes.
type ProgressFunc func(completed, total, failed int)

// Config configures the worker pool.
type Config struct {
	Workers    int
	Evaluator  Evaluator
	OnProgress ProgressFunc
}

// Pool manages parallel case evaluation.
type Pool struct {
	workers    int
	evaluator  Evaluator
	onProgress ProgressFunc
}

// New creates a new worker pool. A nil Evaluator selects DefaultEvaluator.
func New(cfg Config) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	evaluator := cfg.Evaluator
	if evaluator == nil {
		evaluator = DefaultEvaluator
	}

	return &Pool{
		workers:    workers,
		evaluator:  evaluator,
		onProgress: cfg.OnProgress,
	}
}

// Run executes all tasks and returns results in completion order.
// The function blocks until all tasks complete or the context is cancelled.
func (p *Pool) Run(ctx context.Context, tasks []Task) []Result {
	if len(tasks) == 0 {
		return nil
	}

	taskCh := make(chan Task, len(tasks))
	resultCh := make(chan Result, len(tasks))

	var (
		completed int
		failed    int
		mu        sync.Mutex
	)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.worker(ctx, taskCh, resultCh)
		}()
	}

	go func() {
		defer close(taskCh)
		for _, task := range tasks {
			select {
			case taskCh <- task:
			case <-ctx.Done():
				return
			}
		}
	}()

	results := make([]Result, 0, len(tasks))
	done := make(chan struct{})

	go func() {
		for result := range resultCh {
			results = append(results, result)

			mu.Lock()
			completed++
			if result.Err != nil {
				failed++
			}
			c, f := completed, failed
			mu.Unlock()

			if p.onProgress != nil {
				p.onProgress(c, len(tasks), f)
			}
		}
		close(done)
	}()

	wg.Wait()
	close(resultCh)
	<-done

	return results
}

// worker drains tasks using a generator private to this goroutine.
func (p *Pool) worker(ctx context.Context, tasks <-chan Task, results chan<- Result) {
	gen := qrnoise.NewGenerator()

	for task := range tasks {
		select {
		case <-ctx.Done():
			results <- Result{
				Task: task,
				Err:  ctx.Err(),
			}
			continue
		default:
		}

		start := time.Now()
		got, err := p.evaluator.Evaluate(ctx, gen, task.Case)
		elapsed := time.Since(start)

		results <- Result{
			Task:    task,
			Got:     got,
			Err:     err,
			Elapsed: elapsed,
		}
	}
}

// Tasks wraps cases as tasks.
func Tasks(cases []golden.Case) []Task {
	tasks := make([]Task, len(cases))
	for i, c := range cases {
		tasks[i] = Task{Case: c}
	}
	return tasks
}
