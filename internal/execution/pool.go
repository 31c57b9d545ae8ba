package execution

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"jlit/internal/domain"
)

// Progress receives live counters while the pool runs.
type Progress interface {
	Update(done, passed, failed int)
	Finish()
}

// Pool executes prepared tests across parallel workers. Tests share no
// mutable state beyond the read-only session, so scheduling makes no
// ordering guarantee between them.
type Pool struct {
	workers  int
	runner   *Runner
	progress Progress
}

// NewPool creates a Pool over the given Runner.
func NewPool(workers int, runner *Runner) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers, runner: runner}
}

// SetProgress sets the progress sink for the pool.
func (p *Pool) SetProgress(progress Progress) {
	p.progress = progress
}

// Execute runs all tests to completion (no fail-fast).
func (p *Pool) Execute(tests []*PreparedTest) ([]domain.Result, time.Duration) {
	if len(tests) == 0 {
		return nil, 0
	}

	queue := make(chan *PreparedTest, len(tests))
	results := make(chan domain.Result, len(tests))
	for _, test := range tests {
		queue <- test
	}
	close(queue)

	var mu sync.Mutex
	var done, passed, failed int
	start := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for test := range queue {
				result := p.runner.Run(test)
				results <- result
				mu.Lock()
				done++
				if result.Status.Failed() {
					failed++
				} else {
					passed++
				}
				if p.progress != nil {
					p.progress.Update(done, passed, failed)
				}
				mu.Unlock()
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var all []domain.Result
	for result := range results {
		all = append(all, result)
	}
	if p.progress != nil {
		p.progress.Finish()
	}
	return all, time.Since(start)
}

// errStopEarly signals the fail-fast group to stop handing out tests.
var errStopEarly = errors.New("stop after first failure")

// ExecuteFailFast runs tests until the first failure, then cancels the
// remaining queue. Already-started tests finish; their results are kept.
func (p *Pool) ExecuteFailFast(tests []*PreparedTest) ([]domain.Result, time.Duration) {
	if len(tests) == 0 {
		return nil, 0
	}

	queue := make(chan *PreparedTest)
	start := time.Now()

	var mu sync.Mutex
	var all []domain.Result
	var done, passed, failed int

	g, ctx := errgroup.WithContext(context.Background())

	feed := func() {
		defer close(queue)
		for _, test := range tests {
			select {
			case <-ctx.Done():
				return
			case queue <- test:
			}
		}
	}
	go feed()

	for i := 0; i < p.workers; i++ {
		g.Go(func() error {
			for test := range queue {
				result := p.runner.Run(test)
				mu.Lock()
				all = append(all, result)
				done++
				if result.Status.Failed() {
					failed++
				} else {
					passed++
				}
				if p.progress != nil {
					p.progress.Update(done, passed, failed)
				}
				stop := result.Status.Failed()
				mu.Unlock()
				if stop {
					return errStopEarly
				}
			}
			return nil
		})
	}

	_ = g.Wait()
	if p.progress != nil {
		p.progress.Finish()
	}
	return all, time.Since(start)
}
