package workerpool

import (
	"sync"

	"github.com/kiteco/chatvocab/kite-golib/errors"
)

// Job is a unit of work run by the pool
type Job func() error

// Pool runs jobs on a fixed number of goroutines
type Pool struct {
	jobs     chan Job
	stop     chan struct{}
	stopOnce sync.Once
	pending  sync.WaitGroup

	m    sync.Mutex
	errs errors.Errors
}

// New starts a pool with n workers; n < 1 is treated as 1
func New(n int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{
		jobs: make(chan Job),
		stop: make(chan struct{}),
	}
	for i := 0; i < n; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for {
		select {
		case <-p.stop:
			return
		case job := <-p.jobs:
			err := job()
			if err != nil {
				p.m.Lock()
				p.errs = errors.Append(p.errs, err)
				p.m.Unlock()
			}
			p.pending.Done()
		}
	}
}

// Add queues jobs without blocking the caller
func (p *Pool) Add(jobs []Job) {
	p.pending.Add(len(jobs))
	go p.feed(jobs)
}

// AddBlocking queues jobs, returning once every job has been handed to a worker
func (p *Pool) AddBlocking(jobs []Job) {
	p.pending.Add(len(jobs))
	p.feed(jobs)
}

func (p *Pool) feed(jobs []Job) {
	for i, job := range jobs {
		select {
		case p.jobs <- job:
		case <-p.stop:
			// jobs that were never handed out are dropped
			p.pending.Add(-(len(jobs) - i))
			return
		}
	}
}

// Wait blocks until every queued job has finished or been dropped by Stop, and
// returns the errors of the jobs that failed since the last call to Wait.
func (p *Pool) Wait() error {
	p.pending.Wait()

	p.m.Lock()
	defer p.m.Unlock()
	errs := p.errs
	p.errs = nil
	if errs == nil {
		return nil
	}
	return errs
}

// Stop drops jobs that have not started yet and shuts the workers down once their
// current job is done. It is safe to call more than once.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.stop)
	})
}
