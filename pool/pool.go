// Package pool provides a bounded worker pool with backpressure.
package pool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// Common errors.
var (
	ErrPoolFull     = errors.New("worker pool is full")
	ErrPoolShutdown = errors.New("worker pool is shutdown")
)

// Task is a unit of work for the pool.
type Task struct {
	Fn func()
}

// Pool manages a bounded set of workers.
type Pool interface {
	// Submit submits a task to the pool.
	Submit(ctx context.Context, task Task) error

	// SubmitFunc submits a function to the pool.
	SubmitFunc(ctx context.Context, fn func()) error

	// Stats returns current pool statistics.
	Stats() Stats

	// Shutdown stops the workers after draining queued tasks.
	Shutdown(ctx context.Context) error
}

// Config configures the worker pool.
type Config struct {
	// Workers is the number of workers.
	Workers int

	// QueueSize is the size of the task queue.
	QueueSize int

	// Block makes Submit wait for queue space instead of rejecting.
	Block bool
}

// DefaultConfig returns default pool configuration sized for concurrent
// discovery queries.
func DefaultConfig() Config {
	return Config{
		Workers:   4,
		QueueSize: 16,
		Block:     true,
	}
}

// Stats contains pool statistics.
type Stats struct {
	QueueLength    int
	QueueCapacity  int
	TotalSubmitted int64
	TotalCompleted int64
	TotalRejected  int64
}

type pool struct {
	config     Config
	taskQueue  chan Task
	shutdownCh chan struct{}
	wg         sync.WaitGroup
	shutdown   int32

	totalSubmitted int64
	totalCompleted int64
	totalRejected  int64
}

// New creates a new worker pool and starts its workers.
func New(config Config) Pool {
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if config.QueueSize <= 0 {
		config.QueueSize = config.Workers * 4
	}

	p := &pool{
		config:     config,
		taskQueue:  make(chan Task, config.QueueSize),
		shutdownCh: make(chan struct{}),
	}

	for i := 0; i < config.Workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

// Submit implements Pool.Submit.
func (p *pool) Submit(ctx context.Context, task Task) error {
	if atomic.LoadInt32(&p.shutdown) == 1 {
		return ErrPoolShutdown
	}

	atomic.AddInt64(&p.totalSubmitted, 1)

	if p.config.Block {
		select {
		case p.taskQueue <- task:
			return nil
		case <-ctx.Done():
			atomic.AddInt64(&p.totalRejected, 1)
			return ctx.Err()
		case <-p.shutdownCh:
			return ErrPoolShutdown
		}
	}

	select {
	case p.taskQueue <- task:
		return nil
	default:
		atomic.AddInt64(&p.totalRejected, 1)
		return ErrPoolFull
	}
}

// SubmitFunc implements Pool.SubmitFunc.
func (p *pool) SubmitFunc(ctx context.Context, fn func()) error {
	return p.Submit(ctx, Task{Fn: fn})
}

// Stats implements Pool.Stats.
func (p *pool) Stats() Stats {
	return Stats{
		QueueLength:    len(p.taskQueue),
		QueueCapacity:  cap(p.taskQueue),
		TotalSubmitted: atomic.LoadInt64(&p.totalSubmitted),
		TotalCompleted: atomic.LoadInt64(&p.totalCompleted),
		TotalRejected:  atomic.LoadInt64(&p.totalRejected),
	}
}

// Shutdown implements Pool.Shutdown.
func (p *pool) Shutdown(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&p.shutdown, 0, 1) {
		return ErrPoolShutdown
	}
	close(p.shutdownCh)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case task := <-p.taskQueue:
			p.execute(task)
		case <-p.shutdownCh:
			// Drain queued tasks, then exit.
			for {
				select {
				case task := <-p.taskQueue:
					p.execute(task)
				default:
					return
				}
			}
		}
	}
}

func (p *pool) execute(task Task) {
	if task.Fn != nil {
		task.Fn()
	}
	atomic.AddInt64(&p.totalCompleted, 1)
}
