package pool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPool_ExecutesSubmittedTasks(t *testing.T) {
	p := New(Config{Workers: 2, QueueSize: 8, Block: true})
	defer p.Shutdown(context.Background()) //nolint:errcheck

	var executed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		err := p.SubmitFunc(context.Background(), func() {
			defer wg.Done()
			executed.Add(1)
		})
		if err != nil {
			t.Fatalf("SubmitFunc failed: %v", err)
		}
	}
	wg.Wait()

	if executed.Load() != 20 {
		t.Errorf("Expected 20 executed tasks, got %d", executed.Load())
	}
}

func TestPool_NonBlockingRejectsWhenFull(t *testing.T) {
	p := New(Config{Workers: 1, QueueSize: 1, Block: false})
	defer p.Shutdown(context.Background()) //nolint:errcheck

	// Occupy the worker and fill the queue.
	block := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	if err := p.SubmitFunc(context.Background(), func() {
		defer wg.Done()
		<-block
	}); err != nil {
		t.Fatalf("SubmitFunc failed: %v", err)
	}

	// The worker may not have picked up the first task yet; keep
	// submitting until the queue itself is full.
	var rejected bool
	for i := 0; i < 10; i++ {
		err := p.SubmitFunc(context.Background(), func() {})
		if errors.Is(err, ErrPoolFull) {
			rejected = true
			break
		}
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}
	close(block)
	wg.Wait()

	if !rejected {
		t.Error("Expected ErrPoolFull once the queue filled")
	}
}

func TestPool_BlockingSubmitHonorsContext(t *testing.T) {
	p := New(Config{Workers: 1, QueueSize: 1, Block: true})
	defer p.Shutdown(context.Background()) //nolint:errcheck

	block := make(chan struct{})
	defer close(block)
	for i := 0; i < 2; i++ {
		if err := p.SubmitFunc(context.Background(), func() { <-block }); err != nil {
			t.Fatalf("SubmitFunc failed: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// Worker busy, queue full: the blocking submit must give up with
	// the context, not hang.
	err := p.SubmitFunc(ctx, func() {})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected context.DeadlineExceeded, got %v", err)
	}
}

func TestPool_ShutdownDrainsQueuedTasks(t *testing.T) {
	p := New(Config{Workers: 1, QueueSize: 8, Block: true})

	var executed atomic.Int64
	for i := 0; i < 5; i++ {
		if err := p.SubmitFunc(context.Background(), func() {
			executed.Add(1)
		}); err != nil {
			t.Fatalf("SubmitFunc failed: %v", err)
		}
	}

	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if executed.Load() != 5 {
		t.Errorf("Expected queued tasks to run before shutdown, got %d", executed.Load())
	}
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	p := New(Config{Workers: 1, QueueSize: 1})
	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}

	err := p.SubmitFunc(context.Background(), func() {})
	if !errors.Is(err, ErrPoolShutdown) {
		t.Errorf("Expected ErrPoolShutdown, got %v", err)
	}
}

func TestPool_DoubleShutdown(t *testing.T) {
	p := New(Config{Workers: 1, QueueSize: 1})
	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("First shutdown failed: %v", err)
	}

	err := p.Shutdown(context.Background())
	if !errors.Is(err, ErrPoolShutdown) {
		t.Errorf("Expected ErrPoolShutdown on second shutdown, got %v", err)
	}
}

func TestPool_Stats(t *testing.T) {
	p := New(Config{Workers: 2, QueueSize: 4, Block: true})
	defer p.Shutdown(context.Background()) //nolint:errcheck

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		if err := p.SubmitFunc(context.Background(), func() { wg.Done() }); err != nil {
			t.Fatalf("SubmitFunc failed: %v", err)
		}
	}
	wg.Wait()

	stats := p.Stats()
	if stats.TotalSubmitted != 3 {
		t.Errorf("Expected 3 submitted, got %d", stats.TotalSubmitted)
	}
	if stats.QueueCapacity != 4 {
		t.Errorf("Expected queue capacity 4, got %d", stats.QueueCapacity)
	}
}

func TestNew_DefaultsZeroConfig(t *testing.T) {
	p := New(Config{})
	defer p.Shutdown(context.Background()) //nolint:errcheck

	if err := p.SubmitFunc(context.Background(), func() {}); err != nil {
		t.Errorf("Expected zero config to be usable, got %v", err)
	}
}
