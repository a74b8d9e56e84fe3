// Package hooks provides extension points for the invocation lifecycle.
package hooks

import (
	"context"
	"sort"
	"sync"

	"github.com/victoralfred/bazelshim/executor"
)

// Hook is an invocation lifecycle hook with identity and ordering. It
// extends the executor's Hook interface with a name for unregistration
// and a priority for deterministic ordering (lower runs earlier).
type Hook interface {
	executor.Hook

	// Name returns a unique identifier for the hook.
	Name() string

	// Priority determines execution order (lower = earlier).
	Priority() int
}

// Registry manages hook registration and ordering.
type Registry struct {
	hooks []Hook
	mu    sync.RWMutex
}

// NewRegistry creates a new hook registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a hook to the registry.
func (r *Registry) Register(h Hook) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.hooks = append(r.hooks, h)
	sort.SliceStable(r.hooks, func(i, j int) bool {
		return r.hooks[i].Priority() < r.hooks[j].Priority()
	})
}

// Unregister removes a hook by name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, h := range r.hooks {
		if h.Name() == name {
			r.hooks = append(r.hooks[:i], r.hooks[i+1:]...)
			return
		}
	}
}

// Hooks returns the registered hooks in priority order, typed for the
// executor builder.
func (r *Registry) Hooks() []executor.Hook {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]executor.Hook, len(r.hooks))
	for i, h := range r.hooks {
		out[i] = h
	}
	return out
}

// FuncHook adapts plain functions into a Hook. Nil functions are no-ops.
type FuncHook struct {
	HookName     string
	HookPriority int
	Pre          func(ctx context.Context, inv *executor.Invocation) error
	Post         func(ctx context.Context, inv *executor.Invocation, result *executor.Result) error
}

// Name implements Hook.
func (f *FuncHook) Name() string { return f.HookName }

// Priority implements Hook.
func (f *FuncHook) Priority() int { return f.HookPriority }

// PreInvoke implements the executor Hook interface.
func (f *FuncHook) PreInvoke(ctx context.Context, inv *executor.Invocation) error {
	if f.Pre == nil {
		return nil
	}
	return f.Pre(ctx, inv)
}

// PostInvoke implements the executor Hook interface.
func (f *FuncHook) PostInvoke(ctx context.Context, inv *executor.Invocation, result *executor.Result) error {
	if f.Post == nil {
		return nil
	}
	return f.Post(ctx, inv, result)
}
