package observability

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/victoralfred/gowritter/safepath"

	"github.com/victoralfred/bazelshim/executor"
)

// AuditLogger records every tool invocation as an append-only JSON line.
type AuditLogger interface {
	// Log logs an audit event.
	Log(ctx context.Context, event *AuditEvent) error

	// Close closes the audit logger.
	Close() error
}

// AuditEvent is one audit log entry.
type AuditEvent struct {
	Timestamp     time.Time     `json:"timestamp"`
	ID            string        `json:"id"`
	Operation     string        `json:"operation"`
	Binary        string        `json:"binary"`
	Args          []string      `json:"args"`
	WorkspaceRoot string        `json:"workspace_root,omitempty"`
	Status        string        `json:"status"`
	ExitCode      int           `json:"exit_code"`
	Ran           bool          `json:"ran"`
	Duration      time.Duration `json:"duration"`
}

// AuditLogLevel determines which events to log.
type AuditLogLevel string

const (
	// AuditLogAll logs every invocation.
	AuditLogAll AuditLogLevel = "all"

	// AuditLogFailures logs only failed invocations.
	AuditLogFailures AuditLogLevel = "failures"
)

// AuditConfig configures the audit logger.
type AuditConfig struct {
	LogLevel AuditLogLevel
	BasePath string
	FilePath string
	Enabled  bool
}

// DefaultAuditConfig returns default audit configuration.
func DefaultAuditConfig() AuditConfig {
	return AuditConfig{
		Enabled:  true,
		LogLevel: AuditLogAll,
		BasePath: "/var/log",
		FilePath: "bazelshim/audit.log",
	}
}

// fileAuditLogger implements AuditLogger using gowritter.
type fileAuditLogger struct {
	safePath *safepath.SafePath
	config   AuditConfig
	mu       sync.Mutex
}

// NewFileAuditLogger creates a new file-based audit logger.
func NewFileAuditLogger(config AuditConfig) (AuditLogger, error) {
	sp, err := safepath.New(config.BasePath)
	if err != nil {
		return nil, fmt.Errorf("creating safe path: %w", err)
	}
	return &fileAuditLogger{
		config:   config,
		safePath: sp,
	}, nil
}

// Log implements AuditLogger.Log.
func (l *fileAuditLogger) Log(ctx context.Context, event *AuditEvent) error {
	if !l.config.Enabled || !l.shouldLog(event) {
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling audit event: %w", err)
	}
	data = append(data, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.safePath.AppendFile(l.config.FilePath, data, 0o644); err != nil {
		return fmt.Errorf("writing audit log: %w", err)
	}
	return nil
}

// Close implements AuditLogger.Close.
func (l *fileAuditLogger) Close() error {
	return nil
}

func (l *fileAuditLogger) shouldLog(event *AuditEvent) bool {
	if l.config.LogLevel == AuditLogFailures {
		return event.Status != "success"
	}
	return true
}

// AuditHook is an invocation hook that writes one audit event per
// completed invocation. It satisfies the executor's Hook interface.
type AuditHook struct {
	logger AuditLogger
}

// NewAuditHook creates an audit hook over the given logger.
func NewAuditHook(logger AuditLogger) *AuditHook {
	return &AuditHook{logger: logger}
}

// Name returns the hook name.
func (h *AuditHook) Name() string {
	return "audit"
}

// Priority returns the hook ordering priority.
func (h *AuditHook) Priority() int {
	return 100
}

// PreInvoke implements the executor Hook interface. Auditing observes
// only completed invocations.
func (h *AuditHook) PreInvoke(ctx context.Context, inv *executor.Invocation) error {
	return nil
}

// PostInvoke writes the audit event for a completed invocation.
func (h *AuditHook) PostInvoke(ctx context.Context, inv *executor.Invocation, result *executor.Result) error {
	return h.logger.Log(ctx, NewAuditEvent(inv, result))
}

// NewAuditEvent creates an audit event from an invocation and its result.
func NewAuditEvent(inv *executor.Invocation, result *executor.Result) *AuditEvent {
	status := "success"
	switch {
	case !result.Ran:
		status = "spawn_failed"
	case result.ExitCode != 0:
		status = "error"
	}

	return &AuditEvent{
		Timestamp:     time.Now().UTC(),
		ID:            inv.ID,
		Operation:     inv.Op.String(),
		Binary:        inv.Binary,
		Args:          inv.Args,
		WorkspaceRoot: inv.WorkspaceRoot,
		Status:        status,
		ExitCode:      result.ExitCode,
		Ran:           result.Ran,
		Duration:      result.Duration,
	}
}
