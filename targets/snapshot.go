// Package targets discovers buildable targets by kind and caches one
// consistent snapshot of the result.
package targets

import (
	"sort"
	"time"
)

// DefaultKinds are the tracked target kinds, covering the library, binary,
// and test units of the two supported language ecosystems.
var DefaultKinds = []string{
	"cc_library",
	"cc_binary",
	"cc_test",
	"py_library",
	"py_binary",
	"py_test",
}

// Snapshot is one immutable aggregation of discovered targets. It is
// created whole by a discovery pass and superseded, never mutated, by the
// next pass. Callers must treat all fields as read-only.
type Snapshot struct {
	// Timestamp is the discovery time in ISO-8601 UTC.
	Timestamp string `json:"timestamp"`

	// WorkspaceRoot is the absolute workspace root path.
	WorkspaceRoot string `json:"workspaceRoot"`

	// Kinds maps kind name to its ordered target label list.
	Kinds map[string][]string `json:"kinds"`

	// All is the sorted, deduplicated union across all kinds.
	All []string `json:"all"`
}

// newSnapshot assembles a snapshot from per-kind results. The combined
// list is independent of per-kind ordering.
func newSnapshot(root string, kinds map[string][]string) *Snapshot {
	seen := make(map[string]struct{})
	for _, labels := range kinds {
		for _, label := range labels {
			seen[label] = struct{}{}
		}
	}
	all := make([]string, 0, len(seen))
	for label := range seen {
		all = append(all, label)
	}
	sort.Strings(all)

	return &Snapshot{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		WorkspaceRoot: root,
		Kinds:         kinds,
		All:           all,
	}
}
