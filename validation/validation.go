// Package validation provides input validation for caller-supplied strings
// before they reach the tool invocation layer.
//
// Every input category has its own validation function returning a distinct
// string type. The executor only accepts those types, so an unvalidated
// string cannot reach an argument vector without going through this package.
// Validation never performs I/O and never normalizes: a valid input is
// returned unchanged.
package validation

// Target is a validated build target label.
type Target string

// Flag is a validated tool command-line flag.
type Flag string

// Query is a validated query expression.
type Query string

// RuntimeArg is a validated argument forwarded to a launched binary.
type RuntimeArg string

// Input size limits. Lengths bound denial-of-service via oversized inputs;
// element counts bound the argument vector itself.
const (
	MaxTargetLength     = 500
	MaxTargets          = 100
	MaxFlagLength       = 500
	MaxFlags            = 50
	MaxQueryLength      = 2000
	MaxRuntimeArgs      = 100
	MaxRuntimeArgLength = 1000
)

// denyFull is the denylist applied to targets and flags: any character a
// shell could use to splice, substitute, redirect, or group commands.
const denyFull = ";|&$`\n\r><(){}"

// denyNarrow is the denylist applied to query expressions and runtime
// arguments, which legitimately contain parentheses and brackets.
const denyNarrow = ";|&$`\n\r"
