package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateQuery_ValidExpressions(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"deps", "deps(//src:app)"},
		{"rdeps", "rdeps(//..., //lib:base)"},
		{"kind", "kind('cc_library', //...)"},
		{"attr", "attr(tags, 'manual', //...)"},
		{"filter", "filter('_test', //src/...)"},
		{"plain label", "//src:app"},
		{"relative label", ":app"},
		{"set union", "deps(//src:app) + deps(//src:tool)"},
		{"intersection", "kind('cc_.*', //...) intersect deps(//src:app)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateQuery(tt.expr)
			if err != nil {
				t.Fatalf("ValidateQuery(%q) failed: %v", tt.expr, err)
			}
			if string(got) != tt.expr {
				t.Errorf("ValidateQuery(%q) = %q, want input unchanged", tt.expr, got)
			}
		})
	}
}

func TestValidateQuery_Empty(t *testing.T) {
	_, err := ValidateQuery("")
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput for empty query, got %v", err)
	}
}

func TestValidateQuery_ForbiddenCharacters(t *testing.T) {
	testCases := []string{
		"deps(//src:app); id",
		"deps(//src:app) | tee /tmp/out",
		"deps(//src:app) & whoami",
		"deps($(TARGET))",
		"deps(`id`)",
		"deps(//src:app)\nid",
		"deps(//src:app)\rid",
	}

	for _, expr := range testCases {
		_, err := ValidateQuery(expr)
		if !errors.Is(err, ErrForbiddenCharacter) {
			t.Errorf("Expected ErrForbiddenCharacter for %q, got %v", expr, err)
		}
	}
}

func TestValidateQuery_ParensAllowed(t *testing.T) {
	// Queries legitimately use parentheses; only the narrow denylist
	// applies, not the one used for targets and flags.
	if _, err := ValidateQuery("deps(//src:app)"); err != nil {
		t.Errorf("Expected parentheses to be allowed in queries, got %v", err)
	}
}

func TestValidateQuery_NoStructuralIndicator(t *testing.T) {
	testCases := []string{
		"hello world",
		"rm -rf /",
		"deps",
		"kind cc_library",
	}

	for _, expr := range testCases {
		_, err := ValidateQuery(expr)
		if !errors.Is(err, ErrPatternMismatch) {
			t.Errorf("Expected ErrPatternMismatch for %q, got %v", expr, err)
		}
	}
}

func TestValidateQuery_TooLong(t *testing.T) {
	expr := "deps(//src:" + strings.Repeat("a", MaxQueryLength) + ")"

	_, err := ValidateQuery(expr)
	if !errors.Is(err, ErrTooLong) {
		t.Errorf("Expected ErrTooLong, got %v", err)
	}
}
