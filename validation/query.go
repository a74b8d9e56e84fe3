package validation

import "strings"

// queryIndicators are the structural markers at least one of which must
// appear in a query expression. This is a sanity heuristic, not a grammar:
// obviously hostile or arbitrary strings are rejected here, and the tool
// itself rejects semantically invalid queries at execution time.
var queryIndicators = []string{
	"//",
	":",
	"deps(",
	"rdeps(",
	"kind(",
	"attr(",
	"filter(",
}

// ValidateQuery validates a query expression. Queries legitimately use
// parentheses and brackets, so only the narrow denylist applies. A valid
// expression is returned unchanged.
func ValidateQuery(expr string) (Query, error) {
	if expr == "" {
		return "", emptyErr("query expression")
	}
	if i := strings.IndexAny(expr, denyNarrow); i >= 0 {
		return "", forbiddenErr("query expression", expr, rune(expr[i]))
	}
	if len(expr) > MaxQueryLength {
		return "", tooLongErr("query expression", MaxQueryLength)
	}
	for _, indicator := range queryIndicators {
		if strings.Contains(expr, indicator) {
			return Query(expr), nil
		}
	}
	return "", patternErr("query expression", expr)
}
