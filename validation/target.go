package validation

import (
	"regexp"
	"strings"
)

// targetPattern matches the three target label forms:
// absolute //path/to:name (optionally @repo-prefixed), relative :name,
// and the all-targets wildcard //...
var targetPattern = regexp.MustCompile(
	`^(@[\w\-.]+)?//[\w\-./]*(:[\w\-.+]+)?$` +
		`|^:[\w\-.+]+$` +
		`|^//\.\.\.$`,
)

// ValidateTarget validates a single target label. A valid label is
// returned unchanged.
func ValidateTarget(target string) (Target, error) {
	if target == "" {
		return "", emptyErr("target")
	}
	if i := strings.IndexAny(target, denyFull); i >= 0 {
		return "", forbiddenErr("target", target, rune(target[i]))
	}
	if len(target) > MaxTargetLength {
		return "", tooLongErr("target", MaxTargetLength)
	}
	if !targetPattern.MatchString(target) {
		return "", patternErr("target", target)
	}
	return Target(target), nil
}

// ValidateTargets validates a list of target labels. Validation is
// fail-fast: the first invalid label aborts with no partial result.
func ValidateTargets(targets []string) ([]Target, error) {
	if len(targets) == 0 {
		return nil, emptyListErr("target")
	}
	if len(targets) > MaxTargets {
		return nil, tooManyErr("target", MaxTargets)
	}
	validated := make([]Target, 0, len(targets))
	for _, t := range targets {
		vt, err := ValidateTarget(t)
		if err != nil {
			return nil, err
		}
		validated = append(validated, vt)
	}
	return validated, nil
}
