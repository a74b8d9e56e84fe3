package validation

import "strings"

// ValidateRuntimeArgs validates arguments forwarded verbatim to a launched
// binary after the -- separator. Their grammar is deliberately loose
// (arbitrary content is allowed), but each argument is still checked
// against the narrow denylist and a length bound. A nil slice maps to an
// empty list, not an error.
func ValidateRuntimeArgs(args []string) ([]RuntimeArg, error) {
	if args == nil {
		return []RuntimeArg{}, nil
	}
	if len(args) > MaxRuntimeArgs {
		return nil, tooManyErr("runtime argument", MaxRuntimeArgs)
	}
	validated := make([]RuntimeArg, 0, len(args))
	for _, arg := range args {
		if i := strings.IndexAny(arg, denyNarrow); i >= 0 {
			return nil, forbiddenErr("runtime argument", arg, rune(arg[i]))
		}
		if len(arg) > MaxRuntimeArgLength {
			return nil, tooLongErr("runtime argument", MaxRuntimeArgLength)
		}
		validated = append(validated, RuntimeArg(arg))
	}
	return validated, nil
}
