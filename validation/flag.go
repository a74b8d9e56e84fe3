package validation

import (
	"regexp"
	"strings"
)

// flagPattern matches one or two leading dashes, a word-character flag
// name, and an optional =value restricted to path separators, commas,
// colons, @, brackets, and the glob/filter characters * and +.
var flagPattern = regexp.MustCompile(`^-{1,2}[\w\-]+(=[\w\-./,:@\[\]*+]*)?$`)

// ValidateFlag validates a single tool flag. A valid flag is returned
// unchanged.
func ValidateFlag(flag string) (Flag, error) {
	if flag == "" {
		return "", emptyErr("flag")
	}
	if i := strings.IndexAny(flag, denyFull); i >= 0 {
		return "", forbiddenErr("flag", flag, rune(flag[i]))
	}
	if len(flag) > MaxFlagLength {
		return "", tooLongErr("flag", MaxFlagLength)
	}
	if !flagPattern.MatchString(flag) {
		return "", patternErr("flag", flag)
	}
	return Flag(flag), nil
}

// ValidateFlags validates a list of tool flags. A nil slice means "no
// flags supplied" and maps to an empty list, not an error.
func ValidateFlags(flags []string) ([]Flag, error) {
	if flags == nil {
		return []Flag{}, nil
	}
	if len(flags) > MaxFlags {
		return nil, tooManyErr("flag", MaxFlags)
	}
	validated := make([]Flag, 0, len(flags))
	for _, f := range flags {
		vf, err := ValidateFlag(f)
		if err != nil {
			return nil, err
		}
		validated = append(validated, vf)
	}
	return validated, nil
}
