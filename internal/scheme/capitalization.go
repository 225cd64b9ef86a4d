package scheme

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agentic-research/randgen/internal/random"
)

// Capitalization is a pure transform applied to generated strings.
type Capitalization string

const (
	CapitalizationRetain      Capitalization = "retain"
	CapitalizationLower       Capitalization = "lower"
	CapitalizationUpper       Capitalization = "upper"
	CapitalizationSentence    Capitalization = "sentence"
	CapitalizationFirstLetter Capitalization = "first_letter"
	CapitalizationRandom      Capitalization = "random"
)

// Capitalizations lists every supported mode in display order.
var Capitalizations = []Capitalization{
	CapitalizationRetain,
	CapitalizationLower,
	CapitalizationUpper,
	CapitalizationSentence,
	CapitalizationFirstLetter,
	CapitalizationRandom,
}

// Valid reports whether c is a known mode. The empty value means retain.
func (c Capitalization) Valid() bool {
	if c == "" {
		return true
	}
	for _, known := range Capitalizations {
		if c == known {
			return true
		}
	}
	return false
}

func (c Capitalization) validate(env Env) *ValidationError {
	if !c.Valid() {
		return env.invalid(KeyCapitalizationUnknown, string(c))
	}
	return nil
}

// Transform applies c to s. Only the random mode draws from rng, which may be
// nil for every other mode.
func (c Capitalization) Transform(s string, rng *random.Source) string {
	switch c {
	case CapitalizationLower:
		return strings.ToLower(s)
	case CapitalizationUpper:
		return strings.ToUpper(s)
	case CapitalizationSentence:
		if s == "" {
			return s
		}
		r, size := utf8.DecodeRuneInString(s)
		return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
	case CapitalizationFirstLetter:
		var b strings.Builder
		startOfWord := true
		for _, r := range s {
			if startOfWord {
				b.WriteRune(unicode.ToUpper(r))
			} else {
				b.WriteRune(unicode.ToLower(r))
			}
			startOfWord = unicode.IsSpace(r)
		}
		return b.String()
	case CapitalizationRandom:
		var b strings.Builder
		for _, r := range s {
			if rng.Bool() {
				b.WriteRune(unicode.ToUpper(r))
			} else {
				b.WriteRune(unicode.ToLower(r))
			}
		}
		return b.String()
	default:
		return s
	}
}

func (c Capitalization) transformAll(values []string, rng *random.Source) []string {
	if c == "" || c == CapitalizationRetain {
		return values
	}
	for i, v := range values {
		values[i] = c.Transform(v, rng)
	}
	return values
}
