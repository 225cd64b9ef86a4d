package scheme

import "fmt"

// Message keys. Every user-facing string produced by this package is looked
// up through a Messages implementation under one of these keys.
const (
	KeyNameEmpty              = "template.error.name_empty"
	KeyNameDuplicate          = "template_list.error.duplicate_name"
	KeyReferenceUnset         = "reference.error.no_selection"
	KeyReferenceNotFound      = "reference.error.not_found"
	KeyReferenceRecursion     = "reference.error.recursion"
	KeyMinAboveMax            = "scheme.error.min_above_max"
	KeyRadixRange             = "integer.error.radix_range"
	KeyGroupingRadix          = "integer.error.grouping_radix"
	KeySeparatorLength        = "scheme.error.separator_length"
	KeyDecimalCountNegative   = "decimal.error.decimal_count_negative"
	KeyLengthNegative         = "string.error.length_negative"
	KeyAlphabetEmpty          = "string.error.alphabet_empty"
	KeyWordsEmpty             = "word.error.empty"
	KeyUUIDVersion            = "uuid.error.version"
	KeyArrayMinCount          = "array.error.min_count"
	KeyFixedLengthLength      = "fixed_length.error.length"
	KeyFixedLengthFiller      = "fixed_length.error.filler"
	KeyAffixDanglingEscape    = "affix.error.dangling_escape"
	KeyCapitalizationUnknown  = "capitalization.error.unknown"
	KeyNoCandidates           = "generation.error.no_candidates"
	KeyTimedOut               = "generation.error.timed_out"
	KeyCancelled              = "generation.error.cancelled"
	KeyTemplateUnknown        = "generation.error.template_unknown"
	KeyGenerationFailed       = "generation.error.failed"
	KeyInvalidConfiguration   = "generation.error.invalid"
	KeyRecursionPathSeparator = "reference.recursion.separator"
)

// Messages resolves a message key and its arguments into display text.
type Messages interface {
	Message(key string, args ...any) string
}

// MessagesFunc adapts a function to Messages.
type MessagesFunc func(key string, args ...any) string

// Message implements Messages.
func (f MessagesFunc) Message(key string, args ...any) string {
	return f(key, args...)
}

// Catalogue is a Messages backed by fmt format strings. Unknown keys render
// as the key itself so a missing translation is visible rather than silent.
type Catalogue map[string]string

// Message implements Messages.
func (c Catalogue) Message(key string, args ...any) string {
	format, ok := c[key]
	if !ok {
		return key
	}
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// DefaultMessages is the English catalogue.
var DefaultMessages = Catalogue{
	KeyNameEmpty:              "Templates must have a name.",
	KeyNameDuplicate:          "There are multiple templates with the name '%s'.",
	KeyReferenceUnset:         "Select a template to reference.",
	KeyReferenceNotFound:      "The referenced template cannot be found.",
	KeyReferenceRecursion:     "Found recursion: (%s)",
	KeyMinAboveMax:            "The minimum value should be less than or equal to the maximum value.",
	KeyRadixRange:             "The base should be between %d and %d.",
	KeyGroupingRadix:          "Grouping separators can only be used with base 10.",
	KeySeparatorLength:        "The %s should be exactly one character.",
	KeyDecimalCountNegative:   "The number of decimals should be at least 0.",
	KeyLengthNegative:         "The minimum length should be at least 0.",
	KeyAlphabetEmpty:          "Enter at least one character to generate from.",
	KeyWordsEmpty:             "Enter at least one word.",
	KeyUUIDVersion:            "Unknown UUID version %d.",
	KeyArrayMinCount:          "The minimum count should be at least 1.",
	KeyFixedLengthLength:      "The length should be at least 1.",
	KeyFixedLengthFiller:      "The filler should be exactly one character.",
	KeyAffixDanglingEscape:    "The affix ends with an unfinished escape character.",
	KeyCapitalizationUnknown:  "Unknown capitalization mode '%s'.",
	KeyNoCandidates:           "There is nothing to choose from.",
	KeyTimedOut:               "Timed out while generating data.",
	KeyCancelled:              "Data generation was cancelled.",
	KeyTemplateUnknown:        "No template with identifier '%s' exists.",
	KeyGenerationFailed:       "Failed to generate data: %s",
	KeyInvalidConfiguration:   "%s",
	KeyRecursionPathSeparator: " → ",
}
