package scheme

import (
	"strings"
	"unicode/utf8"
)

// Decorator is a scheme that wraps another generating function. A decorator
// has no meaning on its own; it is always bound to the generator of the
// scheme that owns it.
type Decorator interface {
	Scheme
	// Enabled reports whether the decorator modifies its input. A disabled
	// decorator passes values through unchanged.
	Enabled() bool
	// Decorate produces count values by transforming the output of inner.
	Decorate(env Env, inner Generator, count int) ([]string, error)
}

// Bind returns the generating function of d wired to inner. The returned
// Generator validates d on every call, passes through when d is disabled,
// and otherwise applies d and then d's own decorators.
//
// Binding a decorator to a nil generator is a programming error and panics.
func Bind(env Env, d Decorator, inner Generator) Generator {
	if inner == nil {
		contractViolation("%s decorator %s bound without a generator", d.Kind(), d.ID())
	}
	return func(count int) ([]string, error) {
		if problem := d.Validate(env); problem != nil {
			return nil, env.failureFrom(problem)
		}
		if !d.Enabled() {
			return inner(count)
		}
		base := func(n int) ([]string, error) {
			return d.Decorate(env, inner, n)
		}
		return chain(env, base, d.Decorators())(count)
	}
}

// AffixDecorator surrounds every value with a prefix and a suffix described
// by Descriptor. An unescaped '@' marks where the value goes; a backslash
// escapes the next character. A descriptor without a placeholder is used as
// both prefix and suffix, so `"` quotes the value.
type AffixDecorator struct {
	Base
	Descriptor string `json:"descriptor"`
}

// NewAffixDecorator returns an affix decorator with a fresh id.
func NewAffixDecorator(descriptor string) AffixDecorator {
	return AffixDecorator{Base: NewBase(), Descriptor: descriptor}
}

func (d *AffixDecorator) Kind() Kind              { return KindAffix }
func (d *AffixDecorator) Label() string           { return "Affix" }
func (d *AffixDecorator) Decorators() []Decorator { return nil }
func (d *AffixDecorator) Enabled() bool           { return true }

func (d *AffixDecorator) Validate(env Env) *ValidationError {
	if _, _, ok := d.split(); !ok {
		return env.invalid(KeyAffixDanglingEscape)
	}
	return nil
}

func (d *AffixDecorator) GenerateUndecorated(Env, int) ([]string, error) {
	return undecorated(KindAffix)
}

func (d *AffixDecorator) Decorate(env Env, inner Generator, count int) ([]string, error) {
	values, err := inner(count)
	if err != nil {
		return nil, err
	}
	prefix, suffix, _ := d.split()
	if prefix == "" && suffix == "" {
		return values, nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = prefix + v + suffix
	}
	return out, nil
}

func (d *AffixDecorator) DeepCopy(retainID bool) Scheme {
	cp := d.copy(retainID)
	return &cp
}

func (d *AffixDecorator) copy(retainID bool) AffixDecorator {
	cp := *d
	cp.Base = d.Base.copied(retainID)
	return cp
}

// split parses the descriptor. ok is false when the descriptor ends in a
// lone escape character.
func (d *AffixDecorator) split() (prefix, suffix string, ok bool) {
	var head, tail strings.Builder
	cur := &head
	placeholder := false
	escaped := false
	for _, r := range d.Descriptor {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '@' && !placeholder:
			placeholder = true
			cur = &tail
		default:
			cur.WriteRune(r)
		}
	}
	if escaped {
		return "", "", false
	}
	if !placeholder {
		return head.String(), head.String(), true
	}
	return head.String(), tail.String(), true
}

// ArrayDecorator joins a random number of inner values into one output, for
// example "[1, 5, 3]".
type ArrayDecorator struct {
	Base
	IsEnabled        bool           `json:"enabled"`
	MinCount         int            `json:"min_count"`
	MaxCount         int            `json:"max_count"`
	SeparatorEnabled bool           `json:"separator_enabled"`
	Separator        string         `json:"separator"`
	Affix            AffixDecorator `json:"affix"`
}

// NewArrayDecorator returns a disabled array decorator with the usual
// defaults: three elements, ", " separator and square brackets.
func NewArrayDecorator() ArrayDecorator {
	return ArrayDecorator{
		Base:             NewBase(),
		MinCount:         3,
		MaxCount:         3,
		SeparatorEnabled: true,
		Separator:        ", ",
		Affix:            NewAffixDecorator("[@]"),
	}
}

func (d *ArrayDecorator) Kind() Kind              { return KindArray }
func (d *ArrayDecorator) Label() string           { return "Array" }
func (d *ArrayDecorator) Decorators() []Decorator { return []Decorator{&d.Affix} }
func (d *ArrayDecorator) Enabled() bool           { return d.IsEnabled }

func (d *ArrayDecorator) Validate(env Env) *ValidationError {
	if !d.IsEnabled {
		return nil
	}
	if d.MinCount < 1 {
		return env.invalid(KeyArrayMinCount)
	}
	if d.MinCount > d.MaxCount {
		return env.invalid(KeyMinAboveMax)
	}
	return d.Affix.Validate(env)
}

func (d *ArrayDecorator) GenerateUndecorated(Env, int) ([]string, error) {
	return undecorated(KindArray)
}

func (d *ArrayDecorator) Decorate(env Env, inner Generator, count int) ([]string, error) {
	sizes := make([]int, count)
	total := 0
	for i := range sizes {
		sizes[i] = env.Rand.IntBetween(d.MinCount, d.MaxCount)
		total += sizes[i]
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	parts, err := inner(total)
	if err != nil {
		return nil, err
	}

	separator := ""
	if d.SeparatorEnabled {
		separator = d.Separator
	}
	out := make([]string, count)
	offset := 0
	for i, size := range sizes {
		out[i] = strings.Join(parts[offset:offset+size], separator)
		offset += size
	}
	return out, nil
}

func (d *ArrayDecorator) DeepCopy(retainID bool) Scheme {
	cp := d.copy(retainID)
	return &cp
}

func (d *ArrayDecorator) copy(retainID bool) ArrayDecorator {
	cp := *d
	cp.Base = d.Base.copied(retainID)
	cp.Affix = d.Affix.copy(retainID)
	return cp
}

// FixedLengthDecorator pads values on the left with Filler, or truncates
// them, so that every value is exactly Length runes long.
type FixedLengthDecorator struct {
	Base
	IsEnabled bool   `json:"enabled"`
	Length    int    `json:"length"`
	Filler    string `json:"filler"`
}

// NewFixedLengthDecorator returns a disabled decorator padding with '0'.
func NewFixedLengthDecorator() FixedLengthDecorator {
	return FixedLengthDecorator{Base: NewBase(), Length: 3, Filler: "0"}
}

func (d *FixedLengthDecorator) Kind() Kind              { return KindFixedLength }
func (d *FixedLengthDecorator) Label() string           { return "Fixed length" }
func (d *FixedLengthDecorator) Decorators() []Decorator { return nil }
func (d *FixedLengthDecorator) Enabled() bool           { return d.IsEnabled }

func (d *FixedLengthDecorator) Validate(env Env) *ValidationError {
	if !d.IsEnabled {
		return nil
	}
	if d.Length < 1 {
		return env.invalid(KeyFixedLengthLength)
	}
	if utf8.RuneCountInString(d.Filler) != 1 {
		return env.invalid(KeyFixedLengthFiller)
	}
	return nil
}

func (d *FixedLengthDecorator) GenerateUndecorated(Env, int) ([]string, error) {
	return undecorated(KindFixedLength)
}

func (d *FixedLengthDecorator) Decorate(env Env, inner Generator, count int) ([]string, error) {
	values, err := inner(count)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(values))
	for i, v := range values {
		runes := []rune(v)
		switch {
		case len(runes) > d.Length:
			out[i] = string(runes[len(runes)-d.Length:])
		case len(runes) < d.Length:
			out[i] = strings.Repeat(d.Filler, d.Length-len(runes)) + v
		default:
			out[i] = v
		}
	}
	return out, nil
}

func (d *FixedLengthDecorator) DeepCopy(retainID bool) Scheme {
	cp := d.copy(retainID)
	return &cp
}

func (d *FixedLengthDecorator) copy(retainID bool) FixedLengthDecorator {
	cp := *d
	cp.Base = d.Base.copied(retainID)
	return cp
}
