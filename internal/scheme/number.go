package scheme

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	minRadix = 2
	maxRadix = 36
)

// IntegerScheme generates integers in [MinValue, MaxValue].
type IntegerScheme struct {
	Base
	MinValue                 int64                `json:"min_value"`
	MaxValue                 int64                `json:"max_value"`
	Radix                    int                  `json:"radix"`
	Uppercase                bool                 `json:"uppercase"`
	GroupingSeparatorEnabled bool                 `json:"grouping_separator_enabled"`
	GroupingSeparator        string               `json:"grouping_separator"`
	FixedLength              FixedLengthDecorator `json:"fixed_length"`
	Affix                    AffixDecorator       `json:"affix"`
	Array                    ArrayDecorator       `json:"array"`
}

// NewIntegerScheme returns an IntegerScheme generating 0 to 1000 in base 10.
func NewIntegerScheme() *IntegerScheme {
	return &IntegerScheme{
		Base:              NewBase(),
		MinValue:          0,
		MaxValue:          1000,
		Radix:             10,
		GroupingSeparator: ",",
		FixedLength:       NewFixedLengthDecorator(),
		Affix:             NewAffixDecorator(""),
		Array:             NewArrayDecorator(),
	}
}

func (s *IntegerScheme) Kind() Kind    { return KindInteger }
func (s *IntegerScheme) Label() string { return "Integer" }

func (s *IntegerScheme) Decorators() []Decorator {
	return []Decorator{&s.FixedLength, &s.Affix, &s.Array}
}

func (s *IntegerScheme) Validate(env Env) *ValidationError {
	if s.MinValue > s.MaxValue {
		return env.invalid(KeyMinAboveMax)
	}
	if s.Radix < minRadix || s.Radix > maxRadix {
		return env.invalid(KeyRadixRange, minRadix, maxRadix)
	}
	if s.GroupingSeparatorEnabled {
		if s.Radix != 10 {
			return env.invalid(KeyGroupingRadix)
		}
		if utf8.RuneCountInString(s.GroupingSeparator) != 1 {
			return env.invalid(KeySeparatorLength, "grouping separator")
		}
	}
	for _, d := range s.Decorators() {
		if problem := d.Validate(env); problem != nil {
			return problem
		}
	}
	return nil
}

func (s *IntegerScheme) GenerateUndecorated(env Env, count int) ([]string, error) {
	out := make([]string, count)
	for i := range out {
		out[i] = s.format(env.Rand.Int64Between(s.MinValue, s.MaxValue))
	}
	return out, nil
}

func (s *IntegerScheme) format(v int64) string {
	text := strconv.FormatInt(v, s.Radix)
	if s.Uppercase {
		text = strings.ToUpper(text)
	}
	if s.Radix == 10 && s.GroupingSeparatorEnabled {
		text = groupDigits(text, s.GroupingSeparator)
	}
	return text
}

func (s *IntegerScheme) DeepCopy(retainID bool) Scheme {
	cp := *s
	cp.Base = s.Base.copied(retainID)
	cp.FixedLength = s.FixedLength.copy(retainID)
	cp.Affix = s.Affix.copy(retainID)
	cp.Array = s.Array.copy(retainID)
	return &cp
}

// DecimalScheme generates decimal numbers in [MinValue, MaxValue].
type DecimalScheme struct {
	Base
	MinValue                 float64        `json:"min_value"`
	MaxValue                 float64        `json:"max_value"`
	DecimalCount             int            `json:"decimal_count"`
	ShowTrailingZeros        bool           `json:"show_trailing_zeros"`
	DecimalSeparator         string         `json:"decimal_separator"`
	GroupingSeparatorEnabled bool           `json:"grouping_separator_enabled"`
	GroupingSeparator        string         `json:"grouping_separator"`
	Affix                    AffixDecorator `json:"affix"`
	Array                    ArrayDecorator `json:"array"`
}

// NewDecimalScheme returns a DecimalScheme generating 0 to 1000 with two
// decimals.
func NewDecimalScheme() *DecimalScheme {
	return &DecimalScheme{
		Base:              NewBase(),
		MinValue:          0,
		MaxValue:          1000,
		DecimalCount:      2,
		ShowTrailingZeros: true,
		DecimalSeparator:  ".",
		GroupingSeparator: ",",
		Affix:             NewAffixDecorator(""),
		Array:             NewArrayDecorator(),
	}
}

func (s *DecimalScheme) Kind() Kind              { return KindDecimal }
func (s *DecimalScheme) Label() string           { return "Decimal" }
func (s *DecimalScheme) Decorators() []Decorator { return []Decorator{&s.Affix, &s.Array} }

func (s *DecimalScheme) Validate(env Env) *ValidationError {
	if s.MinValue > s.MaxValue {
		return env.invalid(KeyMinAboveMax)
	}
	if s.DecimalCount < 0 {
		return env.invalid(KeyDecimalCountNegative)
	}
	if utf8.RuneCountInString(s.DecimalSeparator) != 1 {
		return env.invalid(KeySeparatorLength, "decimal separator")
	}
	if s.GroupingSeparatorEnabled && utf8.RuneCountInString(s.GroupingSeparator) != 1 {
		return env.invalid(KeySeparatorLength, "grouping separator")
	}
	if problem := s.Affix.Validate(env); problem != nil {
		return problem
	}
	return s.Array.Validate(env)
}

func (s *DecimalScheme) GenerateUndecorated(env Env, count int) ([]string, error) {
	out := make([]string, count)
	for i := range out {
		out[i] = s.format(env.Rand.Float64Between(s.MinValue, s.MaxValue))
	}
	return out, nil
}

func (s *DecimalScheme) format(v float64) string {
	text := strconv.FormatFloat(v, 'f', s.DecimalCount, 64)
	whole, frac, hasFrac := strings.Cut(text, ".")
	if hasFrac && !s.ShowTrailingZeros {
		frac = strings.TrimRight(frac, "0")
	}
	if s.GroupingSeparatorEnabled {
		whole = groupDigits(whole, s.GroupingSeparator)
	}
	if frac == "" {
		return whole
	}
	return whole + s.DecimalSeparator + frac
}

func (s *DecimalScheme) DeepCopy(retainID bool) Scheme {
	cp := *s
	cp.Base = s.Base.copied(retainID)
	cp.Affix = s.Affix.copy(retainID)
	cp.Array = s.Array.copy(retainID)
	return &cp
}

// groupDigits inserts sep between every group of three digits of a base-10
// number, keeping a leading sign in place.
func groupDigits(digits, sep string) string {
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if len(digits) <= 3 {
		return sign + digits
	}
	var b strings.Builder
	b.WriteString(sign)
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
