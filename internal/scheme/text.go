package scheme

import "strings"

// LookAlikeSymbols are characters that are easily confused with one another.
const LookAlikeSymbols = "0Ol1I|"

// cancelCheckInterval is how many runes a long string grows between context
// checks.
const cancelCheckInterval = 4096

// StringScheme generates strings of random characters drawn from Alphabet.
type StringScheme struct {
	Base
	MinLength        int            `json:"min_length"`
	MaxLength        int            `json:"max_length"`
	Alphabet         string         `json:"alphabet"`
	RemoveLookAlikes bool           `json:"remove_look_alikes"`
	Capitalization   Capitalization `json:"capitalization"`
	Array            ArrayDecorator `json:"array"`
}

// NewStringScheme returns a StringScheme producing 3 to 8 alphanumerics.
func NewStringScheme() *StringScheme {
	return &StringScheme{
		Base:           NewBase(),
		MinLength:      3,
		MaxLength:      8,
		Alphabet:       "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789",
		Capitalization: CapitalizationRetain,
		Array:          NewArrayDecorator(),
	}
}

func (s *StringScheme) Kind() Kind              { return KindString }
func (s *StringScheme) Label() string           { return "String" }
func (s *StringScheme) Decorators() []Decorator { return []Decorator{&s.Array} }

func (s *StringScheme) Validate(env Env) *ValidationError {
	if s.MinLength < 0 {
		return env.invalid(KeyLengthNegative)
	}
	if s.MinLength > s.MaxLength {
		return env.invalid(KeyMinAboveMax)
	}
	if len(s.symbols()) == 0 {
		return env.invalid(KeyAlphabetEmpty)
	}
	if problem := s.Capitalization.validate(env); problem != nil {
		return problem
	}
	return s.Array.Validate(env)
}

func (s *StringScheme) GenerateUndecorated(env Env, count int) ([]string, error) {
	symbols := s.symbols()
	if len(symbols) == 0 {
		return nil, env.failure(KeyNoCandidates)
	}
	out := make([]string, count)
	var b strings.Builder
	for i := range out {
		b.Reset()
		length := env.Rand.IntBetween(s.MinLength, s.MaxLength)
		for j := 0; j < length; j++ {
			if j%cancelCheckInterval == cancelCheckInterval-1 {
				if err := env.Err(); err != nil {
					return nil, err
				}
			}
			b.WriteRune(symbols[env.Rand.IntN(len(symbols))])
		}
		out[i] = b.String()
	}
	return s.Capitalization.transformAll(out, env.Rand), nil
}

// symbols returns the distinct runes of the alphabet in order of first
// appearance, without look-alikes if requested.
func (s *StringScheme) symbols() []rune {
	seen := make(map[rune]struct{})
	var out []rune
	for _, r := range s.Alphabet {
		if _, dup := seen[r]; dup {
			continue
		}
		if s.RemoveLookAlikes && strings.ContainsRune(LookAlikeSymbols, r) {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

func (s *StringScheme) DeepCopy(retainID bool) Scheme {
	cp := *s
	cp.Base = s.Base.copied(retainID)
	cp.Array = s.Array.copy(retainID)
	return &cp
}

// WordScheme picks words from a user-supplied list.
type WordScheme struct {
	Base
	Words          []string       `json:"words"`
	Capitalization Capitalization `json:"capitalization"`
	Affix          AffixDecorator `json:"affix"`
	Array          ArrayDecorator `json:"array"`
}

// NewWordScheme returns a WordScheme over a small default word list.
func NewWordScheme() *WordScheme {
	return &WordScheme{
		Base:           NewBase(),
		Words:          []string{"alpha", "bravo", "charlie", "delta", "echo"},
		Capitalization: CapitalizationRetain,
		Affix:          NewAffixDecorator(""),
		Array:          NewArrayDecorator(),
	}
}

func (s *WordScheme) Kind() Kind              { return KindWord }
func (s *WordScheme) Label() string           { return "Word" }
func (s *WordScheme) Decorators() []Decorator { return []Decorator{&s.Affix, &s.Array} }

func (s *WordScheme) Validate(env Env) *ValidationError {
	if len(s.Words) == 0 {
		return env.invalid(KeyWordsEmpty)
	}
	if problem := s.Capitalization.validate(env); problem != nil {
		return problem
	}
	if problem := s.Affix.Validate(env); problem != nil {
		return problem
	}
	return s.Array.Validate(env)
}

func (s *WordScheme) GenerateUndecorated(env Env, count int) ([]string, error) {
	if len(s.Words) == 0 {
		return nil, env.failure(KeyNoCandidates)
	}
	out := make([]string, count)
	for i := range out {
		out[i] = s.Words[env.Rand.IntN(len(s.Words))]
	}
	return s.Capitalization.transformAll(out, env.Rand), nil
}

func (s *WordScheme) DeepCopy(retainID bool) Scheme {
	cp := *s
	cp.Base = s.Base.copied(retainID)
	cp.Words = append([]string(nil), s.Words...)
	cp.Affix = s.Affix.copy(retainID)
	cp.Array = s.Array.copy(retainID)
	return &cp
}

// LiteralScheme always produces Text. Inside a Template it supplies fixed
// separators such as "-" or "@example.com".
type LiteralScheme struct {
	Base
	Text  string         `json:"text"`
	Affix AffixDecorator `json:"affix"`
	Array ArrayDecorator `json:"array"`
}

// NewLiteralScheme returns a LiteralScheme producing text.
func NewLiteralScheme(text string) *LiteralScheme {
	return &LiteralScheme{
		Base:  NewBase(),
		Text:  text,
		Affix: NewAffixDecorator(""),
		Array: NewArrayDecorator(),
	}
}

func (s *LiteralScheme) Kind() Kind              { return KindLiteral }
func (s *LiteralScheme) Label() string           { return "Literal" }
func (s *LiteralScheme) Decorators() []Decorator { return []Decorator{&s.Affix, &s.Array} }

func (s *LiteralScheme) Validate(env Env) *ValidationError {
	if problem := s.Affix.Validate(env); problem != nil {
		return problem
	}
	return s.Array.Validate(env)
}

func (s *LiteralScheme) GenerateUndecorated(_ Env, count int) ([]string, error) {
	out := make([]string, count)
	for i := range out {
		out[i] = s.Text
	}
	return out, nil
}

func (s *LiteralScheme) DeepCopy(retainID bool) Scheme {
	cp := *s
	cp.Base = s.Base.copied(retainID)
	cp.Affix = s.Affix.copy(retainID)
	cp.Array = s.Array.copy(retainID)
	return &cp
}
