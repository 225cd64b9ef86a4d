package scheme

import (
	"strings"

	"github.com/google/uuid"
)

// UUIDScheme generates RFC 9562 UUIDs. Version 4 draws all of its bits from
// the Env's Source and is reproducible per seed; version 7 embeds the
// current time.
type UUIDScheme struct {
	Base
	Version   int            `json:"version"`
	Uppercase bool           `json:"uppercase"`
	AddDashes bool           `json:"add_dashes"`
	Affix     AffixDecorator `json:"affix"`
	Array     ArrayDecorator `json:"array"`
}

// SupportedUUIDVersions lists the versions UUIDScheme can generate.
var SupportedUUIDVersions = []int{4, 7}

// NewUUIDScheme returns a UUIDScheme generating dashed, lowercase v4 UUIDs
// wrapped in double quotes.
func NewUUIDScheme() *UUIDScheme {
	return &UUIDScheme{
		Base:      NewBase(),
		Version:   4,
		AddDashes: true,
		Affix:     NewAffixDecorator(`"`),
		Array:     NewArrayDecorator(),
	}
}

func (s *UUIDScheme) Kind() Kind              { return KindUUID }
func (s *UUIDScheme) Label() string           { return "UUID" }
func (s *UUIDScheme) Decorators() []Decorator { return []Decorator{&s.Affix, &s.Array} }

func (s *UUIDScheme) Validate(env Env) *ValidationError {
	supported := false
	for _, v := range SupportedUUIDVersions {
		supported = supported || v == s.Version
	}
	if !supported {
		return env.invalid(KeyUUIDVersion, s.Version)
	}
	if problem := s.Affix.Validate(env); problem != nil {
		return problem
	}
	return s.Array.Validate(env)
}

func (s *UUIDScheme) GenerateUndecorated(env Env, count int) ([]string, error) {
	out := make([]string, count)
	for i := range out {
		var id uuid.UUID
		var err error
		switch s.Version {
		case 7:
			id, err = uuid.NewV7FromReader(env.Rand)
		default:
			id, err = uuid.NewRandomFromReader(env.Rand)
		}
		if err != nil {
			return nil, err
		}

		text := id.String()
		if !s.AddDashes {
			text = strings.ReplaceAll(text, "-", "")
		}
		if s.Uppercase {
			text = strings.ToUpper(text)
		}
		out[i] = text
	}
	return out, nil
}

func (s *UUIDScheme) DeepCopy(retainID bool) Scheme {
	cp := *s
	cp.Base = s.Base.copied(retainID)
	cp.Affix = s.Affix.copy(retainID)
	cp.Array = s.Array.copy(retainID)
	return &cp
}
