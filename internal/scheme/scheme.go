// Package scheme implements composable random-data schemes: leaf generators,
// decorators that wrap a generating function, Templates that concatenate
// their children positionally, and Template References that delegate to
// another Template in the same TemplateList.
//
// Generation always goes through Generate, which validates the scheme and
// folds its decorators around the undecorated generator. Everything a call
// needs (randomness, reference namespace, cancellation, localization) is
// passed explicitly in an Env.
package scheme

import (
	"context"

	"github.com/agentic-research/randgen/internal/random"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
)

// Kind identifies a concrete scheme type. It is also the discriminator used
// in persisted snapshots.
type Kind string

const (
	KindInteger     Kind = "integer"
	KindDecimal     Kind = "decimal"
	KindString      Kind = "string"
	KindWord        Kind = "word"
	KindUUID        Kind = "uuid"
	KindLiteral     Kind = "literal"
	KindTemplate    Kind = "template"
	KindReference   Kind = "reference"
	KindAffix       Kind = "affix"
	KindArray       Kind = "array"
	KindFixedLength Kind = "fixed_length"
)

// Scheme is the unit of generation.
type Scheme interface {
	// ID is the stable identity of the scheme. It survives DeepCopy(true).
	ID() uuid.UUID
	Kind() Kind
	// Label is the display name: the user-chosen name for Templates, the
	// kind's name otherwise.
	Label() string
	// Decorators lists the decorators owned by this scheme, innermost first.
	Decorators() []Decorator
	// Validate returns nil if the scheme can generate data in env. It has
	// no side effects.
	Validate(env Env) *ValidationError
	// GenerateUndecorated produces count values before decoration. Callers
	// should use Generate instead.
	GenerateUndecorated(env Env, count int) ([]string, error)
	// DeepCopy returns a structurally independent copy. With retainID false
	// every nested scheme gets a fresh id.
	DeepCopy(retainID bool) Scheme
}

// Generator produces exactly count values.
type Generator func(count int) ([]string, error)

// Env is the explicit context of one validation or generation pass.
type Env struct {
	// Context is checked between expensive steps; a done context aborts
	// generation with a GenerationError.
	Context context.Context
	// Rand is shared by every scheme taking part in the call.
	Rand *random.Source
	// List is the namespace Template References resolve against. It may be
	// nil, in which case every reference is unresolved.
	List *TemplateList
	// Messages localizes validation and generation errors.
	Messages Messages
}

// NewEnv returns an Env for list seeded with seed.
func NewEnv(ctx context.Context, list *TemplateList, seed uint64) Env {
	return Env{Context: ctx, Rand: random.New(seed), List: list, Messages: DefaultMessages}
}

func (env Env) normalized() Env {
	if env.Context == nil {
		env.Context = context.Background()
	}
	if env.Rand == nil {
		env.Rand = random.NewRandom()
	}
	if env.Messages == nil {
		env.Messages = DefaultMessages
	}
	return env
}

func (env Env) messages() Messages {
	if env.Messages == nil {
		return DefaultMessages
	}
	return env.Messages
}

// Err returns a GenerationError if env's context is done.
func (env Env) Err() error {
	if env.Context == nil {
		return nil
	}
	switch env.Context.Err() {
	case nil:
		return nil
	case context.DeadlineExceeded:
		genErr := env.failure(KeyTimedOut)
		genErr.cause = context.DeadlineExceeded
		return genErr
	default:
		genErr := env.failure(KeyCancelled)
		genErr.cause = env.Context.Err()
		return genErr
	}
}

// Generate validates s and returns count decorated values. Validation
// problems and runtime failures are reported as *GenerationError; no partial
// output is returned.
func Generate(env Env, s Scheme, count int) ([]string, error) {
	if count < 0 {
		contractViolation("generate %s: count must be non-negative, got %d", s.Kind(), count)
	}
	env = env.normalized()
	if err := env.Err(); err != nil {
		return nil, err
	}
	if problem := s.Validate(env); problem != nil {
		return nil, env.failureFrom(problem)
	}

	base := func(n int) ([]string, error) {
		return s.GenerateUndecorated(env, n)
	}
	out, err := chain(env, base, s.Decorators())(count)
	if err != nil {
		return nil, env.wrapFailure(err)
	}
	if len(out) != count {
		contractViolation("generate %s: produced %d values, want %d", s.Kind(), len(out), count)
	}
	return out, nil
}

// chain folds decorators around base in ascending order, so decorators[0]
// wraps base directly and every later decorator wraps the previous one.
func chain(env Env, base Generator, decorators []Decorator) Generator {
	gen := base
	for _, d := range decorators {
		gen = Bind(env, d, gen)
	}
	return gen
}

// SameEntity reports whether a and b are the same entity, i.e. share an id,
// regardless of their configuration.
func SameEntity(a, b Scheme) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID() == b.ID()
}

// Equal reports whether a and b have identical persisted state, ids
// included. It is the change-detection comparison used by editors.
func Equal(a, b Scheme) bool {
	return cmp.Equal(a, b, cmpopts.EquateEmpty())
}

// Base carries the identity shared by every scheme.
type Base struct {
	UUID uuid.UUID `json:"uuid"`
}

// NewBase returns a Base with a fresh id.
func NewBase() Base {
	return Base{UUID: uuid.New()}
}

// ID returns the scheme's identity.
func (b *Base) ID() uuid.UUID {
	return b.UUID
}

// copied returns b unchanged when retainID is true and with a fresh id
// otherwise.
func (b Base) copied(retainID bool) Base {
	if retainID {
		return b
	}
	return NewBase()
}

// undecorated is the GenerateUndecorated of a scheme that has nothing of its
// own to produce. Decorators hit it only when used standalone, which is a
// wiring bug.
func undecorated(kind Kind) ([]string, error) {
	contractViolation("%s decorator used without a generator", kind)
	return nil, nil
}
