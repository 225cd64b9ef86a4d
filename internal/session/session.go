// Package session implements the editing lifecycle of a TemplateList: a
// canonical, applied list and a working copy that is edited through a tree
// model, previewed, validated and finally applied back.
package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/agentic-research/randgen/internal/random"
	"github.com/agentic-research/randgen/internal/scheme"
	"github.com/agentic-research/randgen/internal/store"
	"github.com/agentic-research/randgen/internal/tree"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

const defaultPreviewCacheSize = 128

type previewKey struct {
	template uuid.UUID
	seed     uint64
	count    int
}

// Session owns one canonical list and its working copy.
type Session struct {
	canonical *HotSwap
	working   *scheme.TemplateList
	model     *tree.Model
	store     store.Store
	previews  *lru.Cache[previewKey, []string]
	timeout   time.Duration
	messages  scheme.Messages
	log       *zap.SugaredLogger
}

// Option configures a Session.
type Option func(*Session)

// WithStore makes Apply persist to st.
func WithStore(st store.Store) Option {
	return func(s *Session) { s.store = st }
}

// WithTimeout bounds Preview and Insert.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) { s.timeout = d }
}

// WithMessages localizes validation and generation errors.
func WithMessages(m scheme.Messages) Option {
	return func(s *Session) { s.messages = m }
}

// WithLogger sets the logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Session) { s.log = l }
}

// New starts a session over list, which becomes the canonical list.
func New(list *scheme.TemplateList, opts ...Option) (*Session, error) {
	previews, err := lru.New[previewKey, []string](defaultPreviewCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create preview cache: %w", err)
	}
	s := &Session{
		canonical: NewHotSwap(list),
		previews:  previews,
		timeout:   scheme.DefaultTimeout,
		messages:  scheme.DefaultMessages,
		log:       zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.working = list.DeepCopy(true)
	s.model = tree.New(s.working)
	s.model.AddListener(s)
	return s, nil
}

// Open loads the canonical list from st, falling back to the default list
// when st is empty. Apply persists to st.
func Open(ctx context.Context, st store.Store, opts ...Option) (*Session, error) {
	list := scheme.DefaultTemplateList()
	doc, err := st.Load(ctx)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("load templates: %w", err)
	default:
		if list, err = scheme.FromDocument(doc); err != nil {
			return nil, fmt.Errorf("decode templates: %w", err)
		}
	}
	return New(list, append([]Option{WithStore(st)}, opts...)...)
}

// Canonical returns the applied list. It must not be modified.
func (s *Session) Canonical() *scheme.TemplateList {
	return s.canonical.Current()
}

// Working returns the list being edited.
func (s *Session) Working() *scheme.TemplateList {
	return s.working
}

// Model returns the tree model over the working list. Structural edits and
// NodeChanged notifications should go through it so previews stay fresh.
func (s *Session) Model() *tree.Model {
	return s.model
}

// TreeChanged implements tree.Listener.
func (s *Session) TreeChanged(e tree.Event) {
	s.previews.Purge()
	s.log.Debugw("tree changed", "kind", e.Kind.String(), "parent", e.Parent.Label())
}

// Reset discards every edit, restoring the working list from the canonical
// one.
func (s *Session) Reset() {
	s.working.CopyFrom(s.Canonical())
	s.model.Reload(s.working)
}

// IsModified reports whether the working list differs from the canonical
// list in any persisted field.
func (s *Session) IsModified() bool {
	return !s.Canonical().Equal(s.working)
}

// Validate reports the first problem of the working list.
func (s *Session) Validate() *scheme.ValidationError {
	return s.working.Validate(s.env(context.Background(), 0))
}

// Apply validates the working list, persists it and makes it canonical. On
// any error the canonical list is unchanged.
func (s *Session) Apply(ctx context.Context) error {
	if problem := s.Validate(); problem != nil {
		return problem
	}
	next := s.working.DeepCopy(true)
	if s.store != nil {
		doc, err := scheme.ToDocument(next)
		if err != nil {
			return fmt.Errorf("snapshot templates: %w", err)
		}
		if err := s.store.Save(ctx, doc); err != nil {
			return fmt.Errorf("save templates: %w", err)
		}
	}
	s.canonical.Swap(next)
	s.log.Infow("applied templates", "templates", len(next.Templates))
	return nil
}

// Preview generates count values of a working-list template with a fixed
// seed. Results are cached until the tree changes; callers own the returned
// slice.
func (s *Session) Preview(ctx context.Context, templateID uuid.UUID, seed uint64, count int) ([]string, error) {
	key := previewKey{template: templateID, seed: seed, count: count}
	if values, ok := s.previews.Get(key); ok {
		return slices.Clone(values), nil
	}
	values, err := s.generate(ctx, s.working, templateID, seed, count)
	if err != nil {
		return nil, err
	}
	s.previews.Add(key, values)
	return slices.Clone(values), nil
}

// Insert generates count values of a canonical template with a fresh seed,
// one per cursor of the caller.
func (s *Session) Insert(ctx context.Context, templateID uuid.UUID, count int) ([]string, error) {
	return s.Generate(ctx, templateID, random.NewRandom().Seed(), count)
}

// Generate produces count values of a canonical template from seed.
func (s *Session) Generate(ctx context.Context, templateID uuid.UUID, seed uint64, count int) ([]string, error) {
	return s.generate(ctx, s.Canonical(), templateID, seed, count)
}

func (s *Session) generate(ctx context.Context, list *scheme.TemplateList, templateID uuid.UUID, seed uint64, count int) ([]string, error) {
	env := s.env(ctx, seed)
	env.List = list
	t := list.TemplateByID(templateID)
	if t == nil {
		_, err := list.Generate(env, templateID, count)
		return nil, err
	}
	start := time.Now()
	values, err := scheme.GenerateWithin(env, t, count, s.timeout)
	if err != nil {
		s.log.Warnw("generation failed", "template", t.Name, "error", err)
		return nil, err
	}
	s.log.Debugw("generated", "template", t.Name, "count", count, "seed", seed, "took", time.Since(start))
	return values, nil
}

func (s *Session) env(ctx context.Context, seed uint64) scheme.Env {
	env := scheme.NewEnv(ctx, s.working, seed)
	env.Messages = s.messages
	return env
}
