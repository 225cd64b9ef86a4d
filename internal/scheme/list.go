package scheme

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
)

// TemplateList is the root aggregate: an ordered set of uniquely named
// Templates and the namespace Template References resolve in.
type TemplateList struct {
	Base
	Templates []*Template `json:"-"`
}

// NewTemplateList returns a list owning templates.
func NewTemplateList(templates ...*Template) *TemplateList {
	return &TemplateList{Base: NewBase(), Templates: templates}
}

// DefaultTemplateList returns the starter list: one template per leaf kind.
func DefaultTemplateList() *TemplateList {
	return NewTemplateList(
		NewTemplate("Integer", NewIntegerScheme()),
		NewTemplate("Decimal", NewDecimalScheme()),
		NewTemplate("String", NewStringScheme()),
		NewTemplate("Word", NewWordScheme()),
		NewTemplate("UUID", NewUUIDScheme()),
	)
}

// TemplateByID returns the template with the given id, or nil.
func (l *TemplateList) TemplateByID(id uuid.UUID) *Template {
	if i := l.IndexOf(id); i >= 0 {
		return l.Templates[i]
	}
	return nil
}

// TemplateByName returns the first template called name, or nil.
func (l *TemplateList) TemplateByName(name string) *Template {
	if l == nil {
		return nil
	}
	for _, t := range l.Templates {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// IndexOf returns the position of the template with the given id, or -1.
func (l *TemplateList) IndexOf(id uuid.UUID) int {
	if l == nil {
		return -1
	}
	for i, t := range l.Templates {
		if t.UUID == id {
			return i
		}
	}
	return -1
}

// ParentOf returns the template that directly owns s, or nil.
func (l *TemplateList) ParentOf(s Scheme) *Template {
	if l == nil {
		return nil
	}
	for _, t := range l.Templates {
		if t.IndexOf(s) >= 0 {
			return t
		}
	}
	return nil
}

// Validate reports the first problem in a fixed order: duplicate names
// first, then each template in list order. References are resolved against
// l regardless of env.List.
func (l *TemplateList) Validate(env Env) *ValidationError {
	env.List = l
	seen := make(map[string]struct{}, len(l.Templates))
	for _, t := range l.Templates {
		if _, dup := seen[t.Name]; dup {
			return env.invalid(KeyNameDuplicate, t.Name)
		}
		seen[t.Name] = struct{}{}
	}
	for _, t := range l.Templates {
		if problem := t.Validate(env); problem != nil {
			return problem
		}
	}
	return nil
}

// Generate produces count values of the template with the given id, using l
// as the reference namespace.
func (l *TemplateList) Generate(env Env, id uuid.UUID, count int) ([]string, error) {
	env.List = l
	t := l.TemplateByID(id)
	if t == nil {
		return nil, env.failure(KeyTemplateUnknown, id.String())
	}
	return Generate(env, t, count)
}

// DeepCopy returns an independent copy. With retainID false every template
// and scheme gets a fresh id, and references to templates inside the list
// are repointed at the copies.
func (l *TemplateList) DeepCopy(retainID bool) *TemplateList {
	cp := &TemplateList{Base: l.Base.copied(retainID), Templates: make([]*Template, len(l.Templates))}
	renamed := make(map[uuid.UUID]uuid.UUID, len(l.Templates))
	for i, t := range l.Templates {
		cp.Templates[i] = t.copy(retainID)
		renamed[t.UUID] = cp.Templates[i].UUID
	}
	if !retainID {
		for _, t := range cp.Templates {
			for _, ref := range t.References() {
				if ref.TemplateID == nil {
					continue
				}
				if id, ok := renamed[*ref.TemplateID]; ok {
					ref.Point(id)
				}
			}
		}
	}
	return cp
}

// CopyFrom replaces l's state, ids included, with a deep copy of other.
func (l *TemplateList) CopyFrom(other *TemplateList) {
	*l = *other.DeepCopy(true)
}

// Equal reports whether l and other hold identical persisted state.
func (l *TemplateList) Equal(other *TemplateList) bool {
	if l == nil || other == nil {
		return l == other
	}
	return l.UUID == other.UUID && cmp.Equal(l.Templates, other.Templates, cmpopts.EquateEmpty())
}
