package scheme

import (
	"strings"

	"github.com/google/uuid"
)

// Template is a composite scheme. Every generated value is the concatenation
// of one value from each child, in child order.
type Template struct {
	Base
	Name    string         `json:"name"`
	Schemes []Scheme       `json:"-"`
	Array   ArrayDecorator `json:"array"`
}

// NewTemplate returns a Template with a fresh id owning schemes.
func NewTemplate(name string, schemes ...Scheme) *Template {
	return &Template{
		Base:    NewBase(),
		Name:    name,
		Schemes: schemes,
		Array:   NewArrayDecorator(),
	}
}

func (t *Template) Kind() Kind              { return KindTemplate }
func (t *Template) Label() string           { return t.Name }
func (t *Template) Decorators() []Decorator { return []Decorator{&t.Array} }

// Validate checks the name, then each child in order, then the array
// decorator. Children that are references resolve against env.List.
func (t *Template) Validate(env Env) *ValidationError {
	if strings.TrimSpace(t.Name) == "" {
		return env.invalid(KeyNameEmpty)
	}
	for _, s := range t.Schemes {
		if problem := s.Validate(env); problem != nil {
			return problem
		}
	}
	return t.Array.Validate(env)
}

func (t *Template) GenerateUndecorated(env Env, count int) ([]string, error) {
	columns := make([][]string, len(t.Schemes))
	for i, s := range t.Schemes {
		if err := env.Err(); err != nil {
			return nil, err
		}
		values, err := Generate(env, s, count)
		if err != nil {
			return nil, err
		}
		columns[i] = values
	}

	out := make([]string, count)
	var b strings.Builder
	for i := range out {
		b.Reset()
		for _, column := range columns {
			b.WriteString(column[i])
		}
		out[i] = b.String()
	}
	return out, nil
}

func (t *Template) DeepCopy(retainID bool) Scheme {
	return t.copy(retainID)
}

func (t *Template) copy(retainID bool) *Template {
	cp := *t
	cp.Base = t.Base.copied(retainID)
	cp.Array = t.Array.copy(retainID)
	cp.Schemes = make([]Scheme, len(t.Schemes))
	for i, s := range t.Schemes {
		cp.Schemes[i] = s.DeepCopy(retainID)
	}
	return &cp
}

// CopyFrom replaces t's state, id included, with a deep copy of other.
func (t *Template) CopyFrom(other *Template) {
	*t = *other.copy(true)
}

// IndexOf returns the position of the child with the same id as s, or -1.
func (t *Template) IndexOf(s Scheme) int {
	return t.indexOfID(s.ID())
}

func (t *Template) indexOfID(id uuid.UUID) int {
	for i, child := range t.Schemes {
		if child.ID() == id {
			return i
		}
	}
	return -1
}

// References returns the Template References inside t, including those in
// nested Templates, in depth-first child order.
func (t *Template) References() []*TemplateReference {
	var refs []*TemplateReference
	for _, s := range t.Schemes {
		switch child := s.(type) {
		case *TemplateReference:
			refs = append(refs, child)
		case *Template:
			refs = append(refs, child.References()...)
		}
	}
	return refs
}

// TemplateReference delegates generation to another Template of the same
// TemplateList, looked up by id on every call.
type TemplateReference struct {
	Base
	TemplateID     *uuid.UUID     `json:"template_id,omitempty"`
	Capitalization Capitalization `json:"capitalization"`
	Affix          AffixDecorator `json:"affix"`
	Array          ArrayDecorator `json:"array"`
}

// NewTemplateReference returns a reference to target, which may be nil.
func NewTemplateReference(target *Template) *TemplateReference {
	ref := &TemplateReference{
		Base:           NewBase(),
		Capitalization: CapitalizationRetain,
		Affix:          NewAffixDecorator(""),
		Array:          NewArrayDecorator(),
	}
	if target != nil {
		ref.Point(target.UUID)
	}
	return ref
}

func (r *TemplateReference) Kind() Kind              { return KindReference }
func (r *TemplateReference) Label() string           { return "Reference" }
func (r *TemplateReference) Decorators() []Decorator { return []Decorator{&r.Affix, &r.Array} }

// Point repoints the reference at the template with the given id.
func (r *TemplateReference) Point(id uuid.UUID) {
	r.TemplateID = &id
}

// Target resolves the reference in list. It returns nil when the reference
// is unset or the template does not exist.
func (r *TemplateReference) Target(list *TemplateList) *Template {
	if r.TemplateID == nil || list == nil {
		return nil
	}
	return list.TemplateByID(*r.TemplateID)
}

// Validate runs, in order: selection, resolution, recursion, local
// decoration. It must be re-run against the current list whenever the list
// changes, since the target and the cycle graph change independently.
func (r *TemplateReference) Validate(env Env) *ValidationError {
	if r.TemplateID == nil {
		return env.invalid(KeyReferenceUnset)
	}
	if r.Target(env.List) == nil {
		return env.invalid(KeyReferenceNotFound)
	}
	if cycle := env.List.FindRecursionFrom(r); cycle != nil {
		names := make([]string, len(cycle))
		for i, t := range cycle {
			names[i] = t.Name
		}
		sep := env.messages().Message(KeyRecursionPathSeparator)
		return env.invalid(KeyReferenceRecursion, strings.Join(names, sep))
	}
	if problem := r.Capitalization.validate(env); problem != nil {
		return problem
	}
	if problem := r.Affix.Validate(env); problem != nil {
		return problem
	}
	return r.Array.Validate(env)
}

func (r *TemplateReference) GenerateUndecorated(env Env, count int) ([]string, error) {
	if r.TemplateID == nil {
		return nil, env.failure(KeyReferenceUnset)
	}
	target := r.Target(env.List)
	if target == nil {
		return nil, env.failure(KeyReferenceNotFound)
	}
	values, err := Generate(env, target, count)
	if err != nil {
		return nil, err
	}
	return r.Capitalization.transformAll(values, env.Rand), nil
}

// DeepCopy keeps TemplateID: a reference is about which template, not which
// object.
func (r *TemplateReference) DeepCopy(retainID bool) Scheme {
	cp := *r
	cp.Base = r.Base.copied(retainID)
	if r.TemplateID != nil {
		id := *r.TemplateID
		cp.TemplateID = &id
	}
	cp.Affix = r.Affix.copy(retainID)
	cp.Array = r.Array.copy(retainID)
	return &cp
}
