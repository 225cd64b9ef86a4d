package scheme

import (
	"encoding/json"
	"fmt"

	"github.com/agentic-research/randgen/api"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// ErrUnknownKind is returned when a snapshot names a scheme kind this
// package cannot build.
var ErrUnknownKind = errors.New("unknown scheme kind")

// ToDocument converts l into its persisted form.
func ToDocument(l *TemplateList) (*api.Document, error) {
	doc := &api.Document{
		Version:   api.SchemaVersion,
		UUID:      l.UUID.String(),
		Templates: make([]api.TemplateDoc, 0, len(l.Templates)),
	}
	for _, t := range l.Templates {
		td, err := templateToDoc(t)
		if err != nil {
			return nil, err
		}
		doc.Templates = append(doc.Templates, *td)
	}
	return doc, nil
}

func templateToDoc(t *Template) (*api.TemplateDoc, error) {
	array, err := json.Marshal(&t.Array)
	if err != nil {
		return nil, fmt.Errorf("marshal array of template %q: %w", t.Name, err)
	}
	td := &api.TemplateDoc{UUID: t.UUID.String(), Name: t.Name, Array: array}
	for _, s := range t.Schemes {
		sd := api.SchemeDoc{Kind: string(s.Kind())}
		if child, ok := s.(*Template); ok {
			if sd.Template, err = templateToDoc(child); err != nil {
				return nil, err
			}
		} else if sd.Spec, err = json.Marshal(s); err != nil {
			return nil, fmt.Errorf("marshal %s in template %q: %w", s.Kind(), t.Name, err)
		}
		td.Schemes = append(td.Schemes, sd)
	}
	return td, nil
}

// FromDocument rebuilds a TemplateList from its persisted form. Ids are kept.
// The result is not validated.
func FromDocument(doc *api.Document) (*TemplateList, error) {
	if doc == nil {
		return nil, errors.New("nil document")
	}
	l := &TemplateList{Base: NewBase()}
	if doc.UUID != "" {
		id, err := uuid.Parse(doc.UUID)
		if err != nil {
			return nil, fmt.Errorf("parse list uuid: %w", err)
		}
		l.UUID = id
	}
	for i := range doc.Templates {
		t, err := templateFromDoc(&doc.Templates[i])
		if err != nil {
			return nil, err
		}
		l.Templates = append(l.Templates, t)
	}
	return l, nil
}

func templateFromDoc(td *api.TemplateDoc) (*Template, error) {
	t := NewTemplate(td.Name)
	if td.UUID != "" {
		id, err := uuid.Parse(td.UUID)
		if err != nil {
			return nil, fmt.Errorf("parse uuid of template %q: %w", td.Name, err)
		}
		t.UUID = id
	}
	if len(td.Array) > 0 {
		if err := json.Unmarshal(td.Array, &t.Array); err != nil {
			return nil, fmt.Errorf("decode array of template %q: %w", td.Name, err)
		}
	}
	for _, sd := range td.Schemes {
		s, err := schemeFromDoc(sd)
		if err != nil {
			return nil, fmt.Errorf("template %q: %w", td.Name, err)
		}
		t.Schemes = append(t.Schemes, s)
	}
	return t, nil
}

func schemeFromDoc(sd api.SchemeDoc) (Scheme, error) {
	var s Scheme
	switch Kind(sd.Kind) {
	case KindTemplate:
		if sd.Template == nil {
			return nil, fmt.Errorf("template child without body")
		}
		return templateFromDoc(sd.Template)
	case KindInteger:
		s = NewIntegerScheme()
	case KindDecimal:
		s = NewDecimalScheme()
	case KindString:
		s = NewStringScheme()
	case KindWord:
		s = NewWordScheme()
	case KindUUID:
		s = NewUUIDScheme()
	case KindLiteral:
		s = NewLiteralScheme("")
	case KindReference:
		s = NewTemplateReference(nil)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, sd.Kind)
	}
	if len(sd.Spec) > 0 {
		if err := json.Unmarshal(sd.Spec, s); err != nil {
			return nil, fmt.Errorf("decode %s: %w", sd.Kind, err)
		}
	}
	return s, nil
}

// New returns a scheme of the given kind with default settings. Decorator
// kinds are not standalone schemes and yield ErrUnknownKind.
func New(kind Kind) (Scheme, error) {
	switch kind {
	case KindTemplate:
		return NewTemplate(""), nil
	case KindInteger:
		return NewIntegerScheme(), nil
	case KindDecimal:
		return NewDecimalScheme(), nil
	case KindString:
		return NewStringScheme(), nil
	case KindWord:
		return NewWordScheme(), nil
	case KindUUID:
		return NewUUIDScheme(), nil
	case KindLiteral:
		return NewLiteralScheme(""), nil
	case KindReference:
		return NewTemplateReference(nil), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}
