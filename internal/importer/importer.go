// Package importer builds Templates out of JSON documents. A JSONPath
// selector picks the interesting values: persisted templates are decoded as
// they are, any other objects are treated as sample records and a Template
// producing similar records is inferred from them.
package importer

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/agentic-research/randgen/api"
	"github.com/agentic-research/randgen/internal/scheme"
	"github.com/google/uuid"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// DefaultSelector matches the template array of a snapshot document.
const DefaultSelector = "$.templates[*]"

// maxWords caps how many distinct strings a WordScheme keeps per field.
const maxWords = 256

// Options controls an import.
type Options struct {
	// Selector is a JSONPath expression. Empty means DefaultSelector.
	Selector string
	// Name is the name of the Template inferred from sample records.
	Name string
}

// Import parses data and returns the Templates found by opts.Selector. The
// result has fresh ids; references between imported templates are kept.
func Import(data []byte, opts Options) ([]*scheme.Template, error) {
	root, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return FromValue(root, opts)
}

// FromValue is Import over an already parsed document.
func FromValue(root any, opts Options) ([]*scheme.Template, error) {
	selector := opts.Selector
	if selector == "" {
		selector = DefaultSelector
	}
	x, err := jp.ParseString(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath '%s': %w", selector, err)
	}

	var docs []api.TemplateDoc
	var records []map[string]any
	for _, match := range x.Get(root) {
		obj, ok := match.(map[string]any)
		if !ok {
			continue
		}
		if isTemplateDoc(obj) {
			var td api.TemplateDoc
			if err := json.Unmarshal([]byte(oj.JSON(obj)), &td); err != nil {
				return nil, fmt.Errorf("decode template: %w", err)
			}
			docs = append(docs, td)
			continue
		}
		records = append(records, obj)
	}

	list, err := scheme.FromDocument(&api.Document{Templates: docs})
	if err != nil {
		return nil, err
	}
	templates := list.DeepCopy(false).Templates
	if len(records) > 0 {
		name := opts.Name
		if name == "" {
			name = "Imported"
		}
		templates = append(templates, Infer(name, records))
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("selector '%s' matched no objects", selector)
	}
	return templates, nil
}

func isTemplateDoc(obj map[string]any) bool {
	_, hasName := obj["name"].(string)
	_, hasSchemes := obj["schemes"].([]any)
	return hasName && hasSchemes
}

// Infer returns a Template that generates JSON objects shaped like records.
// Fields are emitted in sorted key order.
func Infer(name string, records []map[string]any) *scheme.Template {
	var keys []string
	for _, r := range records {
		for k := range r {
			if !slices.Contains(keys, k) {
				keys = append(keys, k)
			}
		}
	}
	slices.Sort(keys)

	t := scheme.NewTemplate(name)
	for i, k := range keys {
		sep := ", "
		if i == 0 {
			sep = "{"
		}
		t.Schemes = append(t.Schemes, scheme.NewLiteralScheme(sep+strconv.Quote(k)+": "))

		var values []any
		for _, r := range records {
			if v, ok := r[k]; ok {
				values = append(values, v)
			}
		}
		t.Schemes = append(t.Schemes, inferField(values))
	}
	if len(keys) == 0 {
		t.Schemes = append(t.Schemes, scheme.NewLiteralScheme("{}"))
	} else {
		t.Schemes = append(t.Schemes, scheme.NewLiteralScheme("}"))
	}
	return t
}

func inferField(values []any) scheme.Scheme {
	switch {
	case all(values, isInt):
		s := scheme.NewIntegerScheme()
		s.MinValue, s.MaxValue = math.MaxInt64, math.MinInt64
		for _, v := range values {
			s.MinValue = min(s.MinValue, v.(int64))
			s.MaxValue = max(s.MaxValue, v.(int64))
		}
		return s
	case all(values, isNumber):
		s := scheme.NewDecimalScheme()
		s.MinValue, s.MaxValue = math.Inf(1), math.Inf(-1)
		for _, v := range values {
			f := toFloat(v)
			s.MinValue = min(s.MinValue, f)
			s.MaxValue = max(s.MaxValue, f)
		}
		return s
	case all(values, isUUID):
		s := scheme.NewUUIDScheme()
		s.Version = 4
		if id := uuid.MustParse(values[0].(string)); id.Version() == 7 {
			s.Version = 7
		}
		s.Uppercase = strings.ToUpper(values[0].(string)) == values[0].(string)
		return s
	case all(values, isString):
		w := scheme.NewWordScheme()
		w.Words = nil
		for _, v := range values {
			if s := v.(string); !slices.Contains(w.Words, s) && len(w.Words) < maxWords {
				w.Words = append(w.Words, s)
			}
		}
		w.Affix.Descriptor = `"`
		return w
	case all(values, isBool):
		w := scheme.NewWordScheme()
		w.Words = []string{"true", "false"}
		return w
	default:
		return scheme.NewLiteralScheme(oj.JSON(values[0]))
	}
}

func all(values []any, pred func(any) bool) bool {
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if !pred(v) {
			return false
		}
	}
	return true
}

func isInt(v any) bool {
	_, ok := v.(int64)
	return ok
}

func isNumber(v any) bool {
	switch v.(type) {
	case int64, float64:
		return true
	}
	return false
}

func toFloat(v any) float64 {
	if i, ok := v.(int64); ok {
		return float64(i)
	}
	return v.(float64)
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func isUUID(v any) bool {
	s, ok := v.(string)
	if !ok || len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func isBool(v any) bool {
	_, ok := v.(bool)
	return ok
}

// Merge appends imported to list. A template whose name is taken gets a
// numeric suffix ("Name 2", "Name 3", ...). It returns the final names in
// import order.
func Merge(list *scheme.TemplateList, imported []*scheme.Template) []string {
	names := make([]string, 0, len(imported))
	for _, t := range imported {
		base := t.Name
		for n := 2; list.TemplateByName(t.Name) != nil; n++ {
			t.Name = fmt.Sprintf("%s %d", base, n)
		}
		list.Templates = append(list.Templates, t)
		names = append(names, t.Name)
	}
	return names
}
