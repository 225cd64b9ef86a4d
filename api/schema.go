package api

import "encoding/json"

// SchemaVersion is the current snapshot format version.
const SchemaVersion = "1"

// Document is the persisted form of a template list.
// It is what stores read and write; the engine converts it to live schemes.
type Document struct {
	// Version of the snapshot format.
	Version string `json:"version"`
	// UUID of the template list.
	UUID string `json:"uuid"`
	// Templates in list order.
	Templates []TemplateDoc `json:"templates"`
}

// TemplateDoc is a persisted Template.
type TemplateDoc struct {
	UUID string `json:"uuid"`
	// Name is unique within a Document.
	Name string `json:"name"`
	// Schemes are the template's children in generation order.
	Schemes []SchemeDoc `json:"schemes,omitempty"`
	// Array is the template's own array decorator.
	Array json.RawMessage `json:"array,omitempty"`
}

// SchemeDoc is a persisted child scheme.
// Kind selects the concrete type Spec decodes into.
type SchemeDoc struct {
	Kind string          `json:"kind"`
	Spec json.RawMessage `json:"spec,omitempty"`
	// Template is set instead of Spec when Kind is "template".
	Template *TemplateDoc `json:"template,omitempty"`
}
