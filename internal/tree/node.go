// Package tree projects a TemplateList onto an editable three-level tree:
// the list is the root, Templates sit at depth one and their child schemes at
// depth two. Every mutation keeps that shape and notifies listeners.
package tree

import (
	"github.com/agentic-research/randgen/internal/scheme"
	"github.com/google/uuid"
)

// Level is the depth of a node in the tree.
type Level int

const (
	LevelNone Level = iota - 1
	LevelRoot
	LevelTemplate
	LevelScheme
)

func (l Level) String() string {
	switch l {
	case LevelRoot:
		return "root"
	case LevelTemplate:
		return "template"
	case LevelScheme:
		return "scheme"
	}
	return "none"
}

// Node is one entry of the tree. Exactly one field is set.
type Node struct {
	List     *scheme.TemplateList
	Template *scheme.Template
	Scheme   scheme.Scheme
}

// ListNode wraps the root list.
func ListNode(l *scheme.TemplateList) Node { return Node{List: l} }

// TemplateNode wraps a depth-one Template.
func TemplateNode(t *scheme.Template) Node { return Node{Template: t} }

// SchemeNode wraps a depth-two scheme.
func SchemeNode(s scheme.Scheme) Node { return Node{Scheme: s} }

// Level reports which layer n belongs to.
func (n Node) Level() Level {
	switch {
	case n.List != nil:
		return LevelRoot
	case n.Template != nil:
		return LevelTemplate
	case n.Scheme != nil:
		return LevelScheme
	}
	return LevelNone
}

// IsZero reports whether n wraps nothing.
func (n Node) IsZero() bool {
	return n.Level() == LevelNone
}

// ID returns the id of the wrapped value.
func (n Node) ID() uuid.UUID {
	switch n.Level() {
	case LevelRoot:
		return n.List.ID()
	case LevelTemplate:
		return n.Template.ID()
	case LevelScheme:
		return n.Scheme.ID()
	}
	return uuid.Nil
}

// Label is the display text of n.
func (n Node) Label() string {
	switch n.Level() {
	case LevelRoot:
		return "Templates"
	case LevelTemplate:
		return n.Template.Name
	case LevelScheme:
		return n.Scheme.Label()
	}
	return ""
}

// SameIdentityAs reports whether n and other wrap the same entity. Two nodes
// with different settings but the same id are the same entity.
func (n Node) SameIdentityAs(other Node) bool {
	return n.Level() == other.Level() && n.ID() == other.ID()
}

// Equal reports whether n and other wrap values with identical state.
func (n Node) Equal(other Node) bool {
	if n.Level() != other.Level() {
		return false
	}
	switch n.Level() {
	case LevelRoot:
		return n.List.Equal(other.List)
	case LevelTemplate:
		return scheme.Equal(n.Template, other.Template)
	case LevelScheme:
		return scheme.Equal(n.Scheme, other.Scheme)
	}
	return true
}
