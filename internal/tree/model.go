package tree

import (
	"slices"

	"github.com/agentic-research/randgen/internal/scheme"
	"github.com/cockroachdb/errors"
)

// EventKind classifies a tree notification.
type EventKind int

const (
	// NodesChanged: a node's settings changed, shape did not.
	NodesChanged EventKind = iota
	// NodesInserted: Children were inserted under Parent at Indices.
	NodesInserted
	// NodesRemoved: Children were removed from Parent at Indices.
	NodesRemoved
	// StructureChanged: consumers should rebuild everything below Parent.
	StructureChanged
)

func (k EventKind) String() string {
	switch k {
	case NodesChanged:
		return "changed"
	case NodesInserted:
		return "inserted"
	case NodesRemoved:
		return "removed"
	case StructureChanged:
		return "structure"
	}
	return "unknown"
}

// Event describes one change. Indices and Children are parallel.
type Event struct {
	Kind     EventKind
	Parent   Node
	Indices  []int
	Children []Node
}

// Listener receives tree events. Implementations must be comparable so they
// can be removed again; pointer receivers are the usual choice.
type Listener interface {
	TreeChanged(Event)
}

// Model is the editable projection of a TemplateList. It mutates the list
// it wraps. A Model is not safe for concurrent use.
type Model struct {
	root      *scheme.TemplateList
	rows      RowMapper
	listeners []Listener
}

// New returns a Model over list using FlatRows.
func New(list *scheme.TemplateList) *Model {
	return &Model{root: list, rows: FlatRows{}}
}

// SetRowMapper replaces the row strategy used by Move.
func (m *Model) SetRowMapper(r RowMapper) {
	if r == nil {
		r = FlatRows{}
	}
	m.rows = r
}

// RowMapper returns the row strategy in use.
func (m *Model) RowMapper() RowMapper {
	return m.rows
}

// AddListener subscribes l to every future event.
func (m *Model) AddListener(l Listener) {
	m.listeners = append(m.listeners, l)
}

// RemoveListener unsubscribes l. Unknown listeners are ignored.
func (m *Model) RemoveListener(l Listener) {
	m.listeners = slices.DeleteFunc(m.listeners, func(x Listener) bool { return x == l })
}

func (m *Model) emit(e Event) {
	for _, l := range slices.Clone(m.listeners) {
		l.TreeChanged(e)
	}
}

// Root returns the list node.
func (m *Model) Root() Node {
	return ListNode(m.root)
}

// List returns the wrapped list.
func (m *Model) List() *scheme.TemplateList {
	return m.root
}

// Children returns the children of parent in order. Scheme nodes have none.
func (m *Model) Children(parent Node) []Node {
	switch parent.Level() {
	case LevelRoot:
		out := make([]Node, len(parent.List.Templates))
		for i, t := range parent.List.Templates {
			out[i] = TemplateNode(t)
		}
		return out
	case LevelTemplate:
		out := make([]Node, len(parent.Template.Schemes))
		for i, s := range parent.Template.Schemes {
			out[i] = SchemeNode(s)
		}
		return out
	}
	return nil
}

// ChildCount returns len(Children(parent)).
func (m *Model) ChildCount(parent Node) int {
	switch parent.Level() {
	case LevelRoot:
		return len(parent.List.Templates)
	case LevelTemplate:
		return len(parent.Template.Schemes)
	}
	return 0
}

// Child returns the index-th child of parent.
func (m *Model) Child(parent Node, index int) (Node, bool) {
	children := m.Children(parent)
	if index < 0 || index >= len(children) {
		return Node{}, false
	}
	return children[index], true
}

// IndexOf returns the position of child under parent by identity, or -1.
func (m *Model) IndexOf(parent, child Node) int {
	return slices.IndexFunc(m.Children(parent), child.SameIdentityAs)
}

// Parent finds the current parent of n by searching the tree. The root has
// no parent.
func (m *Model) Parent(n Node) (Node, bool) {
	switch n.Level() {
	case LevelTemplate:
		if m.root.IndexOf(n.ID()) >= 0 {
			return m.Root(), true
		}
	case LevelScheme:
		for _, t := range m.root.Templates {
			if t.IndexOf(n.Scheme) >= 0 {
				return TemplateNode(t), true
			}
		}
	}
	return Node{}, false
}

// Contains reports whether n is part of the tree.
func (m *Model) Contains(n Node) bool {
	if n.Level() == LevelRoot {
		return n.ID() == m.root.ID()
	}
	_, ok := m.Parent(n)
	return ok
}

// resolve maps n to the live node with the same identity.
func (m *Model) resolve(n Node) (Node, bool) {
	if n.Level() == LevelRoot {
		return m.Root(), m.Contains(n)
	}
	parent, ok := m.Parent(n)
	if !ok {
		return Node{}, false
	}
	return m.Child(parent, m.IndexOf(parent, n))
}

// Insert adds child under parent at index. The root only takes Templates and
// Templates only take non-Template schemes; index must be in
// [0, ChildCount(parent)]. Nothing changes when an error is returned.
func (m *Model) Insert(parent, child Node, index int) error {
	if err := m.checkInsert(parent, child, index); err != nil {
		return err
	}
	m.insert(parent, child, index)
	return nil
}

func (m *Model) checkInsert(parent, child Node, index int) error {
	live, ok := m.resolve(parent)
	if !ok {
		return errors.AssertionFailedf("insert: parent %s %s is not in the tree", parent.Level(), parent.ID())
	}
	switch live.Level() {
	case LevelRoot:
		if child.Level() != LevelTemplate {
			return errors.AssertionFailedf("insert: root only accepts templates, got %s", child.Level())
		}
	case LevelTemplate:
		if child.Level() != LevelScheme {
			return errors.AssertionFailedf("insert: template only accepts schemes, got %s", child.Level())
		}
		if _, nested := child.Scheme.(*scheme.Template); nested {
			return errors.AssertionFailedf("insert: template %q cannot hold another template", live.Template.Name)
		}
		if _, decorator := child.Scheme.(scheme.Decorator); decorator {
			return errors.AssertionFailedf("insert: %s decorator cannot stand alone in template %q", child.Scheme.Kind(), live.Template.Name)
		}
	default:
		return errors.AssertionFailedf("insert: %s nodes have no children", live.Level())
	}
	if m.Contains(child) {
		return errors.AssertionFailedf("insert: %s %s is already in the tree", child.Level(), child.ID())
	}
	if count := m.ChildCount(live); index < 0 || index > count {
		return errors.AssertionFailedf("insert: index %d out of range [0, %d]", index, count)
	}
	return nil
}

func (m *Model) insert(parent, child Node, index int) {
	parent, _ = m.resolve(parent)
	switch parent.Level() {
	case LevelRoot:
		wasEmpty := len(m.root.Templates) == 0
		m.root.Templates = slices.Insert(m.root.Templates, index, child.Template)
		if wasEmpty {
			m.emit(Event{Kind: StructureChanged, Parent: parent})
			return
		}
	case LevelTemplate:
		parent.Template.Schemes = slices.Insert(parent.Template.Schemes, index, child.Scheme)
	}
	m.emit(Event{Kind: NodesInserted, Parent: parent, Indices: []int{index}, Children: []Node{child}})
}

// Remove detaches n and its subtree. One NodesRemoved event is emitted for n
// only.
func (m *Model) Remove(n Node) error {
	if n.Level() == LevelRoot {
		return errors.AssertionFailedf("remove: the root cannot be removed")
	}
	parent, ok := m.Parent(n)
	if !ok {
		return errors.AssertionFailedf("remove: %s %s is not in the tree", n.Level(), n.ID())
	}
	m.remove(parent, n)
	return nil
}

func (m *Model) remove(parent, n Node) {
	index := m.IndexOf(parent, n)
	live, _ := m.Child(parent, index)
	switch parent.Level() {
	case LevelRoot:
		m.root.Templates = slices.Delete(m.root.Templates, index, index+1)
	case LevelTemplate:
		parent.Template.Schemes = slices.Delete(parent.Template.Schemes, index, index+1)
	}
	m.emit(Event{Kind: NodesRemoved, Parent: parent, Indices: []int{index}, Children: []Node{live}})
}

// CanMove reports whether Move(fromRow, toRow) would succeed.
func (m *Model) CanMove(fromRow, toRow int) bool {
	_, _, _, err := m.planMove(fromRow, toRow)
	return err == nil
}

// Move relocates the node at fromRow to toRow. Templates only move onto
// Template rows. A scheme moved onto a Template row is reparented: moving
// forward makes it that Template's first child, moving backward makes it the
// previous Template's last child. A scheme moved onto another scheme's row
// takes that scheme's index in that scheme's Template.
func (m *Model) Move(fromRow, toRow int) error {
	node, parent, index, err := m.planMove(fromRow, toRow)
	if err != nil {
		return err
	}
	if fromRow == toRow {
		return nil
	}
	from, _ := m.Parent(node)
	m.remove(from, node)
	m.insert(parent, node, index)
	return nil
}

// planMove computes the destination of a move against the tree as it will
// look after the node has been detached.
func (m *Model) planMove(fromRow, toRow int) (node, parent Node, index int, err error) {
	node, ok := m.rows.NodeAt(m, fromRow)
	if !ok {
		return Node{}, Node{}, 0, errors.AssertionFailedf("move: no node at row %d", fromRow)
	}
	target, ok := m.rows.NodeAt(m, toRow)
	if !ok {
		return Node{}, Node{}, 0, errors.AssertionFailedf("move: no node at row %d", toRow)
	}

	switch node.Level() {
	case LevelTemplate, LevelScheme:
	default:
		return Node{}, Node{}, 0, errors.AssertionFailedf("move: %s at row %d cannot move", node.Level(), fromRow)
	}
	switch target.Level() {
	case LevelTemplate, LevelScheme:
	default:
		return Node{}, Node{}, 0, errors.AssertionFailedf("move: %s at row %d is not a destination", target.Level(), toRow)
	}

	if node.Level() == LevelTemplate {
		if target.Level() != LevelTemplate {
			return Node{}, Node{}, 0, errors.AssertionFailedf("move: template %q can only move onto a template row", node.Template.Name)
		}
		return node, m.Root(), m.root.IndexOf(target.ID()), nil
	}

	if toRow == 0 {
		return Node{}, Node{}, 0, errors.AssertionFailedf("move: row 0 is reserved for a template")
	}
	if target.Level() == LevelTemplate {
		if fromRow < toRow {
			return node, target, 0, nil
		}
		at := m.root.IndexOf(target.ID())
		if at <= 0 {
			return Node{}, Node{}, 0, errors.AssertionFailedf("move: no template before %q to receive the scheme", target.Template.Name)
		}
		prev := m.root.Templates[at-1]
		count := len(prev.Schemes)
		if prev.IndexOf(node.Scheme) >= 0 {
			count--
		}
		return node, TemplateNode(prev), count, nil
	}

	targetParent, ok := m.Parent(target)
	if !ok {
		return Node{}, Node{}, 0, errors.AssertionFailedf("move: row %d has no parent", toRow)
	}
	return node, targetParent, m.IndexOf(targetParent, target), nil
}

// NodeChanged notifies listeners that n's settings changed.
func (m *Model) NodeChanged(n Node) error {
	if n.Level() == LevelRoot {
		if !m.Contains(n) {
			return errors.AssertionFailedf("changed: foreign root %s", n.ID())
		}
		m.emit(Event{Kind: NodesChanged, Children: []Node{m.Root()}})
		return nil
	}
	parent, ok := m.Parent(n)
	if !ok {
		return errors.AssertionFailedf("changed: %s %s is not in the tree", n.Level(), n.ID())
	}
	index := m.IndexOf(parent, n)
	live, _ := m.Child(parent, index)
	m.emit(Event{Kind: NodesChanged, Parent: parent, Indices: []int{index}, Children: []Node{live}})
	return nil
}

// Reload replaces the wrapped list wholesale.
func (m *Model) Reload(list *scheme.TemplateList) {
	m.root = list
	m.emit(Event{Kind: StructureChanged, Parent: m.Root()})
}
