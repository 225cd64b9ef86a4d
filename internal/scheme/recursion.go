package scheme

import "github.com/RoaringBitmap/roaring"

// FindRecursionFrom looks for a cycle in the reference graph that is reached
// by following ref. Templates are nodes; every reference inside a template is
// an edge from that template to its target.
//
// The walk starts at the template containing ref and takes only ref's edge
// first. It returns the cyclic suffix of the walk, starting at the template
// that was revisited, or nil when no cycle is reachable. A template that
// references itself yields a single-element cycle.
func (l *TemplateList) FindRecursionFrom(ref *TemplateReference) []*Template {
	if l == nil || ref == nil {
		return nil
	}
	target := ref.Target(l)
	if target == nil {
		return nil
	}

	w := &cycleWalk{list: l, onPath: roaring.New(), cleared: roaring.New()}
	if owner := l.containing(ref); owner != nil {
		w.push(owner)
	}
	return w.visit(target)
}

// containing returns the top-level template that holds ref, directly or in a
// nested template.
func (l *TemplateList) containing(ref *TemplateReference) *Template {
	for _, t := range l.Templates {
		for _, candidate := range t.References() {
			if candidate == ref || candidate.UUID == ref.UUID {
				return t
			}
		}
	}
	return nil
}

type cycleWalk struct {
	list    *TemplateList
	path    []*Template
	onPath  *roaring.Bitmap // list indices of templates on path
	cleared *roaring.Bitmap // list indices fully explored without a cycle
}

func (w *cycleWalk) push(t *Template) {
	w.path = append(w.path, t)
	w.onPath.Add(uint32(w.list.IndexOf(t.UUID)))
}

func (w *cycleWalk) pop() {
	last := w.path[len(w.path)-1]
	w.path = w.path[:len(w.path)-1]
	idx := uint32(w.list.IndexOf(last.UUID))
	w.onPath.Remove(idx)
	w.cleared.Add(idx)
}

func (w *cycleWalk) visit(t *Template) []*Template {
	idx := w.list.IndexOf(t.UUID)
	if idx < 0 {
		return nil
	}
	if w.onPath.Contains(uint32(idx)) {
		for i, seen := range w.path {
			if seen.UUID == t.UUID {
				return append([]*Template(nil), w.path[i:]...)
			}
		}
	}
	if w.cleared.Contains(uint32(idx)) {
		return nil
	}

	w.push(t)
	for _, ref := range t.References() {
		next := ref.Target(w.list)
		if next == nil {
			continue
		}
		if cycle := w.visit(next); cycle != nil {
			return cycle
		}
	}
	w.pop()
	return nil
}
