package tree

// RowMapper translates between visual rows and nodes. Move addresses nodes
// by row, so the mapper decides what "forward" and "backward" mean.
type RowMapper interface {
	// NodeAt returns the node shown at row.
	NodeAt(m *Model, row int) (Node, bool)
	// RowOf returns the row n is shown at, or -1.
	RowOf(m *Model, n Node) int
}

// FlatRows shows every node expanded, root excluded: each Template row is
// followed by the rows of its children.
type FlatRows struct{}

func (FlatRows) NodeAt(m *Model, row int) (Node, bool) {
	if row < 0 {
		return Node{}, false
	}
	for _, t := range m.root.Templates {
		if row == 0 {
			return TemplateNode(t), true
		}
		row--
		if row < len(t.Schemes) {
			return SchemeNode(t.Schemes[row]), true
		}
		row -= len(t.Schemes)
	}
	return Node{}, false
}

func (FlatRows) RowOf(m *Model, n Node) int {
	row := 0
	for _, t := range m.root.Templates {
		if n.Level() == LevelTemplate && t.UUID == n.ID() {
			return row
		}
		row++
		for _, s := range t.Schemes {
			if n.Level() == LevelScheme && s.ID() == n.ID() {
				return row
			}
			row++
		}
	}
	return -1
}

// Rows returns every node in row order according to m's mapper.
func Rows(m *Model) []Node {
	var out []Node
	for row := 0; ; row++ {
		n, ok := m.rows.NodeAt(m, row)
		if !ok {
			return out
		}
		out = append(out, n)
	}
}
