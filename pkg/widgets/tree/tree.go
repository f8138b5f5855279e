// Package tree provides a hierarchical browser widget in the Bubble Tea
// model style. Documents are placed by their slash-separated paths; branches
// expand and collapse, and a fuzzy filter narrows the visible leaves while
// keeping their ancestors on screen.
package tree

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/canopyui/canopy/pkg/api"
)

// Styles holds the render styles for the widget.
type Styles struct {
	Selected lipgloss.Style
	Branch   lipgloss.Style
	Leaf     lipgloss.Style
	Faint    lipgloss.Style
}

// DefaultStyles returns the stock look: highlighted selection, bold branches,
// faint guides.
func DefaultStyles() Styles {
	return Styles{
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		Branch:   lipgloss.NewStyle().Bold(true),
		Leaf:     lipgloss.NewStyle(),
		Faint:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

type row struct {
	node  *Node
	depth int
}

// Model is the tree widget state. Use New to construct one.
type Model struct {
	root      *Node
	docs      []api.Doc
	collapsed map[string]bool
	matched   map[string]bool // nil when no filter is active
	query     string
	rows      []row
	cursor    int
	offset    int
	width     int
	height    int
	styles    Styles
}

// Option configures the widget at construction.
type Option func(*Model)

// WithDocs sets the initial documents.
func WithDocs(docs []api.Doc) Option {
	return func(m *Model) { m.setDocs(docs) }
}

// WithSize sets the render window.
func WithSize(w, h int) Option {
	return func(m *Model) { m.width, m.height = w, h }
}

// WithStyles overrides the default styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// New builds a tree widget.
func New(opts ...Option) Model {
	m := Model{
		collapsed: make(map[string]bool),
		width:     80,
		height:    20,
		styles:    DefaultStyles(),
	}
	m.root = &Node{}
	for _, o := range opts {
		o(&m)
	}
	m.refresh()
	return m
}

// SetDocs replaces the documents, keeping collapse state (keyed by path) and
// the cursor position: the previously selected document is found again by
// content hash first, path second.
func (m *Model) SetDocs(docs []api.Doc) {
	var selHash, selPath string
	if d := m.SelectedDoc(); d != nil {
		selHash, selPath = d.Hash(), d.Path
	}
	m.setDocs(docs)
	m.refresh()
	if selHash == "" {
		return
	}
	byPath := -1
	for i, r := range m.rows {
		if r.node.Doc == nil {
			continue
		}
		if r.node.Doc.Hash() == selHash {
			m.SetCursor(i)
			return
		}
		if byPath < 0 && r.node.Doc.Path == selPath {
			byPath = i
		}
	}
	if byPath >= 0 {
		m.SetCursor(byPath)
	}
}

func (m *Model) setDocs(docs []api.Doc) {
	m.docs = append(m.docs[:0], docs...)
	m.root = build(m.docs)
	m.applyFilter()
}

// SetSize adjusts the render window.
func (m *Model) SetSize(w, h int) {
	m.width, m.height = w, h
	m.scrollIntoView()
}

// Filter narrows the visible leaves with a fuzzy query over document paths.
// An empty query restores the full tree. Branches on the way to a match stay
// visible and are treated as expanded while the filter is active.
func (m *Model) Filter(query string) {
	m.query = strings.TrimSpace(query)
	m.applyFilter()
	m.refresh()
	m.cursor = 0
	m.offset = 0
}

// Query returns the active filter query.
func (m *Model) Query() string { return m.query }

func (m *Model) applyFilter() {
	if m.query == "" {
		m.matched = nil
		return
	}
	paths := make([]string, 0, len(m.docs))
	for i := range m.docs {
		paths = append(paths, m.docs[i].Path)
	}
	res := fuzzy.Find(m.query, paths)
	matched := make(map[string]bool, len(res)*2)
	for _, r := range res {
		p := strings.Trim(paths[r.Index], "/")
		matched[p] = true
		for {
			i := strings.LastIndexByte(p, '/')
			if i < 0 {
				break
			}
			p = p[:i]
			matched[p] = true
		}
	}
	m.matched = matched
}

func (m *Model) filtering() bool { return m.matched != nil }

func (m *Model) refresh() {
	m.rows = m.rows[:0]
	m.walk(m.root, 0)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.scrollIntoView()
}

func (m *Model) walk(n *Node, depth int) {
	for _, c := range n.Children {
		if m.filtering() && !m.matched[c.Path] {
			continue
		}
		m.rows = append(m.rows, row{node: c, depth: depth})
		if c.IsBranch() && (m.filtering() || !m.collapsed[c.Path]) {
			m.walk(c, depth+1)
		}
	}
}

// Len returns the number of visible rows.
func (m *Model) Len() int { return len(m.rows) }

// DocCount returns the number of documents in the tree, filtered or not.
func (m *Model) DocCount() int { return len(m.docs) }

// DocMatches returns the number of documents currently on screen, which is
// all of them unless a filter is active.
func (m *Model) DocMatches() int {
	n := 0
	for _, r := range m.rows {
		if !r.node.IsBranch() {
			n++
		}
	}
	return n
}

// Cursor returns the selected row index.
func (m *Model) Cursor() int { return m.cursor }

// SetCursor moves the selection, clamped to the visible rows.
func (m *Model) SetCursor(i int) {
	if i < 0 {
		i = 0
	}
	if i > len(m.rows)-1 {
		i = len(m.rows) - 1
	}
	m.cursor = i
	m.scrollIntoView()
}

// SelectedNode returns the node under the cursor, or nil.
func (m *Model) SelectedNode() *Node {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].node
}

// SelectedDoc returns the document under the cursor, or nil when the cursor
// sits on a branch (or nothing).
func (m *Model) SelectedDoc() *api.Doc {
	if n := m.SelectedNode(); n != nil {
		return n.Doc
	}
	return nil
}

// Toggle flips the selected branch between expanded and collapsed. No-op on
// leaves and while a filter is active.
func (m *Model) Toggle() {
	n := m.SelectedNode()
	if n == nil || !n.IsBranch() || m.filtering() {
		return
	}
	m.collapsed[n.Path] = !m.collapsed[n.Path]
	m.refresh()
}

// Expanded reports whether the branch at path is currently expanded.
func (m *Model) Expanded(path string) bool { return !m.collapsed[path] }

func (m *Model) scrollIntoView() {
	if m.height <= 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// Update handles navigation keys. Unhandled messages are ignored; the parent
// model routes only what it wants the tree to see.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		m.SetCursor(m.cursor - 1)
	case "down", "j":
		m.SetCursor(m.cursor + 1)
	case "pgup":
		m.SetCursor(m.cursor - m.height)
	case "pgdown":
		m.SetCursor(m.cursor + m.height)
	case "home":
		m.SetCursor(0)
	case "end":
		m.SetCursor(len(m.rows) - 1)
	case "left", "h":
		if n := m.SelectedNode(); n != nil && n.IsBranch() && m.Expanded(n.Path) {
			m.Toggle()
		}
	case "right", "l":
		if n := m.SelectedNode(); n != nil && n.IsBranch() && !m.Expanded(n.Path) {
			m.Toggle()
		}
	case "enter":
		m.Toggle()
	}
	return m, nil
}

// View renders the visible window.
func (m Model) View() string {
	if len(m.rows) == 0 {
		if m.filtering() {
			return m.styles.Faint.Render("(no matches)")
		}
		return m.styles.Faint.Render("(empty)")
	}
	end := m.offset + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}
	var b strings.Builder
	for i := m.offset; i < end; i++ {
		if i > m.offset {
			b.WriteByte('\n')
		}
		b.WriteString(m.renderRow(i))
	}
	return b.String()
}

func (m Model) renderRow(i int) string {
	r := m.rows[i]
	indent := strings.Repeat("  ", r.depth)

	var glyph, label string
	switch {
	case r.node.IsBranch() && (m.filtering() || !m.collapsed[r.node.Path]):
		glyph = "▾ "
		label = r.node.Key
	case r.node.IsBranch():
		glyph = "▸ "
		label = r.node.Key
	default:
		glyph = "  "
		label = r.node.Key
	}

	line := indent + glyph + label
	if d := r.node.Doc; d != nil && d.Title != "" && d.Title != r.node.Key {
		line += "  ·  " + d.Title
	}
	line = truncate(line, m.width)

	if i == m.cursor {
		return m.styles.Selected.Render(line)
	}
	if r.node.IsBranch() {
		return m.styles.Branch.Render(line)
	}
	return m.styles.Leaf.Render(line)
}

func truncate(s string, w int) string {
	if w <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= w {
		return s
	}
	if w == 1 {
		return "…"
	}
	return string(runes[:w-1]) + "…"
}
