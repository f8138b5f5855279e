// Package tui implements the interactive document browser: a tree of
// documents on the left of a status footer, a debounced fuzzy filter, and
// modal overlays for previews and delete confirmation.
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/canopyui/canopy/internal/config"
	"github.com/canopyui/canopy/internal/db"
	"github.com/canopyui/canopy/pkg/api"
	"github.com/canopyui/canopy/pkg/debounce"
	"github.com/canopyui/canopy/pkg/widgets/modal"
	"github.com/canopyui/canopy/pkg/widgets/tree"
)

// sender forwards messages into the running program. The filter scheduler is
// built before tea.NewProgram, so the program pointer is bound late.
type sender struct {
	mu sync.Mutex
	p  *tea.Program
}

func (s *sender) bind(p *tea.Program) {
	s.mu.Lock()
	s.p = p
	s.mu.Unlock()
}

func (s *sender) send(msg tea.Msg) {
	s.mu.Lock()
	p := s.p
	s.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// Run opens the browser and blocks until the user quits.
func Run(ctx context.Context, store db.Store, cfg config.Config) error {
	snd := &sender{}

	opts := []debounce.Option{
		debounce.WithLeading(cfg.FilterLeading),
		debounce.WithTrailing(cfg.FilterTrailing),
	}
	var frames *debounce.TickerFrames
	if cfg.FilterWait > 0 {
		opts = append(opts, debounce.WithWait(cfg.FilterWait))
		if cfg.FilterMaxWait > 0 {
			opts = append(opts, debounce.WithMaxWait(cfg.FilterMaxWait))
		}
	} else {
		// No quiet period configured: coalesce keystrokes per frame instead.
		frames = debounce.NewTickerFrames(cfg.FPS)
		frames.Start()
		defer frames.Stop()
		opts = append(opts, debounce.WithFrameSource(frames))
	}
	sched, err := debounce.New(func(q string) bool {
		snd.send(filterAppliedMsg{query: q})
		return true
	}, opts...)
	if err != nil {
		return err
	}
	defer sched.Cancel()

	m := newModel(ctx, store, cfg, sched)
	p := tea.NewProgram(m, tea.WithAltScreen())
	snd.bind(p)
	_, err = p.Run()
	return err
}

type model struct {
	ctx   context.Context
	store db.Store
	cfg   config.Config

	tree   tree.Model
	filter textinput.Model
	sched  *debounce.Scheduler[string, bool]

	modal      *modal.Shell
	modalKind  modalKind
	pendingDel *api.Doc

	filterOpen   bool
	width        int
	height       int
	status       string
	lastDuration time.Duration
}

type modalKind int

const (
	modalNone modalKind = iota
	modalPreview
	modalConfirmDelete
)

func newModel(ctx context.Context, store db.Store, cfg config.Config, sched *debounce.Scheduler[string, bool]) model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter"

	return model{
		ctx:    ctx,
		store:  store,
		cfg:    cfg,
		tree:   tree.New(),
		filter: ti,
		sched:  sched,
	}
}

func (m model) Init() tea.Cmd {
	return loadDocsCmd(m.ctx, m.store)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.applyLayout()
		if m.modal != nil {
			m.modal, _ = m.modal.Update(msg)
		}
		return m, nil

	case docsLoadedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Load failed: %v", msg.err)
			m.lastDuration = msg.dur
			return m, nil
		}
		m.tree.SetDocs(msg.docs)
		m.status = "Loaded"
		m.lastDuration = msg.dur
		return m, nil

	case filterAppliedMsg:
		m.tree.Filter(msg.query)
		if msg.query == "" {
			m.status = ""
		} else {
			m.status = fmt.Sprintf("%d match(es)", m.tree.DocMatches())
		}
		return m, nil

	case previewReadyMsg:
		m.modal = modal.New(msg.doc.Title, m.width, m.height, modal.WithContent(msg.rendered))
		m.modalKind = modalPreview
		m.lastDuration = msg.dur
		return m, nil

	case deleteResultMsg:
		m.pendingDel = nil
		m.lastDuration = msg.dur
		if msg.err != nil {
			m.status = fmt.Sprintf("Delete failed: %v", msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("Deleted %s", msg.path)
		return m, loadDocsCmd(m.ctx, m.store)

	case modal.ResolvedMsg:
		kind := m.modalKind
		m.modal = nil
		m.modalKind = modalNone
		if kind == modalConfirmDelete && msg.Key == "confirm" && m.pendingDel != nil {
			d := *m.pendingDel
			m.status = fmt.Sprintf("Deleting %s…", d.Path)
			return m, deleteDocCmd(m.ctx, m.store, d)
		}
		m.pendingDel = nil
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modal grabs all keys while open.
	if m.modal != nil {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}

	if m.filterOpen {
		switch msg.String() {
		case "esc":
			m.filterOpen = false
			m.filter.Blur()
			m.filter.SetValue("")
			m.sched.Cancel()
			m.tree.Filter("")
			m.status = ""
			return m, nil
		case "enter":
			// Apply whatever is typed right now, skipping the quiet period.
			m.filterOpen = false
			m.filter.Blur()
			m.sched.Call(m.filter.Value())
			m.sched.Flush()
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.sched.Call(m.filter.Value())
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c", "ctrl+q":
		return m, tea.Quit
	case "/":
		m.filterOpen = true
		m.filter.Focus()
		return m, textinput.Blink
	case "esc":
		if m.tree.Query() != "" {
			m.filter.SetValue("")
			m.tree.Filter("")
			m.status = ""
			return m, nil
		}
		return m, tea.Quit
	case "r":
		m.status = "Reloading…"
		return m, loadDocsCmd(m.ctx, m.store)
	case "enter":
		if d := m.tree.SelectedDoc(); d != nil {
			m.status = fmt.Sprintf("Opening %s…", d.Path)
			return m, previewCmd(*d, m.previewWidth())
		}
		// Branch: fall through to the tree so enter toggles it.
	case "d":
		if d := m.tree.SelectedDoc(); d != nil {
			doc := *d
			m.pendingDel = &doc
			m.modal = modal.Confirm(
				fmt.Sprintf("Delete %s?", doc.Path),
				"This removes the document from the library.",
				m.width, m.height,
			)
			m.modalKind = modalConfirmDelete
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.tree, cmd = m.tree.Update(msg)
	return m, cmd
}

// previewWidth matches the modal body width so glamour wraps correctly.
func (m model) previewWidth() int {
	probe := modal.New("", m.width, m.height)
	return probe.BodyWidth()
}

func (m *model) applyLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	h := max(3, m.height-2) // header + footer
	m.tree.SetSize(m.width, h)
}

func (m model) renderHeader() string {
	if m.filterOpen {
		return m.filter.View()
	}
	title := lipgloss.NewStyle().Bold(true).Render("canopy")
	if q := m.tree.Query(); q != "" {
		return title + lipgloss.NewStyle().Faint(true).Render("  filter: "+q)
	}
	return title
}

func (m model) renderFooter() string {
	left := "↑/↓ navigate • enter=open • /=filter • d=delete • q=quit"

	var right string
	if m.status != "" {
		if m.lastDuration > 0 {
			right = fmt.Sprintf("%s (%s) • ", m.status, m.lastDuration.Round(time.Millisecond))
		} else {
			right = m.status + " • "
		}
	}
	right += fmt.Sprintf("%d documents ", m.tree.DocCount())

	space := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if space < 1 {
		space = 1
	}
	return left + strings.Repeat(" ", space) + right
}

func (m model) View() string {
	body := m.tree.View()
	lines := strings.Split(body, "\n")
	h := max(3, m.height-2)
	for len(lines) < h {
		lines = append(lines, "")
	}
	base := m.renderHeader() + "\n" + strings.Join(lines, "\n") + "\n" + m.renderFooter()

	if m.modal != nil {
		return m.renderOverlay(base, m.modal.View(), m.modal.Width(), m.modal.Height())
	}
	return base
}
