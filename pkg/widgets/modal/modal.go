// Package modal provides a centered dialog shell for Bubble Tea programs: a
// bordered box with a scrollable body and a row of actions the user walks
// with tab or the arrow keys. Choosing an action emits a ResolvedMsg carrying
// the action key, so the parent model decides what happens next.
package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	lipglossv2 "github.com/charmbracelet/lipgloss/v2"
)

// ActionKind selects the render style of an action button.
type ActionKind int

const (
	ActionNeutral ActionKind = iota
	ActionPrimary
	ActionDanger
)

// Action is one button in the dialog footer.
type Action struct {
	Label string
	Key   string
	Kind  ActionKind
}

// ResolvedMsg is emitted when the dialog resolves. Key is the chosen action's
// key, or KeyDismiss when the user pressed esc.
type ResolvedMsg struct {
	Key string
}

// KeyDismiss is the ResolvedMsg key for esc.
const KeyDismiss = "dismiss"

// Shell is the dialog state. Construct with New or Confirm.
type Shell struct {
	title   string
	vp      viewport.Model
	actions []Action
	focus   int
	width   int
	height  int
	padX    int
	padY    int
	box     lipglossv2.Style
	content string
}

// Option configures the shell at construction.
type Option func(*Shell)

// WithActions sets the footer actions. The first action has focus.
func WithActions(actions ...Action) Option {
	return func(s *Shell) { s.actions = actions }
}

// WithContent sets the body text.
func WithContent(content string) Option {
	return func(s *Shell) { s.content = content }
}

// New builds a dialog sized for the given terminal.
func New(title string, termW, termH int, opts ...Option) *Shell {
	s := &Shell{title: title, padX: 2, padY: 1}
	for _, o := range opts {
		o(s)
	}
	s.resizeForTerm(termW, termH)
	s.SetContent(s.content)
	return s
}

// Confirm builds a yes/no dialog. Resolving yields "confirm" or "cancel";
// cancel has focus so a stray enter is harmless.
func Confirm(title, body string, termW, termH int) *Shell {
	return New(title, termW, termH,
		WithContent(body),
		WithActions(
			Action{Label: "Cancel", Key: "cancel"},
			Action{Label: "Confirm", Key: "confirm", Kind: ActionDanger},
		),
	)
}

func (s *Shell) resizeForTerm(termW, termH int) {
	if termW <= 0 || termH <= 0 {
		termW, termH = 80, 24
	}
	// 60% width, or nearly full width on small terminals.
	w := int(float64(termW) * 0.6)
	if termW < 80 {
		w = termW - 4
	}
	if w < 40 {
		w = max(32, termW-2)
	}
	h := int(float64(termH) * 0.7)
	if termH < 20 {
		h = termH - 2
	}
	if h < 10 {
		h = max(8, termH-1)
	}
	s.width, s.height = w, h
	s.box = lipglossv2.NewStyle().
		Width(w).
		Height(h).
		Padding(s.padY, s.padX).
		Border(lipglossv2.RoundedBorder()).
		BorderForeground(lipglossv2.Color("63"))

	innerW := w - 2 - s.padX*2 // borders + padding
	innerH := h - 2 - s.padY*2
	innerH -= 2 // title line + spacer
	if len(s.actions) > 0 {
		innerH -= 2 // spacer + action row
	}
	if innerW < 10 {
		innerW = 10
	}
	if innerH < 3 {
		innerH = 3
	}
	if s.vp.Width == 0 {
		s.vp = viewport.New(innerW, innerH)
	} else {
		s.vp.Width = innerW
		s.vp.Height = innerH
	}
	s.vp.SetContent(s.content)
}

// SetContent replaces the body text.
func (s *Shell) SetContent(content string) {
	s.content = content
	s.vp.SetContent(content)
}

// Width returns the outer box width, for overlay placement.
func (s *Shell) Width() int { return s.width }

// Height returns the outer box height, for overlay placement.
func (s *Shell) Height() int { return s.height }

// BodyWidth returns the inner text width, useful for pre-wrapping content.
func (s *Shell) BodyWidth() int { return s.vp.Width }

// FocusedAction returns the action that enter would choose, or nil when the
// dialog has no actions.
func (s *Shell) FocusedAction() *Action {
	if len(s.actions) == 0 {
		return nil
	}
	return &s.actions[s.focus]
}

func resolved(key string) tea.Cmd {
	return func() tea.Msg { return ResolvedMsg{Key: key} }
}

// Update handles keys and resizes. Enter and esc resolve the dialog; other
// keys move focus or scroll the body.
func (s *Shell) Update(msg tea.Msg) (*Shell, tea.Cmd) {
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		s.resizeForTerm(x.Width, x.Height)
		return s, nil
	case tea.KeyMsg:
		switch x.String() {
		case "esc":
			return s, resolved(KeyDismiss)
		case "enter":
			if a := s.FocusedAction(); a != nil {
				return s, resolved(a.Key)
			}
			return s, resolved(KeyDismiss)
		case "tab", "right":
			if n := len(s.actions); n > 0 {
				s.focus = (s.focus + 1) % n
			}
			return s, nil
		case "shift+tab", "left":
			if n := len(s.actions); n > 0 {
				s.focus = (s.focus + n - 1) % n
			}
			return s, nil
		}
		var cmd tea.Cmd
		s.vp, cmd = s.vp.Update(msg)
		return s, cmd
	default:
		return s, nil
	}
}

func (s *Shell) actionRow() string {
	if len(s.actions) == 0 {
		return ""
	}
	base := lipgloss.NewStyle().Padding(0, 1)
	parts := make([]string, 0, len(s.actions))
	for i, a := range s.actions {
		st := base
		switch a.Kind {
		case ActionPrimary:
			st = st.Foreground(lipgloss.Color("63")).Bold(true)
		case ActionDanger:
			st = st.Foreground(lipgloss.Color("203")).Bold(true)
		}
		if i == s.focus {
			st = st.Reverse(true)
		}
		parts = append(parts, st.Render(a.Label))
	}
	return strings.Join(parts, "  ")
}

// View renders the dialog box. Compose it over the base view with an overlay.
func (s *Shell) View() string {
	header := lipgloss.NewStyle().Bold(true).Render(s.title)
	lines := []string{header, "", s.vp.View()}
	if row := s.actionRow(); row != "" {
		lines = append(lines, "", row)
	}
	return s.box.Render(strings.Join(lines, "\n"))
}

// Init satisfies tea.Model for programs that run the dialog standalone.
func (s *Shell) Init() tea.Cmd { return nil }
