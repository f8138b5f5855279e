package modal

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func resolveWith(t *testing.T, s *Shell, k string) ResolvedMsg {
	t.Helper()
	_, cmd := s.Update(key(k))
	require.NotNil(t, cmd)
	msg, ok := cmd().(ResolvedMsg)
	require.True(t, ok, "expected ResolvedMsg, got %T", cmd())
	return msg
}

func TestConfirmDefaultsToCancel(t *testing.T) {
	s := Confirm("Delete?", "really?", 100, 30)
	require.NotNil(t, s.FocusedAction())
	assert.Equal(t, "cancel", s.FocusedAction().Key)

	msg := resolveWith(t, s, "enter")
	assert.Equal(t, "cancel", msg.Key)
}

func TestFocusWalksActions(t *testing.T) {
	s := Confirm("Delete?", "really?", 100, 30)

	s, _ = s.Update(key("tab"))
	assert.Equal(t, "confirm", s.FocusedAction().Key)

	// Wraps around.
	s, _ = s.Update(key("right"))
	assert.Equal(t, "cancel", s.FocusedAction().Key)

	s, _ = s.Update(key("shift+tab"))
	assert.Equal(t, "confirm", s.FocusedAction().Key)

	msg := resolveWith(t, s, "enter")
	assert.Equal(t, "confirm", msg.Key)
}

func TestEscDismisses(t *testing.T) {
	s := Confirm("Delete?", "really?", 100, 30)
	msg := resolveWith(t, s, "esc")
	assert.Equal(t, KeyDismiss, msg.Key)
}

func TestEnterWithoutActionsDismisses(t *testing.T) {
	s := New("Preview", 100, 30, WithContent("hello"))
	require.Nil(t, s.FocusedAction())
	msg := resolveWith(t, s, "enter")
	assert.Equal(t, KeyDismiss, msg.Key)
}

func TestResizeTracksTerminal(t *testing.T) {
	s := New("Preview", 200, 50, WithContent("hello"))
	w, h := s.Width(), s.Height()
	assert.Equal(t, 120, w)
	assert.Equal(t, 35, h)

	s, _ = s.Update(tea.WindowSizeMsg{Width: 60, Height: 16})
	assert.Equal(t, 56, s.Width())
	assert.Equal(t, 14, s.Height())
	assert.Positive(t, s.BodyWidth())
}

func TestViewContainsTitleAndActions(t *testing.T) {
	s := Confirm("Delete scratch?", "This cannot be undone.", 100, 30)
	v := s.View()
	assert.Contains(t, v, "Delete scratch?")
	assert.Contains(t, v, "Cancel")
	assert.Contains(t, v, "Confirm")
	assert.Contains(t, v, "This cannot be undone.")
}
