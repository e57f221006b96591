package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappy-void/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapperMapKey(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap())

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
	}{
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionJump},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionQuit},
		{"q", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"enter is unbound", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionNone},
		{"up is unbound", tea.KeyMsg{Type: tea.KeyUp}, core.ActionNone},
		{"letter is unbound", runeKey('x'), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := km.MapKey(tc.msg); got != tc.expected {
				t.Errorf("MapKey(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
			}
		})
	}
}

func TestKeyMapperHelp(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap())

	help := km.Help()
	if len(help) != 2 {
		t.Fatalf("expected 2 help bindings, got %d", len(help))
	}
	if help[0].Help().Key != "space" {
		t.Errorf("first binding should describe space, got %q", help[0].Help().Key)
	}
}
