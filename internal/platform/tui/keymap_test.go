package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/shatter/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"w", runeKey('w'), core.ActionUp},
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{"s", runeKey('s'), core.ActionDown},
		{"a", runeKey('a'), core.ActionLeft},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionFire},
		{"g", runeKey('g'), core.ActionRestart},
		{"r", runeKey('r'), core.ActionRespawn},
		{"p", runeKey('p'), core.ActionPause},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{"help", runeKey('?'), core.ActionHelp},
		{"q", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runeKey('z'), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := keys.Action(tc.msg); got != tc.want {
				t.Errorf("Action(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
			}
		})
	}
}

func TestMouseFires(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.MouseMsg
		want bool
	}{
		{"right press", tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, true},
		{"left press", tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, true},
		{"middle press", tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonMiddle}, false},
		{"release", tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonRight}, false},
		{"motion", tea.MouseMsg{Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := MouseFires(tc.msg); got != tc.want {
				t.Errorf("MouseFires = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestHelpListsBindings(t *testing.T) {
	keys := DefaultKeyMap()
	if len(keys.ShortHelp()) == 0 {
		t.Error("ShortHelp should not be empty")
	}
	total := 0
	for _, col := range keys.FullHelp() {
		total += len(col)
	}
	if total != 10 {
		t.Errorf("FullHelp lists %d bindings, expected 10", total)
	}
}
