package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeBiancalana/quire/internal/layout"
)

func TestParseCommand(t *testing.T) {
	s := scenarioB(t)
	tests := []struct {
		line string
		want Command
	}{
		{"split v", Split{Orientation: layout.Vertical}},
		{"split horizontal note-7", Split{Orientation: layout.Horizontal, ContentRef: "note-7"}},
		{"close", PrepareClose{Pane: "pane-3"}},
		{"close pane-1", PrepareClose{Pane: "pane-1"}},
		{"complete pane-2", CompleteClose{Pane: "pane-2"}},
		{"focus next", FocusDirection{Direction: DirNext}},
		{"focus pane-2", FocusPane{Pane: "pane-2"}},
		{"move left", MovePane{Direction: DirLeft}},
		{"jump 2", JumpToPane{Index: 2}},
		{"BALANCE", Balance{}},
		{"zoom", ToggleZoom{}},
		{"open note-1", SetPaneConversation{Pane: "pane-3", ContentRef: "note-1"}},
		{"open pane-1 note-1", SetPaneConversation{Pane: "pane-1", ContentRef: "note-1"}},
		{"reset", Reset{}},
		{"reset home", Reset{ContentRef: "home"}},
		{"leader on", SetLeaderActive{Active: true}},
		{"leader off", SetLeaderActive{Active: false}},
		{"settle pane-2", ClearNewPane{Pane: "pane-2"}},
		{"unanimate", ClearNavigationAnimation{}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseCommand(tt.line, s)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommand_Errors(t *testing.T) {
	s := New("")
	for _, line := range []string{"", "split", "split diagonal", "focus", "move sideways", "jump x", "open", "leader maybe"} {
		t.Run(line, func(t *testing.T) {
			_, err := ParseCommand(line, s)
			assert.Error(t, err)
			assert.NotErrorIs(t, err, ErrUnknownCommand)
		})
	}

	_, err := ParseCommand("explode now", s)
	assert.ErrorIs(t, err, ErrUnknownCommand)
}
