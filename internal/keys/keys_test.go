package keys

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeBiancalana/quire/internal/layout"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	alt := false
	if len(s) > 4 && s[:4] == "alt+" {
		alt, s = true, s[4:]
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s), Alt: alt}
}

func TestKeymap_LookupExactThenCaseInsensitive(t *testing.T) {
	km, err := NewKeymap(DefaultBindings(), nil)
	require.NoError(t, err)

	a, ok := km.Lookup("alt+H")
	require.True(t, ok)
	assert.Equal(t, MovePrev, a, "exact match wins over the lowercase key")

	a, ok = km.Lookup("alt+V")
	require.True(t, ok)
	assert.Equal(t, SplitVertical, a)

	_, ok = km.Lookup("ctrl+q")
	assert.False(t, ok)
}

func TestKeymap_Overrides(t *testing.T) {
	km, err := NewKeymap(DefaultBindings(), map[string]string{
		"alt+x": "close",
		"alt+w": "none",
		"alt+0": "jump-9",
	})
	require.NoError(t, err)

	a, ok := km.Lookup("alt+x")
	assert.True(t, ok)
	assert.Equal(t, Close, a)
	_, ok = km.Lookup("alt+w")
	assert.False(t, ok)
	a, _ = km.Lookup("alt+0")
	assert.Equal(t, JumpAction(9), a)

	_, err = NewKeymap(DefaultBindings(), map[string]string{"alt+q": "explode"})
	assert.Error(t, err)
}

func TestAction_JumpIndex(t *testing.T) {
	n, ok := JumpAction(3).JumpIndex()
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = Zoom.JumpIndex()
	assert.False(t, ok)
	_, ok = Action("jump-12").JumpIndex()
	assert.False(t, ok)
	assert.Equal(t, "pane 3", JumpAction(3).Description())
}

func TestKeymap_KeyBindingsGroupByAction(t *testing.T) {
	km, err := NewKeymap(map[string]Action{"j": ScrollDown, "down": ScrollDown, "z": Zoom}, nil)
	require.NoError(t, err)

	bs := km.KeyBindings()
	require.Len(t, bs, 2)
	assert.Equal(t, []string{"down", "j"}, bs[0].Keys())
	assert.Equal(t, "scroll down", bs[0].Help().Desc)
	assert.Equal(t, []string{"z"}, bs[1].Keys())

	full := HelpMap{Keymap: km, Rows: 1}.FullHelp()
	assert.Len(t, full, 2)
	assert.Len(t, HelpMap{Keymap: km}.ShortHelp(), 1)
}

type fixture struct {
	d       *Dispatcher
	focused layout.PaneID
	modal   bool
	leader  bool
	calls   []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	km, err := NewKeymap(DefaultBindings(), nil)
	require.NoError(t, err)
	lt, err := NewKeymap(DefaultLeaderBindings(), nil)
	require.NoError(t, err)

	f := &fixture{focused: "pane-1"}
	f.d = NewDispatcher(km, func() layout.PaneID { return f.focused },
		WithModal(func() bool { return f.modal }),
		WithLeader(lt, func() bool { return f.leader }),
	)
	for _, id := range []layout.PaneID{"pane-1", "pane-2"} {
		id := id
		f.d.RegisterAll(id, map[Action]Handler{
			Close: func(tea.KeyMsg) tea.Cmd {
				f.calls = append(f.calls, string(id)+":close")
				return nil
			},
			SplitVertical: func(k tea.KeyMsg) tea.Cmd {
				f.calls = append(f.calls, string(id)+":split")
				return func() tea.Msg { return k }
			},
		})
	}
	return f
}

func TestDispatcher_RoutesToFocusedPaneOnly(t *testing.T) {
	f := newFixture(t)

	consumed, _ := f.d.Dispatch(Event{Key: keyMsg("alt+w")})
	assert.True(t, consumed)

	f.focused = "pane-2"
	consumed, _ = f.d.Dispatch(Event{Key: keyMsg("alt+w")})
	assert.True(t, consumed)

	assert.Equal(t, []string{"pane-1:close", "pane-2:close"}, f.calls)
}

func TestDispatcher_HandlerReceivesOriginalKey(t *testing.T) {
	f := newFixture(t)

	consumed, cmd := f.d.Dispatch(Event{Key: keyMsg("alt+v")})
	require.True(t, consumed)
	require.NotNil(t, cmd)
	msg, ok := cmd().(tea.KeyMsg)
	require.True(t, ok)
	assert.True(t, msg.Alt)
}

func TestDispatcher_Ignores(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *fixture)
		event Event
	}{
		{"text entry", func(*fixture) {}, Event{Key: keyMsg("alt+w"), InTextEntry: true}},
		{"modal open", func(f *fixture) { f.modal = true }, Event{Key: keyMsg("alt+w")}},
		{"no handlers for focused pane", func(f *fixture) { f.focused = "pane-9" }, Event{Key: keyMsg("alt+w")}},
		{"unmapped key", func(*fixture) {}, Event{Key: keyMsg("ctrl+q")}},
		{"mapped but unhandled", func(*fixture) {}, Event{Key: keyMsg("alt+z")}},
		{"unregistered pane", func(f *fixture) { f.d.Unregister("pane-1") }, Event{Key: keyMsg("alt+w")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			consumed, cmd := f.d.Dispatch(tt.event)
			assert.False(t, consumed)
			assert.Nil(t, cmd)
			assert.Empty(t, f.calls)
		})
	}
}

func TestDispatcher_LeaderTable(t *testing.T) {
	f := newFixture(t)

	consumed, _ := f.d.Dispatch(Event{Key: keyMsg("x")})
	assert.False(t, consumed, "plain x is not a direct binding")

	f.leader = true
	consumed, _ = f.d.Dispatch(Event{Key: keyMsg("x")})
	assert.True(t, consumed)
	assert.Equal(t, []string{"pane-1:close"}, f.calls)
}

func TestDispatcher_RegisterReplaces(t *testing.T) {
	f := newFixture(t)
	f.d.Register("pane-1", Close, func(tea.KeyMsg) tea.Cmd {
		f.calls = append(f.calls, "replaced")
		return nil
	})

	f.d.Dispatch(Event{Key: keyMsg("alt+w")})
	assert.Equal(t, []string{"replaced"}, f.calls)
	assert.True(t, f.d.Registered("pane-2"))
	assert.ElementsMatch(t, []layout.PaneID{"pane-1", "pane-2"}, f.d.Panes())
}
