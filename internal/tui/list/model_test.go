package listview

import (
	"context"
	"fmt"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/dropdown/internal/group"
	"github.com/rshade/dropdown/internal/itemslist"
	"github.com/rshade/dropdown/internal/option"
	"github.com/rshade/dropdown/internal/scroll"
	"github.com/rshade/dropdown/internal/selection"
)

func rawItems(labels ...string) []any {
	out := make([]any, 0, len(labels))
	for _, l := range labels {
		out = append(out, map[string]any{"label": l})
	}
	return out
}

func numbered(n int) []string {
	labels := make([]string, 0, n)
	for i := range n {
		labels = append(labels, fmt.Sprintf("item %02d", i))
	}
	return labels
}

func newTestPicker(t *testing.T, multiple bool, listOpts itemslist.Options, opts Options, raw []any) *PickerModel {
	t.Helper()
	ctx := context.Background()

	var model selection.Model = selection.NewSingle(nil)
	if multiple {
		model = selection.NewMultiple(0, nil)
	}
	list := itemslist.New(ctx, listOpts, model)
	list.SetItems(raw)

	m := NewPickerModel(ctx, list, opts)
	require.NotNil(t, m)
	// A blinking cursor would hand back timer commands on every keystroke.
	m.input.Cursor.SetMode(cursor.CursorStatic)
	t.Cleanup(m.Close)

	drain(t, m, m.Init())
	return m
}

// drain runs cmd and feeds layout messages back until none are left.
func drain(t *testing.T, m *PickerModel, cmd tea.Cmd) {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		cmd = nil
		switch msg := msg.(type) {
		case tea.BatchMsg:
			for _, c := range msg {
				drain(t, m, c)
			}
		case layoutMsg:
			_, cmd = m.Update(msg)
		}
	}
}

func press(t *testing.T, m *PickerModel, msgs ...tea.KeyMsg) {
	t.Helper()
	for _, msg := range msgs {
		_, cmd := m.Update(msg)
		if m.state != statePicking {
			continue
		}
		drain(t, m, cmd)
	}
}

func typeText(t *testing.T, m *PickerModel, text string) {
	t.Helper()
	press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

var (
	keyDown      = tea.KeyMsg{Type: tea.KeyDown}
	keyUp        = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter     = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab       = tea.KeyMsg{Type: tea.KeyTab}
	keyBackspace = tea.KeyMsg{Type: tea.KeyBackspace}
	keyEsc       = tea.KeyMsg{Type: tea.KeyEsc}
	keyEnd       = tea.KeyMsg{Type: tea.KeyEnd}
	keyHome      = tea.KeyMsg{Type: tea.KeyHome}
	keyClearAll  = tea.KeyMsg{Type: tea.KeyCtrlX}
)

func selectedLabels(m *PickerModel) []string {
	var out []string
	for _, o := range m.List().SelectedItems() {
		out = append(out, o.Label)
	}
	return out
}

func TestNewPickerModel(t *testing.T) {
	t.Run("marks first and measures rows", func(t *testing.T) {
		m := newTestPicker(t, false, itemslist.Options{}, Options{MarkFirst: true, Height: 5},
			rawItems("Apple", "Banana"))

		assert.Equal(t, statePicking, m.state)
		assert.True(t, m.input.Focused())
		assert.Equal(t, 0, m.List().MarkedIndex())

		dims := m.panel.Dimensions()
		assert.InDelta(t, 1.0, dims.ItemHeight, 0)
		assert.InDelta(t, 5.0, dims.PanelHeight, 0)
		assert.Equal(t, 2, m.panel.Range().End)
	})

	t.Run("applies defaults", func(t *testing.T) {
		m := newTestPicker(t, false, itemslist.Options{}, Options{}, nil)

		assert.Equal(t, defaultHeight, m.height)
		assert.Equal(t, defaultWidth, m.width)
		assert.Equal(t, DefaultTexts(), m.opts.Texts)
		assert.Equal(t, -1, m.List().MarkedIndex())
	})
}

func TestPicker_VirtualLayout(t *testing.T) {
	m := newTestPicker(t, false, itemslist.Options{},
		Options{MarkFirst: true, Height: 3, Panel: panelOpts(true, 1)},
		rawItems(numbered(20)...))

	r := m.panel.Range()
	assert.Equal(t, 0, r.Start)
	assert.Equal(t, 4, r.End)
	assert.InDelta(t, 20.0, r.ScrollHeight, 0)
}

func TestPicker_Navigation(t *testing.T) {
	m := newTestPicker(t, false, itemslist.Options{},
		Options{MarkFirst: true, Height: 3, Panel: panelOpts(true, 1)},
		rawItems(numbered(20)...))

	press(t, m, keyDown, keyDown, keyDown, keyDown, keyDown)

	assert.Equal(t, 5, m.List().MarkedIndex())
	assert.InDelta(t, 3.0, m.panel.LastScroll(), 0)

	view := m.View()
	assert.Contains(t, view, "item 03")
	assert.Contains(t, view, "item 05")
	assert.NotContains(t, view, "item 02")
	assert.NotContains(t, view, "item 06")

	press(t, m, keyUp, keyUp, keyUp)
	assert.Equal(t, 2, m.List().MarkedIndex())
	assert.InDelta(t, 2.0, m.panel.LastScroll(), 0)

	press(t, m, keyHome)
	assert.InDelta(t, 0.0, m.panel.LastScroll(), 0)
	assert.Equal(t, 2, m.List().MarkedIndex(), "scrolling leaves the mark alone")
}

func TestPicker_SingleSelectConfirms(t *testing.T) {
	m := newTestPicker(t, false, itemslist.Options{}, Options{MarkFirst: true},
		rawItems("Apple", "Banana"))

	_, cmd := m.Update(keyDown)
	drain(t, m, cmd)
	_, cmd = m.Update(keyEnter)

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Confirmed())
	assert.False(t, m.Cancelled())
	assert.Equal(t, map[string]any{"label": "Banana"}, m.List().ModelValue())
	assert.Empty(t, m.View())
}

func TestPicker_MultipleToggleAndBackspace(t *testing.T) {
	m := newTestPicker(t, true, itemslist.Options{},
		Options{MarkFirst: true, ClearOnBackspace: true},
		rawItems("Apple", "Banana", "Cherry"))

	press(t, m, keyEnter, keyDown, keyEnter, keyDown, keyEnter)
	assert.Equal(t, []string{"Apple", "Banana", "Cherry"}, selectedLabels(m))
	assert.False(t, m.Confirmed(), "multiple selection keeps the picker open")

	press(t, m, keyEnter)
	assert.Equal(t, []string{"Apple", "Banana"}, selectedLabels(m), "enter toggles a selected option off")

	press(t, m, keyBackspace)
	assert.Equal(t, []string{"Apple"}, selectedLabels(m))

	view := m.View()
	assert.Contains(t, view, "[x] Apple")
	assert.Contains(t, view, "[ ] Banana")

	press(t, m, keyTab)
	assert.True(t, m.Confirmed())
	assert.Equal(t, []any{map[string]any{"label": "Apple"}}, m.List().ModelValue())
}

func TestPicker_BackspaceDisabled(t *testing.T) {
	m := newTestPicker(t, true, itemslist.Options{}, Options{MarkFirst: true},
		rawItems("Apple", "Banana"))

	press(t, m, keyEnter, keyBackspace)
	assert.Equal(t, []string{"Apple"}, selectedLabels(m))
}

func TestPicker_BackspaceClearsSingle(t *testing.T) {
	m := newTestPicker(t, false, itemslist.Options{}, Options{ClearOnBackspace: true},
		rawItems("Apple", "Banana"))
	m.List().Select(m.List().Items()[1])

	press(t, m, keyBackspace)
	assert.Empty(t, selectedLabels(m))
}

func TestPicker_TypingFilters(t *testing.T) {
	m := newTestPicker(t, false, itemslist.Options{}, Options{MarkFirst: true},
		rawItems("Apple", "Banana", "Grape"))

	typeText(t, m, "ap")

	assert.Equal(t, "ap", m.input.Value())
	require.Len(t, m.List().FilteredItems(), 2)
	assert.Equal(t, 0, m.List().MarkedIndex())
	assert.Equal(t, 2, m.panel.Range().End, "filtering lays the panel out again")

	view := m.View()
	assert.Contains(t, view, "Grape")
	assert.NotContains(t, view, "Banana")

	press(t, m, keyBackspace)
	assert.Equal(t, "a", m.input.Value(), "backspace edits a non-empty search")
	assert.Len(t, m.List().FilteredItems(), 3)
}

func TestPicker_NotFound(t *testing.T) {
	m := newTestPicker(t, false, itemslist.Options{}, Options{},
		rawItems("Apple"))

	typeText(t, m, "zzz")

	assert.Empty(t, m.List().FilteredItems())
	assert.Contains(t, m.View(), "No items found")
}

func TestPicker_AddTag(t *testing.T) {
	t.Run("offers and selects a new tag", func(t *testing.T) {
		m := newTestPicker(t, true, itemslist.Options{},
			Options{MarkFirst: true, AddTag: true},
			rawItems("Apple"))

		typeText(t, m, "kiwi")
		assert.True(t, m.showAddTag())
		assert.Contains(t, m.View(), `Add item "kiwi"`)
		assert.NotContains(t, m.View(), "No items found")

		press(t, m, keyEnter)

		assert.Equal(t, []string{"kiwi"}, selectedLabels(m))
		assert.Len(t, m.List().Items(), 2)
		assert.Empty(t, m.input.Value())
		assert.NotContains(t, m.View(), "Add item")
	})

	t.Run("hidden for an exact label match", func(t *testing.T) {
		m := newTestPicker(t, true, itemslist.Options{},
			Options{MarkFirst: true, AddTag: true},
			rawItems("Apple"))

		typeText(t, m, "APPLE")
		assert.False(t, m.showAddTag())
	})

	t.Run("respects min term length", func(t *testing.T) {
		m := newTestPicker(t, true, itemslist.Options{},
			Options{AddTag: true, MinTermLength: 3},
			rawItems("Apple"))

		typeText(t, m, "ki")
		assert.False(t, m.showAddTag())
	})

	t.Run("arrow past the last option highlights the tag", func(t *testing.T) {
		m := newTestPicker(t, false, itemslist.Options{},
			Options{MarkFirst: true, AddTag: true},
			rawItems("Apples", "Pineapple"))

		typeText(t, m, "apple")
		require.Len(t, m.List().FilteredItems(), 2)
		require.True(t, m.showAddTag())
		assert.Equal(t, 0, m.List().MarkedIndex())

		press(t, m, keyDown)
		assert.Equal(t, 1, m.List().MarkedIndex())

		press(t, m, keyDown)
		assert.Nil(t, m.List().MarkedItem())
		assert.Contains(t, m.View(), `Add item "apple"`)

		press(t, m, keyEnter)
		assert.True(t, m.Confirmed())
		assert.Equal(t, []string{"apple"}, selectedLabels(m))
	})
}

func TestPicker_Cancel(t *testing.T) {
	m := newTestPicker(t, false, itemslist.Options{}, Options{}, rawItems("Apple"))

	_, cmd := m.Update(keyEsc)

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Cancelled())
	assert.False(t, m.Confirmed())
}

func TestPicker_ClearAll(t *testing.T) {
	m := newTestPicker(t, true, itemslist.Options{}, Options{MarkFirst: true},
		rawItems("Apple", "Banana"))

	press(t, m, keyEnter, keyDown, keyEnter)
	require.Len(t, selectedLabels(m), 2)

	press(t, m, keyClearAll)
	assert.Empty(t, selectedLabels(m))
}

func TestPicker_StaleLayoutDropped(t *testing.T) {
	m := newTestPicker(t, false, itemslist.Options{},
		Options{Height: 3, Panel: panelOpts(true, 1)},
		rawItems(numbered(20)...))

	m.List().MarkItem(m.List().FilteredItems()[10])
	stale := m.relayout()
	fresh := m.relayout()

	m.Update(stale())
	assert.InDelta(t, 0.0, m.panel.LastScroll(), 0, "stale ticket must not scroll")

	m.Update(fresh())
	assert.InDelta(t, 8.0, m.panel.LastScroll(), 0)
}

func TestPicker_WindowResize(t *testing.T) {
	m := newTestPicker(t, false, itemslist.Options{}, Options{Height: 3, Panel: panelOpts(true, 1)},
		rawItems(numbered(20)...))

	_, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	drain(t, m, cmd)

	assert.Equal(t, 80, m.width)
	assert.Equal(t, 10-chromeLines, m.height)
	assert.InDelta(t, float64(10-chromeLines), m.panel.Dimensions().PanelHeight, 0)
}

func TestPicker_ScrollToEndFiresOnce(t *testing.T) {
	fired := 0
	opts := panelOpts(true, 1)
	opts.OnScrollToEnd = func() { fired++ }

	m := newTestPicker(t, false, itemslist.Options{}, Options{Height: 3, Panel: opts},
		rawItems(numbered(10)...))

	press(t, m, keyEnd)
	assert.InDelta(t, 7.0, m.panel.LastScroll(), 0)
	assert.Equal(t, 1, fired)

	press(t, m, keyHome, keyEnd)
	assert.Equal(t, 1, fired)
	assert.Contains(t, m.View(), "item 09")
}

func TestPicker_Groups(t *testing.T) {
	raw := []any{
		map[string]any{"label": "Apple", "kind": "fruit"},
		map[string]any{"label": "Leek", "kind": "veg"},
		map[string]any{"label": "Pear", "kind": "fruit"},
	}
	m := newTestPicker(t, true, itemslist.Options{GroupBy: group.KeyFromPath("kind")},
		Options{MarkFirst: true}, raw)

	labels := make([]string, 0, len(m.List().FilteredItems()))
	for _, o := range m.List().FilteredItems() {
		labels = append(labels, o.Label)
	}
	require.Equal(t, []string{"fruit", "Apple", "Pear", "veg", "Leek"}, labels)
	assert.Equal(t, 1, m.List().MarkedIndex(), "group headers are not selectable")

	press(t, m, keyEnter)
	view := m.View()
	assert.Contains(t, view, childIndent+checkedMark+"Apple")
	assert.Contains(t, view, childIndent+uncheckedMark+"Pear")
	assert.NotContains(t, view, uncheckedMark+"fruit")
}

func TestPicker_RenderOptionMarksSingleSelection(t *testing.T) {
	m := newTestPicker(t, false, itemslist.Options{}, Options{}, rawItems("Apple", "Banana"))
	apple := m.List().Items()[0]
	m.List().Select(apple)

	assert.Contains(t, m.renderOption(apple, false), singleMark+"Apple")
	assert.NotContains(t, m.renderOption(m.List().Items()[1], false), singleMark)
	assert.Equal(t, 1, lipgloss.Height(m.renderOption(&option.Option{Label: "x"}, true)))
}

func panelOpts(virtual bool, buffer int) scroll.PanelOptions {
	return scroll.PanelOptions{Virtual: virtual, Buffer: buffer}
}
