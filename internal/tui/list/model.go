package listview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/rshade/dropdown/internal/itemslist"
	"github.com/rshade/dropdown/internal/logging"
	"github.com/rshade/dropdown/internal/option"
	"github.com/rshade/dropdown/internal/scroll"
)

const (
	// defaultHeight is the number of option rows shown when Options.Height is unset.
	defaultHeight = 10

	// defaultWidth is the picker width in columns before the first resize.
	defaultWidth = 60

	// chromeLines is the number of lines drawn around the option rows:
	// search input, selection chips, add-tag or notice line, help.
	chromeLines = 4

	searchCharLimit = 256
)

type pickerState int

const (
	statePicking pickerState = iota
	stateConfirmed
	stateCancelled
)

// Texts are the user-facing strings of the picker.
type Texts struct {
	NotFound     string
	TypeToSearch string
	AddTag       string
	ClearAll     string
}

// DefaultTexts returns the English texts.
func DefaultTexts() Texts {
	return Texts{
		NotFound:     "No items found",
		TypeToSearch: "Type to search",
		AddTag:       "Add item",
		ClearAll:     "Clear all",
	}
}

// Options configures a PickerModel.
type Options struct {
	// Height is the number of option rows; WindowSizeMsg overrides it.
	Height int

	// Width is the picker width in columns; WindowSizeMsg overrides it.
	Width int

	// MarkFirst marks the first enabled option after each search.
	MarkFirst bool

	// ClearOnBackspace removes the last selection on backspace with an empty search.
	ClearOnBackspace bool

	// AddTag offers the search term as a new option when nothing matches it exactly.
	AddTag bool

	// MinTermLength is the shortest trimmed term offered as a tag.
	MinTermLength int

	// SearchParams is passed through to the list filter.
	SearchParams any

	Texts Texts
	Panel scroll.PanelOptions
}

// layoutMsg carries a panel ticket to the update after the draw that issued it.
type layoutMsg struct {
	ticket scroll.Ticket
}

// PickerModel is a Bubble Tea model that drives an items list from the
// keyboard and draws it through a virtual scroll panel. Selection state stays
// in the list; the model only decodes keys into list operations.
type PickerModel struct {
	logger zerolog.Logger
	list   *itemslist.List
	panel  *scroll.Panel
	input  textinput.Model
	keys   KeyMap
	opts   Options
	state  pickerState

	height int
	width  int

	// dirty is set by list events that replace the filtered sequence.
	dirty bool

	// laidOut is the filtered count the panel last heard about.
	laidOut int

	unsubscribe func()
}

// NewPickerModel creates a picker over list. The logger is taken from ctx.
func NewPickerModel(ctx context.Context, list *itemslist.List, opts Options) *PickerModel {
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Texts == (Texts{}) {
		opts.Texts = DefaultTexts()
	}

	ti := textinput.New()
	ti.Placeholder = opts.Texts.TypeToSearch
	ti.CharLimit = searchCharLimit
	ti.Width = opts.Width - lipgloss.Width(ti.Prompt)
	ti.Focus()

	m := &PickerModel{
		logger:  logging.ComponentLogger(*logging.FromContext(ctx), "picker"),
		list:    list,
		panel:   scroll.NewPanel(ctx, opts.Panel),
		input:   ti,
		keys:    DefaultKeyMap(),
		opts:    opts,
		height:  opts.Height,
		width:   opts.Width,
		laidOut: -1,
	}
	m.unsubscribe = list.Subscribe(func(ev itemslist.Event) {
		if ev.Kind == itemslist.ItemsChanged || ev.Kind == itemslist.FilterChanged {
			m.dirty = true
		}
	})
	list.MarkSelectedOrDefault(opts.MarkFirst)

	return m
}

// Init issues the first panel ticket.
func (m *PickerModel) Init() tea.Cmd {
	return m.relayout()
}

// Update handles keys, resizes and deferred panel layout.
func (m *PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case layoutMsg:
		m.handleLayout(msg.ticket)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		cmd = m.handleKeyMsg(msg)
	}

	if m.state == statePicking && m.needsLayout() {
		cmd = tea.Batch(cmd, m.relayout())
	}
	return m, cmd
}

// handleKeyMsg decodes one key into list operations.
func (m *PickerModel) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.state = stateCancelled
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveMark(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveMark(1)
	case key.Matches(msg, m.keys.PageUp):
		m.scrollBy(-m.height)
	case key.Matches(msg, m.keys.PageDown):
		m.scrollBy(m.height)
	case key.Matches(msg, m.keys.Home):
		m.panel.Scrolled(0)
	case key.Matches(msg, m.keys.End):
		m.panel.Scrolled(m.panel.ScrollToEnd())
	case key.Matches(msg, m.keys.Toggle):
		return m.handleEnter()
	case key.Matches(msg, m.keys.Confirm):
		if !m.list.Multiple() {
			return m.handleEnter()
		}
		m.state = stateConfirmed
		return tea.Quit
	case key.Matches(msg, m.keys.ClearAll):
		m.list.ClearSelected(true)
		m.setSearch("")
	case key.Matches(msg, m.keys.Remove) && m.input.Value() == "":
		m.handleBackspace()
	default:
		return m.updateInput(msg)
	}
	return nil
}

// moveMark steps the mark. Stepping past either end while a tag is offered
// highlights the tag row instead.
func (m *PickerModel) moveMark(step int) {
	if m.nextItemIsTag(step) {
		m.list.UnmarkItem()
		m.panel.Scrolled(m.panel.ScrollToEnd())
		return
	}

	if step > 0 {
		m.list.MarkNextItem()
	} else {
		m.list.MarkPreviousItem()
	}
	m.scrollToMarked()
}

func (m *PickerModel) nextItemIsTag(step int) bool {
	if m.list.MarkedItem() == nil || !m.showAddTag() {
		return false
	}
	next := m.list.MarkedIndex() + step
	return next < 0 || next == len(m.list.FilteredItems())
}

func (m *PickerModel) handleEnter() tea.Cmd {
	if marked := m.list.MarkedItem(); marked != nil {
		return m.toggle(marked)
	}
	if m.showAddTag() {
		return m.selectTag()
	}
	return nil
}

func (m *PickerModel) toggle(item *option.Option) tea.Cmd {
	m.list.ToggleItem(item)
	if !m.list.Multiple() && item.Selected {
		m.state = stateConfirmed
		return tea.Quit
	}
	return nil
}

func (m *PickerModel) selectTag() tea.Cmd {
	term := m.input.Value()
	tag := m.list.SelectTag(m.list.NewTag(term), true)
	m.logger.Debug().Str("tag", term).Str("id", tag.HTMLID).Msg("tag added")

	m.setSearch("")
	if !m.list.Multiple() {
		m.state = stateConfirmed
		return tea.Quit
	}
	return nil
}

// handleBackspace removes the most recent selection when the search is empty.
func (m *PickerModel) handleBackspace() {
	if !m.opts.ClearOnBackspace || len(m.list.SelectedItems()) == 0 {
		return
	}
	if m.list.Multiple() {
		m.list.Unselect(m.list.LastSelectedItem())
		return
	}
	m.list.ClearSelected(false)
}

// updateInput forwards the key to the search input and filters when the term changed.
func (m *PickerModel) updateInput(msg tea.KeyMsg) tea.Cmd {
	prev := m.input.Value()

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if term := m.input.Value(); term != prev {
		m.filter(term)
	}
	return cmd
}

func (m *PickerModel) setSearch(term string) {
	if m.input.Value() == term {
		return
	}
	m.input.SetValue(term)
	m.filter(term)
}

func (m *PickerModel) filter(term string) {
	m.list.Filter(term, m.opts.SearchParams)
	m.list.MarkSelectedOrDefault(m.opts.MarkFirst)
}

// showAddTag reports whether the search term can be added as a new option: it
// is long enough and no filtered or selected option carries it as its label.
func (m *PickerModel) showAddTag() bool {
	if !m.opts.AddTag {
		return false
	}
	term := strings.TrimSpace(m.input.Value())
	if term == "" || len([]rune(term)) < m.opts.MinTermLength {
		return false
	}

	folded := option.Fold(term)
	for _, items := range [][]*option.Option{m.list.FilteredItems(), m.list.SelectedItems()} {
		for _, o := range items {
			if option.Fold(o.Label) == folded {
				return false
			}
		}
	}
	return true
}

func (m *PickerModel) needsLayout() bool {
	return m.dirty || len(m.list.FilteredItems()) != m.laidOut
}

// relayout tells the panel the filtered sequence changed and defers the
// measurement to the update that follows the next draw.
func (m *PickerModel) relayout() tea.Cmd {
	m.dirty = false
	m.laidOut = len(m.list.FilteredItems())
	ticket := m.panel.ItemsChanged(m.laidOut)
	return func() tea.Msg {
		return layoutMsg{ticket: ticket}
	}
}

// handleLayout redeems a panel ticket with the height of a drawn option.
// Tickets issued before a later items change are dropped.
func (m *PickerModel) handleLayout(ticket scroll.Ticket) {
	itemHeight := m.measureItemHeight()
	panelHeight := float64(m.height)

	var err error
	if ticket.Phase == scroll.PhaseMeasure {
		_, err = m.panel.Measured(ticket, itemHeight, panelHeight)
	} else {
		_, err = m.panel.Settle(ticket, itemHeight, panelHeight)
	}
	if err != nil {
		if !errors.Is(err, scroll.ErrStaleTicket) {
			m.logger.Warn().Err(err).Msg("panel layout failed")
		}
		return
	}
	m.scrollToMarked()
}

func (m *PickerModel) measureItemHeight() float64 {
	filtered := m.list.FilteredItems()
	if len(filtered) == 0 {
		return 0
	}
	return float64(lipgloss.Height(m.renderOption(filtered[0], false)))
}

func (m *PickerModel) scrollToMarked() {
	if offset, ok := m.panel.ScrollTo(m.list.MarkedIndex()); ok {
		m.panel.Scrolled(offset)
	}
}

func (m *PickerModel) scrollBy(rows int) {
	itemHeight := m.panel.Dimensions().ItemHeight
	if itemHeight <= 0 {
		return
	}
	pos := m.panel.LastScroll() + float64(rows)*itemHeight
	m.panel.Scrolled(min(pos, m.panel.ScrollToEnd()))
}

func (m *PickerModel) resize(width, height int) {
	m.width = width
	m.height = max(height-chromeLines, 1)
	m.input.Width = max(width-lipgloss.Width(m.input.Prompt), 1)
	m.dirty = true
}

// View renders the search input, the rows of the viewport and the footer.
func (m *PickerModel) View() string {
	if m.state != statePicking {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if chips := m.renderChips(); chips != "" {
		b.WriteString(chips)
		b.WriteString("\n")
	}

	for _, line := range m.visibleLines() {
		b.WriteString(line)
		b.WriteString("\n")
	}

	switch {
	case m.showAddTag():
		line := fmt.Sprintf("%s %q", m.opts.Texts.AddTag, m.input.Value())
		if m.list.MarkedItem() == nil {
			line = MarkedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	case len(m.list.FilteredItems()) == 0:
		b.WriteString(NoticeStyle.Render(m.opts.Texts.NotFound))
		b.WriteString("\n")
	}

	b.WriteString(m.renderHelp())
	return b.String()
}

// visibleLines draws the options of the panel range that fall inside the viewport.
func (m *PickerModel) visibleLines() []string {
	filtered := m.list.FilteredItems()
	r := m.panel.Range()
	first, last := r.Start, r.End

	dims := m.panel.Dimensions()
	if dims.Measured() {
		top := int(m.panel.LastScroll() / dims.ItemHeight)
		first = max(first, top)
		last = min(last, top+dims.ItemsPerViewport)
	}
	// The range may still describe the previous sequence until the next layout.
	last = min(last, len(filtered))

	marked := m.list.MarkedIndex()
	lines := make([]string, 0, max(last-first, 0))
	for i := first; i < last; i++ {
		lines = append(lines, m.renderOption(filtered[i], i == marked))
	}
	return lines
}

func (m *PickerModel) renderOption(o *option.Option, marked bool) string {
	var b strings.Builder
	if o.HasParent() {
		b.WriteString(childIndent)
	}

	selectable := !o.IsGroup() || !o.Disabled
	switch {
	case !selectable:
	case m.list.Multiple() && o.Selected:
		b.WriteString(checkedMark)
	case m.list.Multiple():
		b.WriteString(uncheckedMark)
	case o.Selected:
		b.WriteString(singleMark)
	default:
		b.WriteString(strings.Repeat(" ", lipgloss.Width(singleMark)))
	}
	b.WriteString(o.Label)

	style := lipgloss.NewStyle()
	switch {
	case marked:
		style = MarkedStyle
	case o.IsGroup():
		style = GroupStyle
	case o.Disabled:
		style = DisabledStyle
	case o.Selected:
		style = SelectedStyle
	}
	return style.MaxWidth(m.width).Render(b.String())
}

func (m *PickerModel) renderChips() string {
	if !m.list.Multiple() {
		return ""
	}
	selected := m.list.SelectedItems()
	chips := make([]string, 0, len(selected))
	for _, o := range selected {
		chips = append(chips, ChipStyle.Render(o.Label))
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(strings.Join(chips, " "))
}

func (m *PickerModel) renderHelp() string {
	bindings := m.keys.shortHelp(m.list.Multiple())
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		desc := b.Help().Desc
		if b.Help().Key == m.keys.ClearAll.Help().Key {
			desc = strings.ToLower(m.opts.Texts.ClearAll)
		}
		parts = append(parts, b.Help().Key+" "+desc)
	}
	return HelpStyle.Render(strings.Join(parts, " • "))
}

// Confirmed reports whether the user accepted the selection.
func (m *PickerModel) Confirmed() bool {
	return m.state == stateConfirmed
}

// Cancelled reports whether the user left without accepting.
func (m *PickerModel) Cancelled() bool {
	return m.state == stateCancelled
}

// List returns the items list the picker drives.
func (m *PickerModel) List() *itemslist.List {
	return m.list
}

// Close detaches the picker from the list.
func (m *PickerModel) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}
