package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/devquest/internal/datasource"
	"github.com/vanderheijden86/devquest/pkg/catalog"
	"github.com/vanderheijden86/devquest/pkg/debug"
	"github.com/vanderheijden86/devquest/pkg/preview"
	"github.com/vanderheijden86/devquest/pkg/watcher"
)

// SplitViewThreshold is the width from which the preview sits beside the list
// instead of below it.
const SplitViewThreshold = 100

// EmptyStateText is shown instead of rows when nothing matches.
const EmptyStateText = "No tutorials found"

// focus represents which UI element has keyboard focus
type focus int

const (
	focusList focus = iota
	focusSearch
	focusPreview
	focusCategoryPicker
)

// StoreChangedMsg carries a view rendered by the catalog store.
type StoreChangedMsg struct {
	View catalog.View
}

// FileChangedMsg is sent when the dataset file changes on disk.
type FileChangedMsg struct{}

// ReloadedMsg carries the result of re-reading the dataset.
type ReloadedMsg struct {
	Records []catalog.Record
	Diff    datasource.RecordDiff
	Err     error
}

// viewFeed hands views rendered on any goroutine to the bubbletea loop. Only
// the latest view is kept.
type viewFeed struct {
	mu     sync.Mutex
	latest catalog.View
	ch     chan struct{}
}

func newViewFeed() *viewFeed {
	return &viewFeed{ch: make(chan struct{}, 1)}
}

func (f *viewFeed) push(v catalog.View) {
	f.mu.Lock()
	f.latest = v
	f.mu.Unlock()
	select {
	case f.ch <- struct{}{}:
	default:
	}
}

func (f *viewFeed) view() catalog.View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.latest
}

// waitForStoreCmd waits for the next view rendered by the store.
func waitForStoreCmd(f *viewFeed) tea.Cmd {
	return func() tea.Msg {
		<-f.ch
		return StoreChangedMsg{View: f.view()}
	}
}

// WatchFileCmd returns a command that waits for file changes and sends FileChangedMsg
func WatchFileCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return FileChangedMsg{}
	}
}

// ReloadCmd re-reads the dataset and diffs it against before.
func ReloadCmd(reload func() ([]catalog.Record, error), before []catalog.Record) tea.Cmd {
	return func() tea.Msg {
		records, err := reload()
		if err != nil {
			return ReloadedMsg{Err: err}
		}
		return ReloadedMsg{Records: records, Diff: datasource.DiffRecords(before, records)}
	}
}

// Options wires a Model to the catalog and preview services.
type Options struct {
	Store *catalog.Store
	Hover *preview.Hover
	// Sink is the display sink the preview service writes to.
	Sink    *preview.LatestSink
	Fetcher preview.Fetcher
	// Watcher and Reload enable live reload of the dataset. Both optional.
	Watcher *watcher.Watcher
	Reload  func() ([]catalog.Record, error)
	// DatasetName is shown in the header.
	DatasetName string
}

// Model is the devquest terminal UI.
type Model struct {
	store   *catalog.Store
	hover   *preview.Hover
	sink    *preview.LatestSink
	fetcher preview.Fetcher
	watcher *watcher.Watcher
	reload  func() ([]catalog.Record, error)
	feed    *viewFeed
	unsub   func()

	theme   Theme
	view    catalog.View
	list    list.Model
	search  textinput.Model
	picker  CategoryPickerModel
	pane    PreviewPane
	focused focus
	// hovered is the row target the hover controller was last told about.
	hovered preview.Target

	width      int
	height     int
	listWidth  int
	listHeight int
	split      bool

	datasetName   string
	statusMsg     string
	statusIsError bool
}

// NewModel builds the UI over opts.Store, which should already be loaded.
func NewModel(opts Options) Model {
	store := opts.Store
	theme := DefaultTheme(lipgloss.NewRenderer(os.Stdout), store.Theme())

	l := list.New(nil, TutorialDelegate{Theme: theme}, 80, 20)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search topics and keywords"
	ti.CharLimit = 100

	m := Model{
		store:       store,
		hover:       opts.Hover,
		sink:        opts.Sink,
		fetcher:     opts.Fetcher,
		watcher:     opts.Watcher,
		reload:      opts.Reload,
		feed:        newViewFeed(),
		theme:       theme,
		list:        l,
		search:      ti,
		pane:        NewPreviewPane(theme.IsDark()),
		datasetName: opts.DatasetName,
		width:       120,
		height:      40,
	}
	m.unsub = store.Subscribe(m.feed.push)
	m.applyView(store.Render())
	m.resize()
	m.syncHover()
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForStoreCmd(m.feed)}
	if m.sink != nil {
		cmds = append(cmds, WaitForPreviewCmd(m.sink))
	}
	if m.watcher != nil && m.reload != nil {
		cmds = append(cmds, WatchFileCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()

	case StoreChangedMsg:
		m.applyView(msg.View)
		if m.focused == focusList {
			m.syncHover()
		}
		cmds = append(cmds, waitForStoreCmd(m.feed))

	case PreviewMsg:
		m.pane.SetDisplay(msg.Display)
		if !m.pane.Visible() && m.focused == focusPreview {
			m.focused = focusList
		}
		m.resize()
		if m.sink != nil {
			cmds = append(cmds, WaitForPreviewCmd(m.sink))
		}

	case FileChangedMsg:
		if m.reload != nil {
			cmds = append(cmds, ReloadCmd(m.reload, m.store.Records()))
		}
		if m.watcher != nil {
			cmds = append(cmds, WatchFileCmd(m.watcher))
		}

	case ReloadedMsg:
		if msg.Err != nil {
			m.setStatus(fmt.Sprintf("Reload error: %v", msg.Err), true)
			break
		}
		m.applyView(m.store.Load(msg.Records))
		if m.focused == focusList {
			m.syncHover()
		}
		m.setStatus(fmt.Sprintf("Reloaded %s (%s)", pluralize(len(msg.Records), "tutorial"), msg.Diff.Summary()), false)
		debug.Log("ui: reloaded dataset: %s", msg.Diff.Summary())

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}
		var cmd tea.Cmd
		switch m.focused {
		case focusCategoryPicker:
			m = m.handlePickerKeys(msg)
		case focusSearch:
			m, cmd = m.handleSearchKeys(msg)
		case focusPreview:
			m, cmd = m.handlePreviewKeys(msg)
		default:
			m, cmd = m.handleListKeys(msg)
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// quit stops pending preview transitions and ends the program.
func (m Model) quit() tea.Cmd {
	if m.hover != nil {
		m.hover.Stop()
	}
	if m.unsub != nil {
		m.unsub()
	}
	return tea.Quit
}

// handleListKeys handles keyboard input when the list is focused.
func (m Model) handleListKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, m.quit()

	case "/":
		m.focused = focusSearch
		m.leaveRow()
		m.resize()
		return m, m.search.Focus()

	case "c":
		m.picker = NewCategoryPickerModel(m.store.Categories(), m.store.Colors(), m.theme)
		m.picker.SetSize(m.width, m.height)
		m.picker.Select(m.view.Filter.Category)
		m.focused = focusCategoryPicker
		m.leaveRow()
		return m, nil

	case "t":
		next := m.store.Theme().Toggle()
		m.applyView(m.store.SetTheme(next))
		m.setStatus(fmt.Sprintf("Theme: %s", next), false)
		return m, nil

	case "p", "tab":
		if !m.pane.Visible() {
			m.setStatus("Rest on a tutorial to open its overview", false)
			return m, nil
		}
		m.focused = focusPreview
		if m.hover != nil {
			m.hover.EnterSurface()
		}
		return m, nil

	case "y":
		m.copyLocation()
		return m, nil

	case "esc":
		if m.hover != nil {
			m.hover.Dismiss()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.syncHover()
	return m, cmd
}

// handleSearchKeys applies every keystroke to the search query.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.SetValue("")
		m.search.Blur()
		m.applyView(m.store.SetSearchQuery(""))
		m.focused = focusList
		m.resize()
		m.syncHover()
		return m, nil
	case "enter", "down", "up":
		m.search.Blur()
		m.focused = focusList
		m.resize()
		m.syncHover()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if q := m.search.Value(); q != before {
		m.applyView(m.store.SetSearchQuery(q))
	}
	return m, cmd
}

// handlePreviewKeys scrolls the preview; leaving it hides the preview.
func (m Model) handlePreviewKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "p", "tab":
		m.focused = focusList
		if m.hover != nil {
			m.hover.LeaveSurface()
		}
		return m, nil
	case "q":
		return m, m.quit()
	case "y":
		m.copyLocation()
		return m, nil
	}
	return m, m.pane.Update(msg)
}

// handlePickerKeys handles keyboard input when the category picker is open.
func (m Model) handlePickerKeys(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.focused = focusList
		m.syncHover()
	case "down", "ctrl+n":
		m.picker.MoveDown()
	case "up", "ctrl+p":
		m.picker.MoveUp()
	case "enter":
		if category, ok := m.picker.Selected(); ok {
			m.applyView(m.store.SetCategoryFilter(category))
			if category == "" {
				m.setStatus("Showing all categories", false)
			} else {
				m.setStatus(fmt.Sprintf("Filtered by category: %s", category), false)
			}
		}
		m.focused = focusList
		m.syncHover()
	default:
		m.picker.UpdateInput(msg)
	}
	return m
}

// applyView replaces the list rows, keeping the cursor on the same tutorial
// when it is still visible.
func (m *Model) applyView(v catalog.View) {
	keep := m.hovered
	if item, ok := m.selectedItem(); ok {
		keep = item.Target()
	}

	m.view = v
	if v.Theme != "" && v.Theme != m.theme.Name {
		m.setTheme(v.Theme)
	}

	items := itemsFromView(v)
	listItems := make([]list.Item, len(items))
	selected := 0
	for i, it := range items {
		listItems[i] = it
		if it.Target() == keep {
			selected = i
		}
	}
	m.list.SetItems(listItems)
	if len(listItems) > 0 {
		m.list.Select(selected)
	}
}

func (m *Model) setTheme(name catalog.Theme) {
	m.theme = DefaultTheme(m.theme.Renderer, name)
	m.list.SetDelegate(TutorialDelegate{Theme: m.theme})
	m.pane.SetDark(m.theme.IsDark())
}

// syncHover tells the hover controller which row the cursor rests on.
func (m *Model) syncHover() {
	if m.hover == nil {
		return
	}
	item, ok := m.selectedItem()
	if !ok {
		m.leaveRow()
		return
	}
	target := item.Target()
	if target == m.hovered {
		return
	}
	m.leaveRow()
	m.hovered = target
	m.hover.Enter(target, item.Row.Filename)
}

// leaveRow reports that the cursor left the hovered row.
func (m *Model) leaveRow() {
	if m.hover == nil || m.hovered == "" {
		return
	}
	m.hover.Leave(m.hovered)
	m.hovered = ""
}

func (m Model) selectedItem() (TutorialItem, bool) {
	it, ok := m.list.SelectedItem().(TutorialItem)
	return it, ok
}

func (m *Model) copyLocation() {
	item, ok := m.selectedItem()
	if !ok {
		m.setStatus("No tutorial selected", true)
		return
	}
	loc := item.Row.Filename
	if m.fetcher != nil {
		loc = m.fetcher.Location(item.Row.Filename)
	}
	if err := clipboard.WriteAll(loc); err != nil {
		m.setStatus(fmt.Sprintf("Clipboard error: %v", err), true)
		return
	}
	m.setStatus(fmt.Sprintf("Copied %s", loc), false)
}

func (m *Model) setStatus(s string, isError bool) {
	m.statusMsg = s
	m.statusIsError = isError
}

// showSearchBar reports whether the search input takes a line.
func (m Model) showSearchBar() bool {
	return m.focused == focusSearch || m.search.Value() != ""
}

// resize lays out the list and preview pane for the current window size.
func (m *Model) resize() {
	bodyHeight := m.height - 2 // header + footer
	if m.showSearchBar() {
		bodyHeight--
	}
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	m.search.Width = m.width - 4
	m.picker.SetSize(m.width, m.height)

	m.split = m.width >= SplitViewThreshold
	switch {
	case !m.pane.Visible():
		m.listWidth, m.listHeight = m.width, bodyHeight
	case m.split:
		m.listWidth = m.width * 55 / 100
		m.listHeight = bodyHeight
		m.pane.SetSize(m.width-m.listWidth-2, bodyHeight-2)
	default:
		m.listWidth = m.width
		m.listHeight = bodyHeight / 2
		m.pane.SetSize(m.width-2, bodyHeight-m.listHeight-2)
	}
	m.list.SetSize(m.listWidth, m.listHeight)
}

func (m Model) View() string {
	if m.focused == focusCategoryPicker {
		return m.picker.View()
	}

	var body string
	var listView string
	if m.view.Empty() {
		hint := "Press esc in search or choose " + AllCategories + " to widen the filter"
		if m.view.Total == 0 {
			hint = "The dataset has no tutorials"
		}
		listView = m.theme.RenderEmptyState(m.listWidth, m.listHeight, hint)
	} else {
		listView = m.list.View()
	}

	switch {
	case !m.pane.Visible():
		body = listView
	case m.split:
		body = lipgloss.JoinHorizontal(lipgloss.Top, listView, m.pane.View(m.theme, m.focused == focusPreview))
	default:
		body = lipgloss.JoinVertical(lipgloss.Left, listView, m.pane.View(m.theme, m.focused == focusPreview))
	}

	parts := []string{m.renderHeader()}
	if m.showSearchBar() {
		parts = append(parts, m.search.View())
	}
	parts = append(parts, body, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader() string {
	t := m.theme
	title := t.Header.Render("devquest")
	if m.datasetName != "" {
		title += " " + t.SecondaryText.Render(m.datasetName)
	}
	count := t.MutedText.Render(fmt.Sprintf("%d of %s", len(m.view.Rows), pluralize(m.view.Total, "tutorial")))
	parts := []string{title, count}
	if chips := t.RenderFilterChips(m.view.Filter.Category, m.view.Filter.Query); chips != "" {
		parts = append(parts, chips)
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	t := m.theme
	if m.statusMsg != "" {
		if m.statusIsError {
			return t.ErrorText.Render(m.statusMsg)
		}
		return t.Renderer.NewStyle().Foreground(ColorSuccess).Render(m.statusMsg)
	}
	var hints string
	switch m.focused {
	case focusSearch:
		hints = "type to search • enter: done • esc: clear"
	case focusPreview:
		hints = "↑/↓: scroll • esc: close preview • y: copy location • q: quit"
	default:
		hints = "/: search • c: category • t: theme • p: preview • y: copy location • q: quit"
	}
	return t.MutedText.Render(hints)
}

// FocusedPane returns a short name of the focused element, for tests and logs.
func (m Model) FocusedPane() string {
	switch m.focused {
	case focusSearch:
		return "search"
	case focusPreview:
		return "preview"
	case focusCategoryPicker:
		return "categories"
	default:
		return "list"
	}
}
