package tui

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"aptlite/internal/config"
	"aptlite/internal/executor"
	"aptlite/internal/history"
	"aptlite/pkg/manager"
	"aptlite/pkg/manager/native"
)

// historyLimit is how many entries the history dialog shows.
const historyLimit = 15

// Client is the apt front-end the TUI drives. *native.APT implements it.
type Client interface {
	Search(ctx context.Context, query string) ([]manager.Package, error)
	Describe(ctx context.Context, name, fallback string) (string, error)
	Run(ctx context.Context, op manager.Operation, packages []string) (<-chan executor.Event, error)
}

// HistoryStore records finished operations. *history.Store implements it.
type HistoryStore interface {
	Record(entry *history.Entry) error
	List(limit int) ([]history.Entry, error)
}

// App wraps the Model with bubbletea components
type App struct {
	*Model
	ctx    context.Context
	client Client
	store  HistoryStore
	title  string
	events <-chan executor.Event

	styles  *Styles
	keys    KeyMap
	spinner spinner.Model
	search  textinput.Model
	logView viewport.Model
}

// NewApp creates a new TUI application. store may be nil when history is
// disabled.
func NewApp(ctx context.Context, client Client, store HistoryStore, cfg *config.Config) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	ti := textinput.New()
	ti.Placeholder = "Package name or keyword"
	ti.CharLimit = 100
	ti.Prompt = ""
	ti.Focus()

	a := &App{
		Model:   NewModel(cfg.Window.Width, cfg.Window.Height, cfg.Window.ListRatio),
		ctx:     ctx,
		client:  client,
		store:   store,
		title:   "aptlite",
		styles:  DefaultStyles(),
		keys:    DefaultKeyMap(),
		spinner: sp,
		search:  ti,
		logView: viewport.New(0, 0),
	}
	a.resize()
	return a
}

// SetTitle sets the text of the title bar.
func (a *App) SetTitle(title string) {
	a.title = title
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.spinner.Tick,
		textinput.Blink,
	)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetSize(msg.Width, msg.Height)
		a.resize()
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case searchResultsMsg:
		a.handleSearchResults(msg)
		return a, nil

	case descriptionMsg:
		if msg.err != nil {
			log.Printf("describe %s: %v", msg.name, msg.err)
		}
		a.SetDescription(msg.name, msg.text)
		return a, nil

	case operationStartedMsg:
		return a, a.handleStarted(msg)

	case streamEventMsg:
		return a, a.handleEvent(msg.event)

	case streamClosedMsg:
		if a.FinishOperation() != nil {
			a.SetStatus("Operation interrupted")
		}
		a.events = nil
		return a, nil

	case historyLoadedMsg:
		if msg.err != nil {
			log.Printf("history: %v", msg.err)
			return a, nil
		}
		a.historyList = msg.entries
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, a.keys.Quit) {
		return a.quit()
	}

	// Dialogs are modal
	if a.notice != nil {
		if key.Matches(msg, a.keys.Dismiss) {
			a.DismissNotice()
		}
		return nil
	}
	if a.showHistory {
		if key.Matches(msg, a.keys.Dismiss, a.keys.History, a.keys.ListHistory, a.keys.ListQuit) {
			a.showHistory = false
		}
		return nil
	}

	switch {
	case key.Matches(msg, a.keys.NextFocus):
		a.NextFocus()
		a.syncFocus()
		return nil
	case key.Matches(msg, a.keys.PrevFocus):
		a.PrevFocus()
		a.syncFocus()
		return nil
	case key.Matches(msg, a.keys.Search):
		return a.startSearch()
	case key.Matches(msg, a.keys.Install):
		return a.startOperation(manager.OpInstall)
	case key.Matches(msg, a.keys.Remove):
		return a.startOperation(manager.OpRemove)
	case key.Matches(msg, a.keys.Upgrade):
		return a.startOperation(manager.OpUpgrade)
	case key.Matches(msg, a.keys.Update):
		return a.startOperation(manager.OpUpdate)
	case key.Matches(msg, a.keys.History):
		return a.openHistory()
	}

	switch a.focus {
	case FocusSearch:
		if key.Matches(msg, a.keys.Enter) {
			return a.startSearch()
		}
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(msg)
		return cmd
	case FocusList:
		return a.handleListKey(msg)
	default:
		return a.handleButtonKey(msg)
	}
}

func (a *App) handleListKey(msg tea.KeyMsg) tea.Cmd {
	moved := false

	switch {
	case key.Matches(msg, a.keys.Up):
		moved = a.MoveCursor(-1)
	case key.Matches(msg, a.keys.Down):
		moved = a.MoveCursor(1)
	case key.Matches(msg, a.keys.PageUp):
		moved = a.MoveCursor(-a.ListHeight())
	case key.Matches(msg, a.keys.PageDown):
		moved = a.MoveCursor(a.ListHeight())
	case key.Matches(msg, a.keys.Home):
		moved = a.GoToTop()
	case key.Matches(msg, a.keys.End):
		moved = a.GoToBottom()
	case key.Matches(msg, a.keys.Toggle):
		a.ToggleSelected()
	case key.Matches(msg, a.keys.ListSearch):
		a.focus = FocusSearch
		a.syncFocus()
	case key.Matches(msg, a.keys.ListInstall):
		return a.startOperation(manager.OpInstall)
	case key.Matches(msg, a.keys.ListRemove):
		return a.startOperation(manager.OpRemove)
	case key.Matches(msg, a.keys.ListUpgrade):
		return a.startOperation(manager.OpUpgrade)
	case key.Matches(msg, a.keys.ListUpdate):
		return a.startOperation(manager.OpUpdate)
	case key.Matches(msg, a.keys.ListHistory):
		return a.openHistory()
	case key.Matches(msg, a.keys.ListQuit):
		return a.quit()
	}

	if moved {
		return a.describeSelected()
	}
	return nil
}

func (a *App) handleButtonKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Left):
		a.MoveButton(-1)
	case key.Matches(msg, a.keys.Right):
		a.MoveButton(1)
	case key.Matches(msg, a.keys.Enter), key.Matches(msg, a.keys.Toggle):
		return a.press(a.CurrentButton())
	}
	return nil
}

// press activates a button.
func (a *App) press(b Button) tea.Cmd {
	switch {
	case b.Exit:
		return a.quit()
	case b.Op == "":
		return a.startSearch()
	default:
		return a.startOperation(b.Op)
	}
}

// quit exits unless an operation is running. Leaving would cancel the
// context apt runs under and kill it partway through.
func (a *App) quit() tea.Cmd {
	if !a.RequestQuit() {
		return nil
	}
	return tea.Quit
}

func (a *App) syncFocus() {
	if a.focus == FocusSearch {
		a.search.Focus()
	} else {
		a.search.Blur()
	}
}

// startSearch runs the query in the search box. A blank query clears the
// list without running anything.
func (a *App) startSearch() tea.Cmd {
	query := strings.TrimSpace(a.search.Value())

	// Any reply still in flight is now stale
	a.searchSeq++
	seq := a.searchSeq

	if query == "" {
		a.searching = false
		a.ClearResults()
		a.SetStatus("Enter a package name to search")
		return nil
	}

	// The list always reflects the latest search, even while it runs
	a.ClearResults()
	a.searching = true
	a.SetStatus("Searching for %q...", query)

	client, ctx := a.client, a.ctx
	return func() tea.Msg {
		pkgs, err := client.Search(ctx, query)
		return searchResultsMsg{seq: seq, query: query, packages: pkgs, err: err}
	}
}

func (a *App) handleSearchResults(msg searchResultsMsg) {
	if msg.seq != a.searchSeq {
		return
	}
	a.searching = false

	if msg.err != nil {
		a.ClearResults()
		a.SetStatus("Search failed")
		a.ShowNotice(NoticeError, "Search failed", msg.err.Error())
		return
	}

	a.SetResults(msg.packages)
	if len(msg.packages) == 0 {
		a.SetStatus("No packages found for %q", msg.query)
		return
	}
	a.SetStatus("%d packages found for %q", len(msg.packages), msg.query)
}

// describeSelected shows the selected package and fetches its full
// description. The search-time description is shown until the reply lands.
func (a *App) describeSelected() tea.Cmd {
	pkg, ok := a.Selected()
	if !ok {
		a.ResetDescription()
		return nil
	}
	a.descName = pkg.Name
	a.descText = pkg.Description

	client, ctx := a.client, a.ctx
	return func() tea.Msg {
		text, err := client.Describe(ctx, pkg.Name, pkg.Description)
		return descriptionMsg{name: pkg.Name, text: text, err: err}
	}
}

// startOperation clears the log and launches op, unless another operation
// is running or op needs a selection and nothing is checked.
func (a *App) startOperation(op manager.Operation) tea.Cmd {
	pkgs, ok := a.BeginOperation(op)
	if !ok {
		return nil
	}
	a.refreshLog()

	client, ctx := a.client, a.ctx
	return func() tea.Msg {
		events, err := client.Run(ctx, op, pkgs)
		return operationStartedMsg{op: op, events: events, err: err}
	}
}

func (a *App) handleStarted(msg operationStartedMsg) tea.Cmd {
	if msg.err != nil {
		entry := a.FinishOperation()
		a.AppendLog("Error: " + msg.err.Error())
		a.refreshLog()
		a.SetStatus("%s could not start", msg.op.Title())
		a.ShowNotice(NoticeError, "Operation could not start", msg.err.Error())

		if entry != nil {
			entry.ExitCode = -1
			entry.MarkFailed(msg.err)
		}
		return a.recordHistory(entry)
	}

	a.events = msg.events
	return waitForEvent(a.events)
}

func (a *App) handleEvent(ev executor.Event) tea.Cmd {
	if !ev.Done {
		a.AppendLog(ev.Line)
		a.lineCount++
		a.refreshLog()
		return waitForEvent(a.events)
	}

	lines := a.lineCount
	a.AppendLog(manager.DoneMarker)
	a.refreshLog()
	a.events = nil

	entry := a.FinishOperation()
	if entry != nil {
		entry.Complete(ev, lines)
	}

	if ev.Success() {
		a.SetStatus("Operation completed")
		a.ShowNotice(NoticeSuccess, "Operation completed.", "")
		return a.recordHistory(entry)
	}

	title := failureTitle(ev)
	body := ""
	if f := native.Diagnose(a.Log()); f != nil {
		body = f.String()
	}
	a.SetStatus("%s", title)
	a.ShowNotice(NoticeError, title, body)
	return a.recordHistory(entry)
}

// failureTitle describes a failed completion event.
func failureTitle(ev executor.Event) string {
	if ev.ExitCode >= 0 {
		return fmt.Sprintf("Operation failed (exit status %d).", ev.ExitCode)
	}
	if ev.Err != nil {
		return fmt.Sprintf("Operation failed (%v).", ev.Err)
	}
	return "Operation failed."
}

// waitForEvent relays the next stream event into the update loop. Each
// handled event re-arms it, so lines arrive one at a time and in order.
func waitForEvent(events <-chan executor.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return streamClosedMsg{}
		}
		return streamEventMsg{event: ev}
	}
}

func (a *App) recordHistory(entry *history.Entry) tea.Cmd {
	if a.store == nil || entry == nil {
		return nil
	}

	store := a.store
	return func() tea.Msg {
		if err := store.Record(entry); err != nil {
			return historyLoadedMsg{err: fmt.Errorf("record: %w", err)}
		}
		entries, err := store.List(historyLimit)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

func (a *App) openHistory() tea.Cmd {
	if a.store == nil {
		a.ShowNotice(NoticeInfo, "History is disabled", "Set general.history = true in the config file to keep a history.")
		return nil
	}

	a.showHistory = true
	store := a.store
	return func() tea.Msg {
		entries, err := store.List(historyLimit)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

// Layout

// panelWidths returns the outer widths of the list pane and the right column.
func (a *App) panelWidths() (int, int) {
	left := int(float64(a.width) * a.listRatio)
	if left < 20 {
		left = 20
	}
	right := a.width - left
	if right < 20 {
		right = 20
	}
	return left, right
}

// bodyHeight is the height of the split area below the button bar.
func (a *App) bodyHeight() int {
	h := a.height - 4
	if h < 6 {
		h = 6
	}
	return h
}

const descriptionHeight = 6 // including border

func (a *App) resize() {
	_, right := a.panelWidths()
	a.logView.Width = right - 2

	h := a.bodyHeight() - descriptionHeight - 3 // log border and title
	if h < 1 {
		h = 1
	}
	a.logView.Height = h

	a.search.Width = a.width - lipgloss.Width(" Search: ") - 4
	a.refreshLog()
}

func (a *App) refreshLog() {
	lines := make([]string, len(a.log))
	for i, l := range a.log {
		switch {
		case l == manager.DoneMarker:
			lines[i] = a.styles.LogDone.Render(l)
		case strings.HasPrefix(l, "E: "), strings.HasPrefix(l, "Error: "):
			lines[i] = a.styles.LogError.Render(l)
		default:
			lines[i] = a.styles.LogLine.Render(l)
		}
	}
	a.logView.SetContent(strings.Join(lines, "\n"))
	a.logView.GotoBottom()
}

// View implements tea.Model
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	left, right := a.panelWidths()
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		a.renderList(left),
		lipgloss.JoinVertical(lipgloss.Left,
			a.renderDescription(right),
			a.renderLog(right),
		),
	)

	screen := lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(),
		a.renderSearch(),
		a.renderButtons(),
		body,
		a.renderFooter(),
	)

	switch {
	case a.notice != nil:
		return a.overlay(a.renderNotice())
	case a.showHistory:
		return a.overlay(a.renderHistory())
	}
	return screen
}

func (a *App) renderHeader() string {
	title := a.styles.Header.Render(a.title)

	var right string
	switch {
	case a.busy:
		right = a.spinner.View() + " " + a.running.Title()
	case a.searching:
		right = a.spinner.View() + " Searching"
	}

	padding := a.width - lipgloss.Width(title) - lipgloss.Width(right) - 1
	if padding < 0 {
		padding = 0
	}
	return title + strings.Repeat(" ", padding) + right
}

func (a *App) renderSearch() string {
	return a.styles.InputPrompt.Render(" Search: ") + a.search.View()
}

func (a *App) renderButtons() string {
	var parts []string
	for i, b := range a.buttons {
		style := a.styles.Button
		switch {
		case a.focus == FocusButtons && i == a.button:
			style = a.styles.ButtonFocused
		case a.busy && b.Op != "":
			style = a.styles.ButtonBusy
		}
		parts = append(parts, style.Render(b.Label))
	}
	return " " + lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a *App) panel(focused bool) lipgloss.Style {
	if focused {
		return a.styles.PanelFocused
	}
	return a.styles.Panel
}

func (a *App) renderList(width int) string {
	inner := width - 2
	rows := a.ListHeight()

	var b strings.Builder
	checked := len(a.entries.Checked())
	b.WriteString(a.styles.PanelTitle.Render(fmt.Sprintf("Packages (%d, %d checked)", a.entries.Len(), checked)))

	if a.entries.Len() == 0 {
		b.WriteString("\n")
		b.WriteString(a.styles.Placeholder.Render("No packages. Search above."))
	}

	end := a.scroll + rows
	if end > a.entries.Len() {
		end = a.entries.Len()
	}
	for i := a.scroll; i < end; i++ {
		pkg, _ := a.entries.At(i)
		b.WriteString("\n")
		b.WriteString(a.renderPackageLine(pkg, i == a.cursor, inner))
	}

	return a.panel(a.focus == FocusList).
		Width(inner).
		Height(a.bodyHeight() - 2).
		Render(b.String())
}

func (a *App) renderPackageLine(pkg manager.Package, selected bool, width int) string {
	box := "[ ] "
	if pkg.Checked {
		box = a.styles.Checkbox.Render("[x]") + " "
	}

	cursor := "  "
	name := a.styles.ListItem.Render(pkg.Name)
	if selected {
		cursor = a.styles.ListItemSelected.Render("> ")
		name = a.styles.ListItemSelected.Render(pkg.Name)
	}

	line := cursor + box + name
	room := width - lipgloss.Width(line) - 1
	if room > 3 && pkg.Description != "" {
		line += " " + a.styles.PackageDesc.Render(runewidth.Truncate(pkg.Description, room, "…"))
	}
	return line
}

func (a *App) renderDescription(width int) string {
	var b strings.Builder
	b.WriteString(a.styles.PanelTitle.Render("Description"))
	b.WriteString("\n")

	inner := width - 2
	if a.descName == "" {
		b.WriteString(a.styles.Placeholder.Render(a.descText))
	} else {
		b.WriteString(a.styles.PackageName.Render(a.descName))
		b.WriteString("\n")
		b.WriteString(a.styles.Description.Render(runewidth.Wrap(a.descText, inner)))
	}

	return a.panel(false).
		Width(inner).
		Height(descriptionHeight - 2).
		MaxHeight(descriptionHeight).
		Render(b.String())
}

func (a *App) renderLog(width int) string {
	title := a.styles.PanelTitle.Render("Log")
	return a.panel(false).
		Width(width - 2).
		Render(title + "\n" + a.logView.View())
}

func (a *App) renderFooter() string {
	var hints []string
	for _, b := range a.keys.ShortHelp(a.focus) {
		h := b.Help()
		hints = append(hints, a.styles.HelpKey.Render(h.Key)+" "+a.styles.HelpDesc.Render(h.Desc))
	}

	left := a.status
	right := strings.Join(hints, "  ")
	padding := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}
	return a.styles.StatusBar.Render(left + strings.Repeat(" ", padding) + right)
}

func (a *App) renderNotice() string {
	n := a.notice
	content := a.styles.NoticeStyle(n.Kind).Render(n.Title)
	if n.Body != "" {
		content += "\n\n" + n.Body
	}
	return content + "\n\n" + a.styles.DialogButton.Render("OK")
}

func (a *App) renderHistory() string {
	var b strings.Builder
	b.WriteString(a.styles.DialogTitle.Render("Recent operations"))
	b.WriteString("\n")

	if len(a.historyList) == 0 {
		b.WriteString(a.styles.Placeholder.Render("No history entries"))
	}
	for _, e := range a.historyList {
		status := a.styles.Success.Render("OK")
		if !e.Success {
			status = a.styles.Error.Render(fmt.Sprintf("exit %d", e.ExitCode))
		}
		pkgs := runewidth.Truncate(strings.Join(e.Packages, " "), 24, "…")
		b.WriteString(fmt.Sprintf("%s  %-8s %-24s %s\n", e.Timestamp.Format("01-02 15:04"), e.Operation, pkgs, status))
	}

	b.WriteString("\n")
	b.WriteString(a.styles.DialogButton.Render("Close"))
	return b.String()
}

func (a *App) overlay(content string) string {
	dialog := a.styles.Dialog.Render(content)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, dialog,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(ColorBg))
}

// Run starts the TUI application. When verbose is on, the standard logger
// goes to the debug log file; otherwise it is discarded so nothing draws
// over the screen.
func Run(client Client, store HistoryStore, cfg *config.Config, title string) error {
	if cfg.Output.Verbose {
		if err := config.EnsureDataDir(); err != nil {
			return err
		}
		f, err := tea.LogToFile(config.DebugLogPath(), "aptlite")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := NewApp(ctx, client, store, cfg)
	app.SetTitle(title)

	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
