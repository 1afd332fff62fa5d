package tui

import (
	"fmt"

	"aptlite/internal/history"
	"aptlite/pkg/manager"
)

// Focus identifies which widget receives plain keys.
type Focus int

const (
	FocusSearch Focus = iota
	FocusList
	FocusButtons
)

const focusCount = 3

// Button is one entry of the button bar.
type Button struct {
	Label string
	Op    manager.Operation // empty for Search and Exit
	Exit  bool
}

// DefaultButtons returns the button bar in display order.
func DefaultButtons() []Button {
	buttons := []Button{{Label: "Search"}}
	for _, op := range manager.Operations() {
		buttons = append(buttons, Button{Label: op.Title(), Op: op})
	}
	return append(buttons, Button{Label: "Exit", Exit: true})
}

// NoticeKind selects the styling of a notice dialog.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeWarning
	NoticeError
)

// Notice is a modal message that must be dismissed.
type Notice struct {
	Kind  NoticeKind
	Title string
	Body  string
}

// DescriptionPlaceholder is shown when no package is selected.
const DescriptionPlaceholder = "Select a package to see its description."

// Model holds the application state
type Model struct {
	quitting bool

	// Dimensions
	width     int
	height    int
	listRatio float64

	focus   Focus
	buttons []Button
	button  int

	// Package list; cursor is -1 when nothing is selected
	entries *manager.EntryList
	cursor  int
	scroll  int

	// Description pane
	descName string
	descText string

	// Log pane
	log []string

	// Operation in flight
	busy      bool
	running   manager.Operation
	entry     *history.Entry
	lineCount int

	// Search in flight
	searching bool
	searchSeq int

	notice      *Notice
	status      string
	showHistory bool
	historyList []history.Entry
}

// NewModel creates a new TUI model
func NewModel(width, height int, listRatio float64) *Model {
	return &Model{
		width:     width,
		height:    height,
		listRatio: listRatio,
		buttons:   DefaultButtons(),
		entries:   manager.NewEntryList(nil),
		cursor:    -1,
		descText:  DescriptionPlaceholder,
	}
}

// SetSize sets the terminal size
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clampScroll()
}

// NextFocus cycles focus forward.
func (m *Model) NextFocus() {
	m.focus = (m.focus + 1) % focusCount
}

// PrevFocus cycles focus backward.
func (m *Model) PrevFocus() {
	m.focus = (m.focus + focusCount - 1) % focusCount
}

// MoveButton moves the button highlight by delta, wrapping around.
func (m *Model) MoveButton(delta int) {
	n := len(m.buttons)
	m.button = ((m.button+delta)%n + n) % n
}

// CurrentButton returns the highlighted button.
func (m *Model) CurrentButton() Button {
	return m.buttons[m.button]
}

// ListHeight returns the number of package rows that fit in the list pane.
func (m *Model) ListHeight() int {
	// header, search, buttons, footer, list border and title
	h := m.height - 7
	if h < 1 {
		h = 1
	}
	return h
}

// Selected returns the package under the cursor.
func (m *Model) Selected() (manager.Package, bool) {
	return m.entries.At(m.cursor)
}

// MoveCursor moves the cursor by delta, clamping to the list. It reports
// whether the selection changed.
func (m *Model) MoveCursor(delta int) bool {
	n := m.entries.Len()
	if n == 0 {
		return false
	}

	pos := m.cursor + delta
	if m.cursor < 0 && delta > 0 {
		pos = delta - 1
	}
	if pos < 0 {
		pos = 0
	}
	if pos >= n {
		pos = n - 1
	}
	if pos == m.cursor {
		return false
	}

	m.cursor = pos
	m.clampScroll()
	return true
}

// GoToTop moves the cursor to the first entry.
func (m *Model) GoToTop() bool {
	if m.entries.Len() == 0 || m.cursor == 0 {
		return false
	}
	m.cursor = 0
	m.clampScroll()
	return true
}

// GoToBottom moves the cursor to the last entry.
func (m *Model) GoToBottom() bool {
	n := m.entries.Len()
	if n == 0 || m.cursor == n-1 {
		return false
	}
	m.cursor = n - 1
	m.clampScroll()
	return true
}

// clampScroll keeps the cursor inside the visible window.
func (m *Model) clampScroll() {
	visible := m.ListHeight()
	if m.cursor < 0 {
		m.scroll = 0
		return
	}
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	} else if m.cursor >= m.scroll+visible {
		m.scroll = m.cursor - visible + 1
	}
}

// ToggleSelected flips the checkbox under the cursor.
func (m *Model) ToggleSelected() {
	m.entries.Toggle(m.cursor)
}

// SetResults replaces the list with fresh search results. Nothing is
// selected afterwards and the description goes back to the placeholder.
func (m *Model) SetResults(pkgs []manager.Package) {
	m.entries.Replace(pkgs)
	m.cursor = -1
	m.scroll = 0
	m.ResetDescription()
}

// ClearResults empties the list.
func (m *Model) ClearResults() {
	m.SetResults(nil)
}

// ResetDescription shows the placeholder.
func (m *Model) ResetDescription() {
	m.descName = ""
	m.descText = DescriptionPlaceholder
}

// SetDescription shows text for name, unless the selection has moved on.
// It reports whether the pane was updated.
func (m *Model) SetDescription(name, text string) bool {
	pkg, ok := m.Selected()
	if !ok || pkg.Name != name {
		return false
	}
	m.descName = name
	m.descText = text
	return true
}

// AppendLog adds one line to the log pane.
func (m *Model) AppendLog(line string) {
	m.log = append(m.log, line)
}

// ClearLog empties the log pane.
func (m *Model) ClearLog() {
	m.log = nil
}

// Log returns the log lines.
func (m *Model) Log() []string {
	return m.log
}

// ShowNotice opens a notice dialog, replacing any open one.
func (m *Model) ShowNotice(kind NoticeKind, title, body string) {
	m.notice = &Notice{Kind: kind, Title: title, Body: body}
}

// DismissNotice closes the notice dialog.
func (m *Model) DismissNotice() {
	m.notice = nil
}

// SetStatus sets the footer status text.
func (m *Model) SetStatus(format string, args ...interface{}) {
	m.status = fmt.Sprintf(format, args...)
}

// BeginOperation validates and marks op as running. It returns the
// packages the operation acts on. When it returns false a notice has been
// opened and nothing may be spawned.
func (m *Model) BeginOperation(op manager.Operation) ([]string, bool) {
	if m.busy {
		m.ShowNotice(NoticeWarning, "Operation in progress",
			fmt.Sprintf("Wait for %q to finish before starting another operation.", m.running.Title()))
		return nil, false
	}

	var pkgs []string
	if op.NeedsSelection() {
		pkgs = m.entries.Checked()
		if len(pkgs) == 0 {
			m.ShowNotice(NoticeWarning, "No selection", "Check at least one package first.")
			return nil, false
		}
	}

	m.ClearLog()
	m.busy = true
	m.running = op
	m.lineCount = 0
	m.entry = history.NewEntry(op, pkgs)
	m.SetStatus("%s running...", op.Title())
	return pkgs, true
}

// FinishOperation ends the running operation and returns its history entry.
// It is a no-op returning nil when nothing is running.
func (m *Model) FinishOperation() *history.Entry {
	if !m.busy {
		return nil
	}
	entry := m.entry
	m.busy = false
	m.running = ""
	m.entry = nil
	return entry
}

// RequestQuit marks the model as quitting. While an operation is running it
// refuses, opens a notice and returns false.
func (m *Model) RequestQuit() bool {
	if m.busy {
		m.ShowNotice(NoticeWarning, "Operation in progress",
			fmt.Sprintf("Wait for %q to finish before quitting.", m.running.Title()))
		return false
	}
	m.quitting = true
	return true
}

// Busy reports whether an operation is running.
func (m *Model) Busy() bool {
	return m.busy
}
