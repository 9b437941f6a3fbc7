package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/valeriy-chepelev/costsheet/internal/sheet"
	"golang.org/x/term"
)

const (
	projectColWidth = 14
	personColWidth  = 26
	totalColWidth   = 5
	dayColWidth     = 4
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	footerStyle   = lipgloss.NewStyle().Faint(true)
	dotStyle      = lipgloss.NewStyle().Faint(true)
	absenceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	weekendStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C00"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
)

type sheetKeyMap struct {
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding
	Home  key.Binding
	End   key.Binding
	Quit  key.Binding
}

func (k sheetKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Up, k.Down, k.Quit}
}

func (k sheetKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Home, k.End}}
}

var sheetKeys = sheetKeyMap{
	Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
	Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
	Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Home:  key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first day")),
	End:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last day")),
	Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// tableRow is one participant line of the sheet table.
type tableRow struct {
	project     string
	participant sheet.Participant
}

func tableRows(s sheet.Sheet) []tableRow {
	var rows []tableRow
	for _, p := range s.Projects {
		for _, pt := range p.Participants {
			rows = append(rows, tableRow{project: p.Name, participant: pt})
		}
	}
	return rows
}

type sheetModel struct {
	period     sheet.Period
	rows       []tableRow
	scrollX    int // first visible day column (0-indexed)
	scrollY    int // first visible row
	cursorRow  int
	cursorCol  int // selected day column (0-indexed)
	termWidth  int
	termHeight int
	help       help.Model
}

func newSheetModel(s sheet.Sheet) sheetModel {
	return sheetModel{
		period:     s.Period,
		rows:       tableRows(s),
		termWidth:  120,
		termHeight: 40,
		help:       help.New(),
	}
}

func (m sheetModel) visibleDays() int {
	fixed := projectColWidth + 3 + personColWidth + 3*(totalColWidth+3)
	available := m.termWidth - fixed
	if available <= 0 {
		return 1
	}
	cols := available / (dayColWidth + 3)
	if cols < 1 {
		cols = 1
	}
	if cols > m.period.Days {
		cols = m.period.Days
	}
	return cols
}

func (m sheetModel) visibleRows() int {
	// title(1) + header(1) + separator(1) + totals separator(1) + totals(1) + footer(2)
	available := m.termHeight - 7
	if available < 1 {
		return 1
	}
	if available > len(m.rows) {
		return len(m.rows)
	}
	return available
}

func (m sheetModel) maxScrollX() int {
	return max(m.period.Days-m.visibleDays(), 0)
}

func (m sheetModel) maxScrollY() int {
	return max(len(m.rows)-m.visibleRows(), 0)
}

func (m sheetModel) Init() tea.Cmd {
	return nil
}

// ensureCursorVisible adjusts scroll so the cursor is within the visible viewport.
func (m sheetModel) ensureCursorVisible() sheetModel {
	if m.cursorCol < m.scrollX {
		m.scrollX = m.cursorCol
	}
	if m.cursorCol >= m.scrollX+m.visibleDays() {
		m.scrollX = m.cursorCol - m.visibleDays() + 1
	}
	if m.cursorRow < m.scrollY {
		m.scrollY = m.cursorRow
	}
	if m.cursorRow >= m.scrollY+m.visibleRows() {
		m.scrollY = m.cursorRow - m.visibleRows() + 1
	}
	return m.clampScroll()
}

// clampScroll ensures scroll values are within valid bounds.
func (m sheetModel) clampScroll() sheetModel {
	m.scrollX = min(max(m.scrollX, 0), m.maxScrollX())
	m.scrollY = min(max(m.scrollY, 0), m.maxScrollY())
	return m
}

// cursorInfo describes the selected cell for the footer.
func (m sheetModel) cursorInfo() string {
	if m.cursorRow < 0 || m.cursorRow >= len(m.rows) {
		return ""
	}
	r := m.rows[m.cursorRow]
	e := r.participant.Ledger.Day(m.cursorCol + 1)
	hours := e.HoursText()
	if hours == "" {
		hours = "-"
	}
	return fmt.Sprintf("%s / %s / day %d: %s %s", r.project, r.participant.Name, e.Day, hours, e.PresenceText())
}

func runAllocateTable(cmd *cobra.Command, s sheet.Sheet) error {
	out := cmd.OutOrStdout()

	// Non-TTY fallback: print static table
	f, ok := out.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return printStaticSheetTable(out, s)
	}

	m := newSheetModel(s)
	if w, h, err := term.GetSize(int(f.Fd())); err == nil && w > 0 && h > 0 {
		m.termWidth, m.termHeight = w, h
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(out))
	_, err := p.Run()
	return err
}

func printStaticSheetTable(w io.Writer, s sheet.Sheet) error {
	rows := tableRows(s)
	_, err := fmt.Fprint(w, renderSheetTable(s.Period, rows, 0, 0, s.Period.Days, len(rows), -1, -1, s.Period.String()))
	return err
}
