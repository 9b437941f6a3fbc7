package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m sheetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.help.Width = msg.Width
		m = m.clampScroll()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, sheetKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, sheetKeys.Right):
			if m.cursorCol < m.period.Days-1 {
				m.cursorCol++
				m = m.ensureCursorVisible()
			}
		case key.Matches(msg, sheetKeys.Left):
			if m.cursorCol > 0 {
				m.cursorCol--
				m = m.ensureCursorVisible()
			}
		case key.Matches(msg, sheetKeys.Down):
			if m.cursorRow < len(m.rows)-1 {
				m.cursorRow++
				m = m.ensureCursorVisible()
			}
		case key.Matches(msg, sheetKeys.Up):
			if m.cursorRow > 0 {
				m.cursorRow--
				m = m.ensureCursorVisible()
			}
		case key.Matches(msg, sheetKeys.Home):
			m.cursorCol = 0
			m = m.ensureCursorVisible()
		case key.Matches(msg, sheetKeys.End):
			m.cursorCol = m.period.Days - 1
			m = m.ensureCursorVisible()
		}
	}
	return m, nil
}
