package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/valeriy-chepelev/costsheet/internal/allocate"
	"github.com/valeriy-chepelev/costsheet/internal/attendance"
	"github.com/valeriy-chepelev/costsheet/internal/sheet"
)

func (m sheetModel) View() string {
	footer := m.cursorInfo() + "  |  " + m.help.View(sheetKeys)
	return renderSheetTable(m.period, m.rows, m.scrollX, m.scrollY, m.visibleDays(), m.visibleRows(), m.cursorRow, m.cursorCol, footer)
}

// isWeekend returns true if the given date falls on Saturday or Sunday.
func isWeekend(year int, month time.Month, day int) bool {
	wd := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// cellText renders a ledger day: hours when worked, the absence code when the
// person did not work, a dot for a day spent on other projects.
func cellText(e allocate.DayEntry) string {
	switch e.Kind {
	case allocate.Worked:
		return strconv.Itoa(e.Hours)
	case allocate.OutOfRange:
		return "x"
	}
	if e.Presence != "" && e.Presence != attendance.Present {
		return e.Presence
	}
	return "."
}

func separatorLine(visibleDays int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("-", projectColWidth))
	b.WriteString("-+-")
	b.WriteString(strings.Repeat("-", personColWidth))
	for i := 0; i < 3; i++ {
		b.WriteString("-+-")
		b.WriteString(strings.Repeat("-", totalColWidth))
	}
	for i := 0; i < visibleDays; i++ {
		b.WriteString("-+-")
		b.WriteString(strings.Repeat("-", dayColWidth))
	}
	b.WriteString("\n")
	return b.String()
}

// renderSheetTable produces the table string with cursor highlighting.
func renderSheetTable(period sheet.Period, rows []tableRow, scrollX, scrollY, visibleDays, visibleRows, cursorRow, cursorCol int, footer string) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("--- %s ---", period)))
	b.WriteString("\n")

	// Header row
	b.WriteString(headerStyle.Render(padRight("Project", projectColWidth)))
	b.WriteString(" | ")
	b.WriteString(headerStyle.Render(padRight("Person", personColWidth)))
	for _, label := range []string{"H1", "H2", "Sum"} {
		b.WriteString(" | ")
		b.WriteString(headerStyle.Render(padCenter(label, totalColWidth)))
	}
	for i := 0; i < visibleDays; i++ {
		day := scrollX + i + 1
		b.WriteString(" | ")
		label := padCenter(strconv.Itoa(day), dayColWidth)
		if isWeekend(period.Year, period.Month, day) {
			b.WriteString(weekendStyle.Bold(true).Render(label))
		} else {
			b.WriteString(headerStyle.Render(label))
		}
	}
	b.WriteString("\n")
	b.WriteString(separatorLine(visibleDays))

	endRow := min(scrollY+visibleRows, len(rows))
	for rowIdx := scrollY; rowIdx < endRow; rowIdx++ {
		r := rows[rowIdx]
		l := r.participant.Ledger

		project := ""
		if rowIdx == scrollY || rows[rowIdx-1].project != r.project {
			project = r.project
		}
		b.WriteString(Primary(padRight(truncate(project, projectColWidth), projectColWidth)))
		b.WriteString(" | ")
		b.WriteString(padRight(truncate(r.participant.Name, personColWidth), personColWidth))
		for _, v := range []int{l.HP1, l.HP2, l.SH} {
			b.WriteString(" | ")
			b.WriteString(padCenter(strconv.Itoa(v), totalColWidth))
		}

		for i := 0; i < visibleDays; i++ {
			colIdx := scrollX + i
			e := l.Day(colIdx + 1)
			b.WriteString(" | ")

			text := padCenter(cellText(e), dayColWidth)
			switch {
			case rowIdx == cursorRow && colIdx == cursorCol:
				b.WriteString(selectedStyle.Render(text))
			case e.Kind == allocate.Worked:
				b.WriteString(text)
			case e.Kind == allocate.Blank && e.Presence != attendance.Present:
				b.WriteString(absenceStyle.Render(text))
			default:
				b.WriteString(dotStyle.Render(text))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(separatorLine(visibleDays))

	// Totals row
	hp1, hp2, sh := 0, 0, 0
	for _, r := range rows {
		hp1 += r.participant.Ledger.HP1
		hp2 += r.participant.Ledger.HP2
		sh += r.participant.Ledger.SH
	}
	b.WriteString(headerStyle.Render(padRight("Total", projectColWidth)))
	b.WriteString(" | ")
	b.WriteString(padRight("", personColWidth))
	for _, v := range []int{hp1, hp2, sh} {
		b.WriteString(" | ")
		b.WriteString(headerStyle.Render(padCenter(strconv.Itoa(v), totalColWidth)))
	}
	for i := 0; i < visibleDays; i++ {
		day := scrollX + i + 1
		dayTotal := 0
		for _, r := range rows {
			dayTotal += r.participant.Ledger.Day(day).Hours
		}
		b.WriteString(" | ")
		if dayTotal > 0 {
			b.WriteString(headerStyle.Render(padCenter(strconv.Itoa(dayTotal), dayColWidth)))
		} else {
			b.WriteString(dotStyle.Render(padCenter(".", dayColWidth)))
		}
	}
	b.WriteString("\n")

	b.WriteString("\n")
	b.WriteString(footerStyle.Render(footer))
	b.WriteString("\n")

	return b.String()
}

// cellWidth measures terminal cells without East Asian ambiguous widening,
// so Cyrillic names stay one cell per letter.
var cellWidth = &runewidth.Condition{EastAsianWidth: false}

// truncate shortens s to width cells, marking the cut with "...".
func truncate(s string, width int) string {
	return cellWidth.Truncate(s, width, "...")
}

func padRight(s string, width int) string {
	return cellWidth.FillRight(cellWidth.Truncate(s, width, ""), width)
}

func padCenter(s string, width int) string {
	s = cellWidth.Truncate(s, width, "")
	total := width - cellWidth.StringWidth(s)
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
