package cli

import (
	"fmt"
	"strconv"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"
	"github.com/valeriy-chepelev/costsheet/internal/allocate"
	"github.com/valeriy-chepelev/costsheet/internal/sheet"
)

const (
	pdfNameCols  = 10
	pdfTotalCols = 6
	pdfGridSize  = pdfNameCols + allocate.MaxDays + pdfTotalCols
	pdfFontName  = "sheet"
)

var (
	pdfHeaderColor = props.Color{Red: 50, Green: 50, Blue: 50}
	pdfMutedColor  = props.Color{Red: 120, Green: 120, Blue: 120}
	pdfLineColor   = props.Color{Red: 200, Green: 200, Blue: 200}

	pdfCellStyle = &props.Cell{BorderType: border.Full, BorderColor: &pdfLineColor}
)

// renderProjectPDF generates the time sheet of one project and saves it to
// outputPath. fontPath names a TTF font for non-Latin names; empty keeps the
// built-in font.
func renderProjectPDF(p sheet.Project, period sheet.Period, fontPath, outputPath string) error {
	builder := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithMaxGridSize(pdfGridSize).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10)

	if fontPath != "" {
		fonts, err := repository.New().
			AddUTF8Font(pdfFontName, fontstyle.Normal, fontPath).
			AddUTF8Font(pdfFontName, fontstyle.Bold, fontPath).
			Load()
		if err != nil {
			return fmt.Errorf("loading font %s: %w", fontPath, err)
		}
		builder = builder.WithCustomFonts(fonts).WithDefaultFont(&props.Font{Family: pdfFontName})
	}

	m := maroto.New(builder.Build())

	// Document header
	m.AddRow(12,
		text.NewCol(pdfGridSize, p.Name, props.Text{
			Style: fontstyle.Bold,
			Size:  14,
			Color: &pdfHeaderColor,
		}),
	)
	m.AddRow(7,
		text.NewCol(pdfGridSize, period.String(), props.Text{
			Size:  10,
			Color: &pdfMutedColor,
		}),
	)
	m.AddRow(3, line.NewCol(pdfGridSize, props.Line{Color: &pdfLineColor}))

	m.AddRow(6, pdfHeaderCols()...)
	for _, pt := range p.Participants {
		m.AddRow(5, pdfHoursCols(pt)...)
		m.AddRow(5, pdfPresenceCols(pt)...)
	}

	// Project total footer
	m.AddRow(4)
	m.AddRow(8,
		text.NewCol(pdfGridSize-pdfTotalCols, "Total", props.Text{
			Style: fontstyle.Bold,
			Size:  10,
			Color: &pdfHeaderColor,
		}),
		text.NewCol(pdfTotalCols, strconv.Itoa(p.Hours()), props.Text{
			Style: fontstyle.Bold,
			Size:  10,
			Align: align.Right,
			Color: &pdfHeaderColor,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("generating PDF: %w", err)
	}

	return doc.Save(outputPath)
}

func pdfCell(value string, style fontstyle.Type, color *props.Color) core.Col {
	return text.NewCol(1, value, props.Text{
		Size:  6,
		Style: style,
		Align: align.Center,
		Top:   1,
		Color: color,
	}).WithStyle(pdfCellStyle)
}

func pdfHeaderCols() []core.Col {
	cols := []core.Col{
		text.NewCol(pdfNameCols, "Person", props.Text{Style: fontstyle.Bold, Size: 7, Top: 1, Left: 1}).WithStyle(pdfCellStyle),
	}
	for day := 1; day <= allocate.MaxDays; day++ {
		cols = append(cols, pdfCell(strconv.Itoa(day), fontstyle.Bold, nil))
	}
	for _, label := range []string{"H1", "D1", "H2", "D2", "H", "D"} {
		cols = append(cols, pdfCell(label, fontstyle.Bold, nil))
	}
	return cols
}

func pdfHoursCols(pt sheet.Participant) []core.Col {
	l := pt.Ledger
	cols := []core.Col{
		text.NewCol(pdfNameCols, pt.Name, props.Text{Style: fontstyle.Bold, Size: 7, Top: 1, Left: 1}).WithStyle(pdfCellStyle),
	}
	for _, e := range l.Days {
		cols = append(cols, pdfCell(e.HoursText(), fontstyle.Normal, nil))
	}
	for _, v := range []int{l.HP1, l.DP1, l.HP2, l.DP2, l.SH, l.SD} {
		cols = append(cols, pdfCell(strconv.Itoa(v), fontstyle.Bold, nil))
	}
	return cols
}

func pdfPresenceCols(pt sheet.Participant) []core.Col {
	identity := pt.Number
	if pt.Specialty != "" {
		identity += "  " + pt.Specialty
	}
	cols := []core.Col{
		text.NewCol(pdfNameCols, identity, props.Text{Size: 6, Top: 1, Left: 1, Color: &pdfMutedColor}).WithStyle(pdfCellStyle),
	}
	for _, e := range pt.Ledger.Days {
		cols = append(cols, pdfCell(e.PresenceText(), fontstyle.Normal, &pdfMutedColor))
	}
	cols = append(cols, col.New(pdfTotalCols).WithStyle(pdfCellStyle))
	return cols
}
