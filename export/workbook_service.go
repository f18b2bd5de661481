package export

import (
	"bytes"
	"fmt"
	"strings"

	gospreadsheet "github.com/VantageDataChat/GoExcel"

	"hrslides/i18n"
	"hrslides/pptx"
)

// WorkbookService exports the content of a deck to an Excel workbook: an
// overview sheet with one row per slide, then one sheet per chart with its
// categories and values.
type WorkbookService struct {
	tr     *i18n.Translator
	logger func(string)
}

// NewWorkbookService creates a workbook exporter. A nil translator uses the
// global one.
func NewWorkbookService(tr *i18n.Translator, logger func(string)) *WorkbookService {
	if tr == nil {
		tr = i18n.GetTranslator()
	}
	return &WorkbookService{tr: tr, logger: logger}
}

func (s *WorkbookService) log(msg string) {
	if s.logger != nil {
		s.logger(msg)
	}
}

// Sheet bounds of the xlsx format.
const (
	maxSheetRows = 1 << 20
	maxSheetCols = 1 << 14
)

// cellName is gospreadsheet.CellName limited to the cells a sheet can hold.
func cellName(row, col int) (string, error) {
	if row < 0 || row >= maxSheetRows || col >= maxSheetCols {
		return "", fmt.Errorf("cell (%d, %d) outside the sheet", row, col)
	}
	name, err := gospreadsheet.CellName(row, col)
	if err != nil {
		return "", fmt.Errorf("cell (%d, %d): %w", row, col, err)
	}
	return name, nil
}

// writeRow fills row from column 0. A nil style leaves the cells unstyled.
func writeRow(ws *gospreadsheet.Worksheet, row int, values []interface{}, style *gospreadsheet.Style) error {
	for col, v := range values {
		cell, err := cellName(row, col)
		if err != nil {
			return err
		}
		if err := ws.SetCellValue(cell, v); err != nil {
			return fmt.Errorf("cell %s: %w", cell, err)
		}
		if style != nil {
			if err := ws.SetCellStyle(cell, style); err != nil {
				return fmt.Errorf("cell %s: %w", cell, err)
			}
		}
	}
	return nil
}

// writeHeader writes titles into row 0 and sizes the columns.
func writeHeader(ws *gospreadsheet.Worksheet, titles []string, widths []float64) error {
	style := gospreadsheet.NewStyle().
		SetFont(&gospreadsheet.Font{
			Bold:  true,
			Size:  11,
			Color: "FFFFFF",
			Name:  "Calibri",
		}).
		SetFill(&gospreadsheet.Fill{
			Type:  "solid",
			Color: "1B2A4A",
		}).
		SetAlignment(&gospreadsheet.Alignment{
			Horizontal: gospreadsheet.AlignCenter,
			Vertical:   gospreadsheet.AlignMiddle,
		})
	row := make([]interface{}, len(titles))
	for i, title := range titles {
		row[i] = title
		ws.SetColumnWidth(i, widths[i])
	}
	if err := writeRow(ws, 0, row, style); err != nil {
		return err
	}
	ws.SetRowHeight(0, 22)
	ws.FreezePane("A2")
	return nil
}

// Generate returns the workbook bytes for doc.
func (s *WorkbookService) Generate(doc *pptx.Document, title string) ([]byte, error) {
	if doc == nil || len(doc.Slides) == 0 {
		return nil, fmt.Errorf("no slides to export")
	}

	wb := gospreadsheet.New()
	overview := wb.GetActiveSheet()
	overview.SetTitle(s.tr.T("workbook.overview"))

	if err := writeHeader(overview,
		[]string{s.tr.T("col.slide"), s.tr.T("col.texts"), s.tr.T("col.charts"), s.tr.T("col.notes")},
		[]float64{8, 60, 12, 60}); err != nil {
		return nil, fmt.Errorf("failed to write overview header: %w", err)
	}

	data := gospreadsheet.NewStyle().
		SetFont(&gospreadsheet.Font{
			Size: 10,
			Name: "Calibri",
		}).
		SetAlignment(&gospreadsheet.Alignment{
			Horizontal: gospreadsheet.AlignLeft,
			Vertical:   gospreadsheet.AlignMiddle,
			WrapText:   true,
		}).
		SetBorders(&gospreadsheet.Borders{
			Left:   gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "D9D9D9"},
			Top:    gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "D9D9D9"},
			Bottom: gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "D9D9D9"},
			Right:  gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "D9D9D9"},
		})
	charts := 0
	for i, sl := range doc.Slides {
		values := []interface{}{sl.Number, strings.Join(sl.Texts(), "\n"), len(sl.Charts), sl.Notes}
		if err := writeRow(overview, i+1, values, data); err != nil {
			return nil, fmt.Errorf("failed to write slide %d: %w", sl.Number, err)
		}

		for j, c := range sl.Charts {
			ws, err := wb.AddSheet(chartSheetName(sl.Number, j))
			if err != nil {
				return nil, fmt.Errorf("failed to create sheet for slide %d: %w", sl.Number, err)
			}
			if err := writeChartSheet(ws, c, s.tr); err != nil {
				return nil, fmt.Errorf("failed to write chart of slide %d: %w", sl.Number, err)
			}
			charts++
		}
	}

	wb.Properties.Title = title
	wb.Properties.Creator = doc.Creator
	wb.Properties.Subject = s.tr.T("workbook.overview")

	var buf bytes.Buffer
	if err := gospreadsheet.NewXLSXWriter().Write(wb, &buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.log(fmt.Sprintf("[WORKBOOK] %d slides, %d charts, %d bytes", len(doc.Slides), charts, buf.Len()))
	return buf.Bytes(), nil
}

func writeChartSheet(ws *gospreadsheet.Worksheet, c pptx.ChartInfo, tr *i18n.Translator) error {
	series := c.Series
	if series == "" {
		series = tr.T("workbook.values")
	}
	if err := writeHeader(ws, []string{"", series}, []float64{28, 14}); err != nil {
		return err
	}

	for i, cat := range c.Categories {
		values := []interface{}{cat}
		if i < len(c.Values) {
			values = append(values, c.Values[i])
		}
		if err := writeRow(ws, i+1, values, nil); err != nil {
			return err
		}
	}
	return nil
}

// chartSheetName stays within the 31-character sheet name limit.
func chartSheetName(slide, chart int) string {
	if chart == 0 {
		return fmt.Sprintf("Slide %d", slide)
	}
	return fmt.Sprintf("Slide %d (%d)", slide, chart+1)
}
