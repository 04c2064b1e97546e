package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	fontName     = "等线"
	columnWidth  = 12
	headerHeight = 15

	tabColorOverview = "1072BA"
	tabColorLedger   = "CCCCCC"
)

// ApplyStyles reopens a saved workbook and applies the uniform report look:
// bold bordered header row, bordered body cells, fixed column widths, frozen
// first row and the overview/ledger tab colors. The data workbook stays valid
// if this pass fails, callers treat styling errors as non-fatal.
func ApplyStyles(path string) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("reopen workbook: %w", err)
	}
	defer f.Close()

	border := []excelize.Border{
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: fontName, Size: 12, Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return fmt.Errorf("build header style: %w", err)
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: fontName, Size: 12},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return fmt.Errorf("build body style: %w", err)
	}

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		if len(rows) == 0 {
			continue
		}
		columns := 0
		for _, row := range rows {
			if len(row) > columns {
				columns = len(row)
			}
		}
		if columns == 0 {
			continue
		}
		lastColumn, err := excelize.ColumnNumberToName(columns)
		if err != nil {
			return fmt.Errorf("sheet %s column name: %w", sheet, err)
		}

		if err := f.SetCellStyle(sheet, "A1", lastColumn+"1", headerStyle); err != nil {
			return fmt.Errorf("style sheet %s header: %w", sheet, err)
		}
		if err := f.SetRowHeight(sheet, 1, headerHeight); err != nil {
			return fmt.Errorf("sheet %s header height: %w", sheet, err)
		}
		if len(rows) > 1 {
			bottomRight := fmt.Sprintf("%s%d", lastColumn, len(rows))
			if err := f.SetCellStyle(sheet, "A2", bottomRight, bodyStyle); err != nil {
				return fmt.Errorf("style sheet %s body: %w", sheet, err)
			}
		}
		if err := f.SetColWidth(sheet, "A", lastColumn, columnWidth); err != nil {
			return fmt.Errorf("sheet %s column width: %w", sheet, err)
		}
		if err := f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return fmt.Errorf("freeze sheet %s header: %w", sheet, err)
		}
	}

	for sheet, color := range map[string]string{
		SheetOverview: tabColorOverview,
		SheetLedger:   tabColorLedger,
	} {
		rgb := color
		if err := f.SetSheetProps(sheet, &excelize.SheetPropsOptions{TabColorRGB: &rgb}); err != nil {
			return fmt.Errorf("tab color %s: %w", sheet, err)
		}
	}

	if err := f.Save(); err != nil {
		return fmt.Errorf("save styled workbook: %w", err)
	}
	return nil
}
