package gateways

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/ochairo/rsasxlsx/internal/domain/entities"
)

// SheetName is the title of the single worksheet
const SheetName = "漏洞清单"

// HeaderFill is the background colour of the header row
const HeaderFill = "4F81BD"

// Headers are the column titles, in RiskRow field order
var Headers = []string{"序号", "风险名称", "风险等级", "风险描述", "加固建议", "风险来源", "端口", "扫描设备"}

// xlsxReportWriter renders risk rows with excelize
type xlsxReportWriter struct{}

// NewXLSXReportWriter creates a new spreadsheet writer
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewXLSXReportWriter() *xlsxReportWriter {
	return &xlsxReportWriter{}
}

// Write renders rows into a new workbook at path, replacing any existing file
func (w *xlsxReportWriter) Write(_ context.Context, path string, rows []entities.RiskRow) error {
	f := excelize.NewFile()
	//nolint:errcheck // Close only releases temp files of an unsaved workbook
	defer f.Close()

	if err := w.render(f, rows); err != nil {
		return fmt.Errorf("%w: %s: %w", entities.ErrOutputWrite, path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %s: %w", entities.ErrOutputWrite, path, err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: %s: %w", entities.ErrOutputWrite, path, err)
	}

	return nil
}

func (w *xlsxReportWriter) render(f *excelize.File, rows []entities.RiskRow) error {
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{HeaderFill}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return err
	}

	header := make([]interface{}, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(Headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", lastHeader, headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			row.Sequence,
			row.Name,
			row.Level.Label(),
			row.Description,
			row.Remediation,
			row.Source,
			row.Port,
			row.ScanningDevice,
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return err
		}
	}

	return nil
}
