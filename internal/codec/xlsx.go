package codec

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/xuri/excelize/v2"
)

// XLSX reads and writes the contact spreadsheet. Only the first worksheet is
// read; its first row holds the column headers. Legacy .xls (BIFF) files are
// rejected by the underlying reader and surface as a decode error.
type XLSX struct{}

// Decode parses a workbook into rows keyed by header name.
// Blank rows are skipped; a header-only sheet yields zero rows.
func (XLSX) Decode(r io.Reader) ([]addressbook.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrOpenWorkbook, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New(config.ErrNoSheet)
	}

	grid, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrReadSheet, err)
	}
	if len(grid) == 0 {
		return nil, nil
	}

	header := make([]string, len(grid[0]))
	for i, h := range grid[0] {
		header[i] = strings.TrimSpace(h)
	}

	rows := make([]addressbook.Row, 0, len(grid)-1)
	for i, cells := range grid[1:] {
		m := make(map[string]string, len(header))
		for col, name := range header {
			if name == "" || col >= len(cells) {
				continue
			}
			m[name] = cells[col]
		}

		row := addressbook.RowFromMap(m)
		if row.IsBlank() {
			slog.Debug(config.MsgSkippedRow,
				config.LogKeyComponent, config.CompCodec,
				config.LogKeyRows, i+2)
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Encode writes a single "Contacts" sheet: the header row then one row per
// entry, every cell stored as text so phone numbers keep their formatting.
func (XLSX) Encode(w io.Writer, rows []addressbook.Row) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), config.ExportSheetName); err != nil {
		return fmt.Errorf("%s: %w", config.ErrEncode, err)
	}

	sw, err := f.NewStreamWriter(config.ExportSheetName)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrEncode, err)
	}

	if err := sw.SetRow(config.DefaultCellAddress, toCells(config.Columns)); err != nil {
		return fmt.Errorf("%s: %w", config.ErrEncode, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("%s: %w", config.ErrEncode, err)
		}
		if err := sw.SetRow(cell, toCells(row.Values())); err != nil {
			return fmt.Errorf("%s: %w", config.ErrEncode, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrEncode, err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("%s: %w", config.ErrEncode, err)
	}
	return nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
