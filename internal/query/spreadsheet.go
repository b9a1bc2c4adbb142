package query

import (
	"strings"

	"google.golang.org/api/sheets/v4"
)

// FromSpreadsheet collects the first column of every row across all sheets.
// Duplicate values are dropped, keeping the order of first appearance, and
// blank cells are skipped.
func FromSpreadsheet(ss *sheets.Spreadsheet) *List {
	if ss == nil {
		return NewList(nil)
	}
	seen := make(map[string]struct{})
	var items []string
	for _, sheet := range ss.Sheets {
		if sheet == nil || len(sheet.Data) == 0 || sheet.Data[0] == nil {
			continue
		}
		for _, row := range sheet.Data[0].RowData {
			if row == nil || len(row.Values) == 0 || row.Values[0] == nil {
				continue
			}
			value := row.Values[0].FormattedValue
			if strings.TrimSpace(value) == "" {
				continue
			}
			if _, dup := seen[value]; dup {
				continue
			}
			seen[value] = struct{}{}
			items = append(items, value)
		}
	}
	return &List{items: items}
}
