// Package ingest parses uploaded comparison spreadsheets into product rows.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"pricelens/models"
)

// Column headers are matched case-insensitively. Any header containing
// "competitor" or "url" is treated as a competitor URL column, so sheets
// with competitor_url_1..n or just url1/url2 all work.
const (
	nameHeader  = "product_name"
	priceHeader = "our_price"
)

// ParseProducts reads a comparison CSV and returns the valid product rows.
// Rows missing a name, a price or any usable URL are skipped, not fatal;
// an unusable header row is.
func ParseProducts(r io.Reader) ([]models.ProductRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are common in hand-edited sheets
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %v", err)
	}

	nameCol, priceCol := -1, -1
	var urlCols []int
	for i, column := range header {
		normalized := strings.ToLower(strings.TrimSpace(column))
		switch {
		case normalized == nameHeader:
			nameCol = i
		case normalized == priceHeader:
			priceCol = i
		case strings.Contains(normalized, "competitor") || strings.Contains(normalized, "url"):
			urlCols = append(urlCols, i)
		}
	}

	if nameCol < 0 || priceCol < 0 {
		return nil, fmt.Errorf("CSV must have %q and %q columns", nameHeader, priceHeader)
	}
	if len(urlCols) == 0 {
		return nil, fmt.Errorf("CSV has no competitor URL columns")
	}

	var rows []models.ProductRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %v", err)
		}

		row := models.ProductRow{
			ProductName: fieldAt(record, nameCol),
			OurPrice:    fieldAt(record, priceCol),
		}
		for _, col := range urlCols {
			if url := fieldAt(record, col); url != "" {
				row.CompetitorURLs = append(row.CompetitorURLs, url)
			}
		}

		if row.ProductName == "" || row.OurPrice == "" || len(row.CompetitorURLs) == 0 {
			continue
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV contains no valid product rows")
	}

	return rows, nil
}

func fieldAt(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
