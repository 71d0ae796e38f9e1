// Package ingest parses uploaded CSV files of daily price data into
// PriceRecord batches. Files are processed independently: a malformed file
// fails on its own without affecting the rest of an upload.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"investmon/internal/models"
)

// expectedColumns is the canonical column order, also used to reinterpret
// headerless files positionally.
var expectedColumns = []string{"symbol", "date", "open", "high", "low", "close", "volume", "nfb_nfs"}

// dateLayouts are the accepted input date formats, normalized to YYYY-MM-DD.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02-Jan-2006",
}

// ParseFile reads one CSV file and returns its price records.
//
// Headers are matched case-insensitively and the legacy "nfb/nfs" header is
// normalized to "nfb_nfs". A file whose header row has no "date" column is
// treated as headerless and reparsed positionally with the canonical column
// order. An empty net-flow field becomes null.
func ParseFile(r io.Reader) ([]models.PriceRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	columns := normalizeHeader(rows[0])
	data := rows[1:]
	if indexOf(columns, "date") < 0 {
		// Headerless file: the first row is data, columns are positional.
		columns = expectedColumns
		data = rows
	}

	indices := make(map[string]int, len(expectedColumns))
	for _, name := range expectedColumns {
		idx := indexOf(columns, name)
		if idx < 0 {
			return nil, fmt.Errorf("missing column %q", name)
		}
		indices[name] = idx
	}

	records := make([]models.PriceRecord, 0, len(data))
	for i, row := range data {
		record, err := parseRow(row, indices)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		records = append(records, record)
	}

	return records, nil
}

func parseRow(row []string, indices map[string]int) (models.PriceRecord, error) {
	field := func(name string) (string, error) {
		idx := indices[name]
		if idx >= len(row) {
			return "", fmt.Errorf("missing %s field", name)
		}
		return strings.TrimSpace(row[idx]), nil
	}

	var record models.PriceRecord

	symbol, err := field("symbol")
	if err != nil {
		return record, err
	}
	if symbol == "" {
		return record, fmt.Errorf("empty symbol")
	}
	record.Symbol = symbol

	rawDate, err := field("date")
	if err != nil {
		return record, err
	}
	date, err := normalizeDate(rawDate)
	if err != nil {
		return record, err
	}
	record.Date = date

	for _, num := range []struct {
		name string
		dst  *float64
	}{
		{"open", &record.Open},
		{"high", &record.High},
		{"low", &record.Low},
		{"close", &record.Close},
		{"volume", &record.Volume},
	} {
		raw, err := field(num.name)
		if err != nil {
			return record, err
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return record, fmt.Errorf("invalid %s value %q", num.name, raw)
		}
		*num.dst = value
	}

	rawFlow, err := field("nfb_nfs")
	if err != nil {
		return record, err
	}
	if rawFlow != "" {
		flow, err := strconv.ParseFloat(rawFlow, 64)
		if err != nil {
			return record, fmt.Errorf("invalid nfb_nfs value %q", rawFlow)
		}
		record.NetFlow = &flow
	}

	return record, nil
}

// normalizeHeader lowercases column names and maps the nfb/nfs variant.
func normalizeHeader(row []string) []string {
	columns := make([]string, len(row))
	for i, name := range row {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "nfb/nfs" {
			name = "nfb_nfs"
		}
		columns[i] = name
	}
	return columns
}

// normalizeDate converts any accepted date format to YYYY-MM-DD.
func normalizeDate(raw string) (string, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("invalid date %q", raw)
}

func indexOf(columns []string, name string) int {
	for i, c := range columns {
		if c == name {
			return i
		}
	}
	return -1
}
