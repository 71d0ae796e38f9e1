package ingest

import (
	"strings"
	"testing"
)

func TestParseFile(t *testing.T) {
	t.Run("standard_header", func(t *testing.T) {
		csv := "symbol,date,open,high,low,close,volume,nfb_nfs\n" +
			"AAPL,2026-08-25,100,105,99,104,1000000,5000\n" +
			"MSFT,2026-08-25,300,310,295,305,2000000,-3000\n"

		records, err := ParseFile(strings.NewReader(csv))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}
		if records[0].Symbol != "AAPL" || records[0].Date != "2026-08-25" {
			t.Errorf("unexpected first record: %+v", records[0])
		}
		if records[0].Close != 104 {
			t.Errorf("expected close 104, got %f", records[0].Close)
		}
		if records[0].NetFlow == nil || *records[0].NetFlow != 5000 {
			t.Errorf("expected net flow 5000, got %v", records[0].NetFlow)
		}
		if records[1].NetFlow == nil || *records[1].NetFlow != -3000 {
			t.Errorf("expected net flow -3000, got %v", records[1].NetFlow)
		}
	})

	t.Run("legacy_nfb_nfs_header", func(t *testing.T) {
		csv := "Symbol,Date,Open,High,Low,Close,Volume,NFB/NFS\n" +
			"AAPL,2026-08-25,100,105,99,104,1000000,5000\n"

		records, err := ParseFile(strings.NewReader(csv))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if records[0].NetFlow == nil || *records[0].NetFlow != 5000 {
			t.Errorf("expected net flow 5000, got %v", records[0].NetFlow)
		}
	})

	t.Run("headerless_file", func(t *testing.T) {
		csv := "AAPL,2026-08-25,100,105,99,104,1000000,5000\n" +
			"MSFT,2026-08-25,300,310,295,305,2000000,\n"

		records, err := ParseFile(strings.NewReader(csv))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("expected 2 records including the first row, got %d", len(records))
		}
		if records[0].Symbol != "AAPL" {
			t.Errorf("expected first row treated as data, got %+v", records[0])
		}
	})

	t.Run("reordered_columns", func(t *testing.T) {
		csv := "date,symbol,close,open,high,low,volume,nfb_nfs\n" +
			"2026-08-25,AAPL,104,100,105,99,1000000,\n"

		records, err := ParseFile(strings.NewReader(csv))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if records[0].Symbol != "AAPL" || records[0].Close != 104 || records[0].Open != 100 {
			t.Errorf("columns not matched by name: %+v", records[0])
		}
	})

	t.Run("date_formats_normalized", func(t *testing.T) {
		cases := []struct {
			raw      string
			expected string
		}{
			{"2026-08-25", "2026-08-25"},
			{"2026/08/25", "2026-08-25"},
			{"08/25/2026", "2026-08-25"},
			{"8/5/2026", "2026-08-05"},
			{"25-Aug-2026", "2026-08-25"},
		}

		for _, tc := range cases {
			csv := "symbol,date,open,high,low,close,volume,nfb_nfs\n" +
				"AAPL," + tc.raw + ",100,105,99,104,1000000,\n"
			records, err := ParseFile(strings.NewReader(csv))
			if err != nil {
				t.Fatalf("date %q: unexpected error: %v", tc.raw, err)
			}
			if records[0].Date != tc.expected {
				t.Errorf("date %q: expected %q, got %q", tc.raw, tc.expected, records[0].Date)
			}
		}
	})

	t.Run("empty_net_flow_is_null", func(t *testing.T) {
		csv := "symbol,date,open,high,low,close,volume,nfb_nfs\n" +
			"AAPL,2026-08-25,100,105,99,104,1000000,\n"

		records, err := ParseFile(strings.NewReader(csv))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if records[0].NetFlow != nil {
			t.Errorf("expected nil net flow, got %v", *records[0].NetFlow)
		}
	})

	t.Run("invalid_number_reports_row", func(t *testing.T) {
		csv := "symbol,date,open,high,low,close,volume,nfb_nfs\n" +
			"AAPL,2026-08-25,100,105,99,104,1000000,\n" +
			"MSFT,2026-08-25,abc,310,295,305,2000000,\n"

		_, err := ParseFile(strings.NewReader(csv))
		if err == nil {
			t.Fatal("expected error for non-numeric open")
		}
		if !strings.Contains(err.Error(), "row 2") {
			t.Errorf("expected row number in error, got %q", err.Error())
		}
	})

	t.Run("invalid_date", func(t *testing.T) {
		csv := "symbol,date,open,high,low,close,volume,nfb_nfs\n" +
			"AAPL,not-a-date,100,105,99,104,1000000,\n"

		if _, err := ParseFile(strings.NewReader(csv)); err == nil {
			t.Fatal("expected error for invalid date")
		}
	})

	t.Run("empty_symbol", func(t *testing.T) {
		csv := "symbol,date,open,high,low,close,volume,nfb_nfs\n" +
			",2026-08-25,100,105,99,104,1000000,\n"

		if _, err := ParseFile(strings.NewReader(csv)); err == nil {
			t.Fatal("expected error for empty symbol")
		}
	})

	t.Run("missing_column", func(t *testing.T) {
		csv := "symbol,date,open,high,low,volume,nfb_nfs\n" +
			"AAPL,2026-08-25,100,105,99,1000000,\n"

		_, err := ParseFile(strings.NewReader(csv))
		if err == nil {
			t.Fatal("expected error for missing close column")
		}
		if !strings.Contains(err.Error(), "close") {
			t.Errorf("expected missing column named in error, got %q", err.Error())
		}
	})

	t.Run("empty_file", func(t *testing.T) {
		if _, err := ParseFile(strings.NewReader("")); err == nil {
			t.Fatal("expected error for empty file")
		}
	})
}
