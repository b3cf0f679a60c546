package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"fidash/pkg/contracts/domain"
)

// utf8BOM helps Excel recognize the download as UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ForecastHeaders is the column order of the long-form forecast export.
var ForecastHeaders = []string{"indicator_code", "year", "scenario", "forecast_value"}

// WriteOptions configures CSV writing behavior.
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV streams headers and records to w with the given options.
func WriteCSV(w io.Writer, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ForecastRecords serializes the long-form forecast rows in export column
// order.
func ForecastRecords(rows []domain.ForecastRow) [][]string {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			row.IndicatorCode,
			strconv.Itoa(row.Year),
			string(row.Scenario),
			strconv.FormatFloat(row.ForecastValue, 'f', -1, 64),
		})
	}
	return records
}

// WriteForecastCSV streams the long-form forecast table as a BOM-prefixed
// CSV download body.
func WriteForecastCSV(w io.Writer, rows []domain.ForecastRow) error {
	return WriteCSV(w, WriteOptions{
		Headers:   ForecastHeaders,
		Records:   ForecastRecords(rows),
		BOMPrefix: true,
	})
}
