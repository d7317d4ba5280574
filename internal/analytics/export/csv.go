// Package export renders list snapshots and dashboard summaries as CSV and
// XLSX files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// Column is one exported column of a record type.
type Column[T any] struct {
	Header string
	Value  func(T) string
	// Width is the XLSX column width; zero keeps the default.
	Width float64
}

// Text builds a column reading a string field.
func Text[T any](header string, value func(T) string) Column[T] {
	return Column[T]{Header: header, Value: value}
}

// Number builds a column printing a float with two decimals.
func Number[T any](header string, value func(T) float64) Column[T] {
	return Column[T]{Header: header, Value: func(rec T) string { return formatFloat(value(rec)) }}
}

// Int builds a column printing an integer.
func Int[T any](header string, value func(T) int64) Column[T] {
	return Column[T]{Header: header, Value: func(rec T) string { return strconv.FormatInt(value(rec), 10) }}
}

// FileName returns "{entity}_{YYYY-MM-DD}.{ext}".
func FileName(entity string, day time.Time, ext string) string {
	return fmt.Sprintf("%s_%s.%s", entity, day.Format("2006-01-02"), ext)
}

// WriteCSV writes a header row followed by one row per record. Values that
// contain the delimiter, quotes or newlines are quoted.
func WriteCSV[T any](w io.Writer, columns []Column[T], rows []T) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(headers(columns)); err != nil {
		return err
	}
	for _, rec := range rows {
		if err := writer.Write(cells(columns, rec)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func headers[T any](columns []Column[T]) []string {
	out := make([]string, len(columns))
	for i, col := range columns {
		out[i] = col.Header
	}
	return out
}

func cells[T any](columns []Column[T], rec T) []string {
	out := make([]string, len(columns))
	for i, col := range columns {
		if col.Value != nil {
			out[i] = col.Value(rec)
		}
	}
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
