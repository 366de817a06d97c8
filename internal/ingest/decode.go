// Package ingest turns monthly weather files into a reading store.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/i474232898/weatherman/internal/common"
	"github.com/i474232898/weatherman/internal/weather"
)

var (
	// ErrNoHeader is returned when a file has no recognisable header row.
	ErrNoHeader = errors.New("no weather header found")

	errUnsupportedFormat = errors.New("unsupported file format")
)

type column int

const (
	colDate column = iota
	colMaxTemperature
	colMeanTemperature
	colMinTemperature
	colMaxHumidity
	colMeanHumidity
	colMinHumidity
)

// Source files name the date column after the station's timezone.
var headerColumns = map[string]column{
	"date":             colDate,
	"pkt":              colDate,
	"pkst":             colDate,
	"gst":              colDate,
	"maxtemperaturec":  colMaxTemperature,
	"meantemperaturec": colMeanTemperature,
	"mintemperaturec":  colMinTemperature,
	"maxhumidity":      colMaxHumidity,
	"meanhumidity":     colMeanHumidity,
	"minhumidity":      colMinHumidity,
}

var dateLayouts = []string{"2006-1-2", "2006/1/2"}

// Separator returns the field separator used by files with the given
// name, or an error for files that are not weather data.
func Separator(name string) (rune, error) {
	switch common.Ext(name) {
	case "csv", "txt":
		return ',', nil
	case "tsv":
		return '\t', nil
	default:
		return 0, fmt.Errorf("%w: %s", errUnsupportedFormat, name)
	}
}

// Decode reads one monthly file. Cells that are empty or not integers become
// absent values; rows are returned in file order.
func Decode(r io.Reader, comma rune) ([]weather.Reading, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var (
		index    map[column]int
		readings []weather.Reading
	)

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		if skipRecord(record) {
			continue
		}

		if index == nil {
			index = headerIndex(record)
			if len(index) == 0 {
				return nil, ErrNoHeader
			}
			continue
		}

		readings = append(readings, decodeRecord(record, index))
	}

	if index == nil {
		return nil, ErrNoHeader
	}
	return readings, nil
}

// skipRecord drops blank lines and the single-cell comment footers some
// sources append.
func skipRecord(record []string) bool {
	if len(record) <= 1 {
		return true
	}
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return common.HasAny(record[0], "<!--", "-->")
		}
	}
	return true
}

func headerIndex(record []string) map[column]int {
	index := make(map[column]int)
	for i, name := range record {
		col, ok := headerColumns[common.NormalizeHeader(name)]
		if !ok {
			continue
		}
		if _, dup := index[col]; !dup {
			index[col] = i
		}
	}
	return index
}

func decodeRecord(record []string, index map[column]int) weather.Reading {
	cell := func(c column) (string, bool) {
		i, ok := index[c]
		if !ok || i >= len(record) {
			return "", false
		}
		return strings.TrimSpace(record[i]), true
	}
	value := func(c column) *int {
		s, ok := cell(c)
		if !ok || s == "" {
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil
		}
		return &n
	}

	var r weather.Reading
	if s, ok := cell(colDate); ok {
		r.Date = parseDate(s)
	}
	r.MaxTemperature = value(colMaxTemperature)
	r.MeanTemperature = value(colMeanTemperature)
	r.MinTemperature = value(colMinTemperature)
	r.MaxHumidity = value(colMaxHumidity)
	r.MeanHumidity = value(colMeanHumidity)
	r.MinHumidity = value(colMinHumidity)
	return r
}

func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
