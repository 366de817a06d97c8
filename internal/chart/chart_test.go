package chart

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"

	"github.com/i474232898/weatherman/internal/weather"
)

func june(day int) time.Time {
	return time.Date(2004, time.June, day, 0, 0, 0, 0, time.UTC)
}

func render(t *testing.T, calc weather.MonthlyCalculation) []string {
	t.Helper()
	var buf bytes.Buffer
	if err := New(&buf).Render(calc); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
}

func TestRenderBars(t *testing.T) {
	calc := weather.MonthlyCalculation{
		Year:  2004,
		Month: time.June,
		Readings: []weather.Reading{
			{Date: june(7), MaxTemperature: weather.Value(5), MinTemperature: weather.Value(3)},
		},
	}

	lines := render(t, calc)
	if len(lines) != 3 {
		t.Fatalf("expected header and two bars, got %q", lines)
	}
	if lines[0] != "June 2004" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "7 +++++ 5C" {
		t.Fatalf("high bar = %q", lines[1])
	}
	if lines[2] != "7 +++ 3C" {
		t.Fatalf("low bar = %q", lines[2])
	}
}

func TestRenderMissingReading(t *testing.T) {
	calc := weather.MonthlyCalculation{
		Year:  2004,
		Month: time.June,
		Readings: []weather.Reading{
			{Date: june(1), MinTemperature: weather.Value(12)},
			{Date: june(2), MaxTemperature: weather.Value(2)},
		},
	}

	lines := render(t, calc)
	want := []string{
		"June 2004",
		"1 no available reading for highest temperature",
		"1 ++++++++++++ 12C",
		"2 ++ 2C",
		"2 no available reading for lowest temperature",
	}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Fatalf("got:\n%s\nwant:\n%s", strings.Join(lines, "\n"), strings.Join(want, "\n"))
	}
}

func TestRenderNonPositiveTemperatures(t *testing.T) {
	calc := weather.MonthlyCalculation{
		Year:  2004,
		Month: time.January,
		Readings: []weather.Reading{
			{Date: time.Date(2004, time.January, 3, 0, 0, 0, 0, time.UTC), MaxTemperature: weather.Value(0), MinTemperature: weather.Value(-4)},
		},
	}

	lines := render(t, calc)
	if strings.Count(lines[1], marker) != 0 || !strings.HasSuffix(lines[1], " 0C") {
		t.Fatalf("zero bar = %q", lines[1])
	}
	if strings.Count(lines[2], marker) != 0 || !strings.HasSuffix(lines[2], " -4C") {
		t.Fatalf("negative bar = %q", lines[2])
	}
}

func TestRenderKeepsStoredOrder(t *testing.T) {
	calc := weather.MonthlyCalculation{
		Year:  2004,
		Month: time.June,
		Readings: []weather.Reading{
			{Date: june(3), MaxTemperature: weather.Value(1), MinTemperature: weather.Value(1)},
			{Date: june(1), MaxTemperature: weather.Value(1), MinTemperature: weather.Value(1)},
		},
	}

	lines := render(t, calc)
	if len(lines) != 5 || !strings.HasPrefix(lines[1], "3 ") || !strings.HasPrefix(lines[3], "1 ") {
		t.Fatalf("unexpected order %q", lines)
	}
}

func TestRenderUndatedFirstReading(t *testing.T) {
	calc := weather.MonthlyCalculation{
		Year:     2004,
		Month:    time.June,
		Readings: []weather.Reading{{MaxTemperature: weather.Value(2), MinTemperature: weather.Value(1)}},
	}

	lines := render(t, calc)
	if lines[0] != "June 2004" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "-- ++ 2C" {
		t.Fatalf("undated bar = %q", lines[1])
	}
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, WithoutColor()).Render(weather.MonthlyCalculation{}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

var ansiSequence = regexp.MustCompile("\x1b\\[[0-9;]*m")

func TestRenderColoredBars(t *testing.T) {
	calc := weather.MonthlyCalculation{
		Year:  2004,
		Month: time.June,
		Readings: []weather.Reading{
			{Date: june(7), MaxTemperature: weather.Value(5), MinTemperature: weather.Value(3)},
		},
	}

	var buf bytes.Buffer
	if err := New(&buf, WithColorProfile(termenv.TrueColor)).Render(calc); err != nil {
		t.Fatalf("Render: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and two bars, got %q", lines)
	}

	high := ansiSequence.FindString(lines[1])
	low := ansiSequence.FindString(lines[2])
	if high == "" || low == "" {
		t.Fatalf("expected escape sequences on both bars, got %q and %q", lines[1], lines[2])
	}
	if high == low {
		t.Fatalf("high and low bars share style %q", high)
	}

	if n := strings.Count(lines[1], marker); n != 5 {
		t.Fatalf("high bar has %d markers, want 5", n)
	}
	if n := strings.Count(lines[2], marker); n != 3 {
		t.Fatalf("low bar has %d markers, want 3", n)
	}
	if got := ansiSequence.ReplaceAllString(lines[1], ""); got != "7 +++++ 5C" {
		t.Fatalf("high bar without styling = %q", got)
	}
	if got := ansiSequence.ReplaceAllString(lines[2], ""); got != "7 +++ 3C" {
		t.Fatalf("low bar without styling = %q", got)
	}
}

func TestRenderWithoutColorIgnoresProfile(t *testing.T) {
	calc := weather.MonthlyCalculation{
		Year:     2004,
		Month:    time.June,
		Readings: []weather.Reading{{Date: june(1), MaxTemperature: weather.Value(2), MinTemperature: weather.Value(1)}},
	}

	var buf bytes.Buffer
	if err := New(&buf, WithColorProfile(termenv.TrueColor), WithoutColor()).Render(calc); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("unexpected escape sequences in %q", buf.String())
	}
}
