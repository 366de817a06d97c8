package weather

import (
	"testing"
	"time"
)

func TestYearlyCalculationString(t *testing.T) {
	y := YearlyCalculation{
		Year:               2004,
		HighestTemperature: &DatedValue{Date: day(2004, time.June, 23), Value: 45},
		LowestTemperature:  &DatedValue{Date: day(2004, time.December, 2), Value: -1},
		HighestHumidity:    &DatedValue{Date: day(2004, time.August, 14), Value: 95},
	}

	want := "Highest: 45C on Jun 23\nLowest: -1C on Dec 02\nHumid: 95% on Aug 14"
	if got := y.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestYearlyCalculationStringAbsentMetric(t *testing.T) {
	y := YearlyCalculation{
		Year:               2024,
		HighestTemperature: &DatedValue{Date: day(2024, time.January, 1), Value: 10},
	}

	want := "Highest: 10C on Jan 01\nLowest: no reading\nHumid: no reading"
	if got := y.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestMonthlyCalculationString(t *testing.T) {
	m := MonthlyCalculation{
		Year:                   2024,
		Month:                  time.January,
		HighestMeanTemperature: 20,
		LowestMeanTemperature:  10,
		AverageHumidity:        55,
	}

	want := "Highest Average: 20C\nLowest Average: 10C\nAverage Humidity: 55%"
	if got := m.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestMonthKey(t *testing.T) {
	k := MonthKey{Year: 2004, Month: time.June}
	if k.String() != "2004/06" {
		t.Fatalf("String() = %q", k.String())
	}
	if !k.Before(MonthKey{Year: 2004, Month: time.July}) || !k.Before(MonthKey{Year: 2005, Month: time.January}) {
		t.Fatalf("Before ordering is wrong")
	}
	if k.Before(k) {
		t.Fatalf("a key is not before itself")
	}

	if _, ok := (Reading{}).Key(); ok {
		t.Fatalf("undated reading must not have a key")
	}
	if got, ok := (Reading{Date: day(2004, time.June, 3)}).Key(); !ok || got != k {
		t.Fatalf("Key() = %v, %v", got, ok)
	}
}
