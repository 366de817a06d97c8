package weather

import (
	"fmt"
	"time"
)

// Reading is one day's observation record. Numeric fields are nil when the
// source had no usable value for that day.
type Reading struct {
	Date time.Time `json:"date"`

	MaxTemperature  *int `json:"maxTemperatureC,omitempty"`
	MeanTemperature *int `json:"meanTemperatureC,omitempty"`
	MinTemperature  *int `json:"minTemperatureC,omitempty"`

	MaxHumidity  *int `json:"maxHumidityPercent,omitempty"`
	MeanHumidity *int `json:"meanHumidityPercent,omitempty"`
	MinHumidity  *int `json:"minHumidityPercent,omitempty"`
}

// HasDate reports whether the source supplied a date for this reading.
func (r Reading) HasDate() bool {
	return !r.Date.IsZero()
}

// Key returns the (year, month) group this reading belongs to.
// The second value is false for undated readings.
func (r Reading) Key() (MonthKey, bool) {
	if !r.HasDate() {
		return MonthKey{}, false
	}
	return MonthKey{Year: r.Date.Year(), Month: r.Date.Month()}, true
}

// MonthKey is the composite key readings are grouped by.
type MonthKey struct {
	Year  int
	Month time.Month
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%04d/%02d", k.Year, int(k.Month))
}

// Before orders keys chronologically.
func (k MonthKey) Before(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

// Value returns a pointer to v, for building readings by hand.
func Value(v int) *int {
	return &v
}

// DatedValue pairs an extremal value with the day it was observed on.
type DatedValue struct {
	Date  time.Time `json:"date"`
	Value int       `json:"value"`
}

// YearlyCalculation holds the extremes of a year. Each pair is selected
// independently and may come from a different day; a pair is nil when no
// reading of the year carries the field it is computed from.
type YearlyCalculation struct {
	Year               int         `json:"year"`
	HighestTemperature *DatedValue `json:"highestTemperature"`
	LowestTemperature  *DatedValue `json:"lowestTemperature"`
	HighestHumidity    *DatedValue `json:"highestHumidity"`
}

// MonthlyCalculation holds the mean-based statistics of a month and the
// readings the chart is drawn from.
type MonthlyCalculation struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`

	// Extremal single-day mean temperatures, not month averages.
	HighestMeanTemperature int `json:"highestMeanTemperature"`
	LowestMeanTemperature  int `json:"lowestMeanTemperature"`

	// Sum of present mean humidities over the number of readings, truncated.
	AverageHumidity int `json:"averageHumidity"`

	Readings []Reading `json:"readings"`
}

// Key returns the month this calculation was computed for.
func (m MonthlyCalculation) Key() MonthKey {
	return MonthKey{Year: m.Year, Month: m.Month}
}
