package weather

import (
	"fmt"
	"strings"
)

const reportDateLayout = "Jan 02"

// String renders the yearly report: temperatures in whole degrees, humidity
// in whole percent, dates abbreviated. Absent extremes print "no reading".
func (y YearlyCalculation) String() string {
	lines := []string{
		yearlyLine("Highest", "C", y.HighestTemperature),
		yearlyLine("Lowest", "C", y.LowestTemperature),
		yearlyLine("Humid", "%", y.HighestHumidity),
	}
	return strings.Join(lines, "\n")
}

func yearlyLine(label, unit string, v *DatedValue) string {
	if v == nil {
		return label + ": no reading"
	}
	return fmt.Sprintf("%s: %d%s on %s", label, v.Value, unit, v.Date.Format(reportDateLayout))
}

func (m MonthlyCalculation) String() string {
	return fmt.Sprintf(
		"Highest Average: %dC\nLowest Average: %dC\nAverage Humidity: %d%%",
		m.HighestMeanTemperature, m.LowestMeanTemperature, m.AverageHumidity,
	)
}
