package weather

import "time"

type extremum int

const (
	maximum extremum = iota
	minimum
)

// metric selects one optional field of a reading.
type metric func(Reading) *int

func maxTemperatureOf(r Reading) *int  { return r.MaxTemperature }
func minTemperatureOf(r Reading) *int  { return r.MinTemperature }
func meanTemperatureOf(r Reading) *int { return r.MeanTemperature }
func maxHumidityOf(r Reading) *int     { return r.MaxHumidity }

// extreme scans items in order and returns the extremal one. Items whose value
// is absent are skipped. On ties a maximum keeps the last item seen and a
// minimum keeps the first.
//
// TODO: confirm with report consumers whether the max/min tie-break asymmetry
// is wanted; the printed dates currently depend on it.
func extreme[T any](items []T, value func(T) (int, bool), kind extremum) (T, bool) {
	var (
		best    T
		bestVal int
		found   bool
	)
	for _, item := range items {
		v, ok := value(item)
		if !ok {
			continue
		}
		if !found || wins(kind, v, bestVal) {
			best, bestVal, found = item, v, true
		}
	}
	return best, found
}

func wins(kind extremum, candidate, current int) bool {
	if kind == maximum {
		return candidate >= current
	}
	return candidate < current
}

func readingValue(m metric) func(Reading) (int, bool) {
	return func(r Reading) (int, bool) {
		v := m(r)
		if v == nil {
			return 0, false
		}
		return *v, true
	}
}

func datedValue(d DatedValue) (int, bool) {
	return d.Value, true
}

// monthCandidate returns the month's extremal (date, value) pair for m.
func monthCandidate(readings []Reading, m metric, kind extremum) (DatedValue, bool) {
	r, ok := extreme(readings, readingValue(m), kind)
	if !ok {
		return DatedValue{}, false
	}
	return DatedValue{Date: r.Date, Value: *m(r)}, true
}

// ComputeYear finds the highest maximum temperature, the lowest minimum
// temperature and the highest maximum humidity of a year. Months are scanned
// January to December, readings in store order.
func ComputeYear(year int, s Store) (YearlyCalculation, error) {
	var (
		highs, lows, humids []DatedValue
		months              int
	)

	for month := time.January; month <= time.December; month++ {
		readings, ok := s.Get(year, month)
		if !ok || len(readings) == 0 {
			continue
		}
		months++

		if c, ok := monthCandidate(readings, maxTemperatureOf, maximum); ok {
			highs = append(highs, c)
		}
		if c, ok := monthCandidate(readings, minTemperatureOf, minimum); ok {
			lows = append(lows, c)
		}
		if c, ok := monthCandidate(readings, maxHumidityOf, maximum); ok {
			humids = append(humids, c)
		}
	}

	if months == 0 {
		return YearlyCalculation{}, ErrYearNotFound
	}

	calc := YearlyCalculation{
		Year:               year,
		HighestTemperature: overall(highs, maximum),
		LowestTemperature:  overall(lows, minimum),
		HighestHumidity:    overall(humids, maximum),
	}
	if calc.HighestTemperature == nil && calc.LowestTemperature == nil && calc.HighestHumidity == nil {
		return YearlyCalculation{}, ErrMissingMetric
	}
	return calc, nil
}

// overall picks the year's extreme among the per-month candidates, or nil
// when no month had one.
func overall(candidates []DatedValue, kind extremum) *DatedValue {
	best, ok := extreme(candidates, datedValue, kind)
	if !ok {
		return nil
	}
	return &best
}

// ComputeMonth computes the extremal daily mean temperatures and the average
// mean humidity of one month.
func ComputeMonth(year int, month time.Month, s Store) (MonthlyCalculation, error) {
	readings, ok := s.Get(year, month)
	if !ok || len(readings) == 0 {
		return MonthlyCalculation{}, ErrMonthNotFound
	}

	highest, okHigh := monthCandidate(readings, meanTemperatureOf, maximum)
	lowest, okLow := monthCandidate(readings, meanTemperatureOf, minimum)
	if !okHigh || !okLow {
		return MonthlyCalculation{}, ErrMissingMetric
	}

	// Divided by every reading of the month, including days without a value.
	var humiditySum int
	for _, r := range readings {
		if r.MeanHumidity != nil {
			humiditySum += *r.MeanHumidity
		}
	}

	chart := make([]Reading, len(readings))
	copy(chart, readings)

	return MonthlyCalculation{
		Year:                   year,
		Month:                  month,
		HighestMeanTemperature: highest.Value,
		LowestMeanTemperature:  lowest.Value,
		AverageHumidity:        humiditySum / len(readings),
		Readings:               chart,
	}, nil
}
