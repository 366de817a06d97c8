package ingest

import (
	"github.com/i474232898/weatherman/internal/store"
	"github.com/i474232898/weatherman/internal/weather"
)

// fileKey is the month a file describes: the month of its last dated row.
func fileKey(readings []weather.Reading) (weather.MonthKey, bool) {
	for i := len(readings) - 1; i >= 0; i-- {
		if key, ok := readings[i].Key(); ok {
			return key, true
		}
	}
	return weather.MonthKey{}, false
}

// addFile folds one decoded file into b, preserving row order. Dated rows go
// to their own month; undated rows go to the file's month. It returns false
// when the file has no dated row and so cannot be keyed.
func addFile(b *store.Builder, readings []weather.Reading) (weather.MonthKey, bool) {
	key, ok := fileKey(readings)
	if !ok {
		return weather.MonthKey{}, false
	}
	for _, r := range readings {
		if !b.Add(r) {
			b.AddMonth(key, r)
		}
	}
	return key, true
}
