// Package cli parses the report selectors accepted on the command line and
// in query strings.
package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidSelector wraps every selector parse or validation failure.
var ErrInvalidSelector = errors.New("invalid selector")

var validate = validator.New()

// YearSelector is the raw yearly-report argument.
type YearSelector struct {
	Year string `validate:"required,len=4,number"`
}

// MonthSelector is a year/month pair after splitting "YYYY/MM".
type MonthSelector struct {
	Year  string `validate:"required,len=4,number"`
	Month string `validate:"required,min=1,max=2,number"`
}

// ParseYear accepts exactly four digits, e.g. "2004".
func ParseYear(s string) (int, error) {
	sel := YearSelector{Year: strings.TrimSpace(s)}
	if err := validate.Struct(sel); err != nil {
		return 0, fmt.Errorf("%w: year must be in YYYY format", ErrInvalidSelector)
	}
	return strconv.Atoi(sel.Year)
}

// ParseYearMonth accepts "YYYY/M" or "YYYY/MM" with a month between 1 and 12.
func ParseYearMonth(s string) (int, time.Month, error) {
	yearStr, monthStr, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return 0, 0, fmt.Errorf("%w: date must be in YYYY/MM format", ErrInvalidSelector)
	}
	return parseMonthSelector(MonthSelector{Year: yearStr, Month: monthStr})
}

// ParseYearAndMonth validates year and month given as separate values, as
// they arrive in query strings.
func ParseYearAndMonth(year, month string) (int, time.Month, error) {
	return parseMonthSelector(MonthSelector{
		Year:  strings.TrimSpace(year),
		Month: strings.TrimSpace(month),
	})
}

func parseMonthSelector(sel MonthSelector) (int, time.Month, error) {
	if err := validate.Struct(sel); err != nil {
		return 0, 0, fmt.Errorf("%w: date must be in YYYY/MM format", ErrInvalidSelector)
	}

	year, err := strconv.Atoi(sel.Year)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidSelector, err)
	}
	month, err := strconv.Atoi(sel.Month)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidSelector, err)
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidSelector)
	}
	return year, time.Month(month), nil
}
