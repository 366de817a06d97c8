// Package chart draws the monthly dual bar chart of daily temperature ranges.
package chart

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/i474232898/weatherman/internal/weather"
)

const (
	marker       = "+"
	headerLayout = "January 2006"
)

// Renderer writes charts to w. Bars are coloured only when w is a terminal
// that supports it; buffers and HTTP bodies get plain text.
type Renderer struct {
	w     io.Writer
	lr    *lipgloss.Renderer
	plain bool
	high  lipgloss.Style
	low   lipgloss.Style
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithoutColor disables bar styling entirely.
func WithoutColor() Option {
	return func(r *Renderer) {
		r.plain = true
	}
}

// WithColorProfile forces a colour profile instead of detecting one from w.
func WithColorProfile(p termenv.Profile) Option {
	return func(r *Renderer) {
		r.lr.SetColorProfile(p)
	}
}

// New creates a Renderer bound to w.
func New(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{
		w:  w,
		lr: lipgloss.NewRenderer(w),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.high = r.lr.NewStyle()
	r.low = r.lr.NewStyle()
	if !r.plain {
		r.high = r.high.Foreground(lipgloss.Color("#FF0000"))
		r.low = r.low.Foreground(lipgloss.Color("#0000FF"))
	}
	return r
}

// Render writes a header line, then a highest-temperature line and a
// lowest-temperature line for every reading of the month, in stored order.
func (r *Renderer) Render(calc weather.MonthlyCalculation) error {
	for i, reading := range calc.Readings {
		if i == 0 {
			if _, err := fmt.Fprintln(r.w, header(calc, reading)); err != nil {
				return err
			}
		}

		day := dayLabel(reading)
		if err := r.bar(day, reading.MaxTemperature, r.high, "highest"); err != nil {
			return err
		}
		if err := r.bar(day, reading.MinTemperature, r.low, "lowest"); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) bar(day string, temperature *int, style lipgloss.Style, label string) error {
	if temperature == nil {
		_, err := fmt.Fprintf(r.w, "%s %s\n", day, style.Render("no available reading for "+label+" temperature"))
		return err
	}

	var markers string
	if n := *temperature; n > 0 {
		markers = style.Render(strings.Repeat(marker, n))
	}
	_, err := fmt.Fprintf(r.w, "%s %s %dC\n", day, markers, *temperature)
	return err
}

func header(calc weather.MonthlyCalculation, first weather.Reading) string {
	if first.HasDate() {
		return first.Date.Format(headerLayout)
	}
	return fmt.Sprintf("%s %d", calc.Month, calc.Year)
}

func dayLabel(r weather.Reading) string {
	if !r.HasDate() {
		return "--"
	}
	return strconv.Itoa(r.Date.Day())
}
