package model

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

// Interval полуоткрытый интервал [Start, End) в минутах от полуночи
type Interval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// InvalidIntervalError возвращается, когда Start >= End
type InvalidIntervalError struct {
	Interval Interval
}

func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf("invalid interval %s: start must be before end", e.Interval)
}

// NewInterval создаёт интервал и проверяет его корректность
func NewInterval(start, end int) (Interval, error) {
	iv := Interval{Start: start, End: end}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

// Validate проверяет, что интервал непустой
func (iv Interval) Validate() error {
	if iv.Start >= iv.End {
		return &InvalidIntervalError{Interval: iv}
	}
	return nil
}

// Duration длительность интервала в минутах
func (iv Interval) Duration() int {
	return iv.End - iv.Start
}

func (iv Interval) String() string {
	return FormatMinutes(iv.Start) + "-" + FormatMinutes(iv.End)
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов.
// Интервалы, касающиеся границей (a.End == b.Start), не пересекаются.
func Overlaps(a, b Interval) bool {
	return !(a.End <= b.Start || a.Start >= b.End)
}

// ParseInterval разбирает строку вида "10:00-11:30"
func ParseInterval(s string) (Interval, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return Interval{}, fmt.Errorf("parse interval %q: expected HH:MM-HH:MM", s)
	}

	start, err := ParseMinutes(parts[0])
	if err != nil {
		return Interval{}, fmt.Errorf("parse interval start: %w", err)
	}
	end, err := ParseMinutes(parts[1])
	if err != nil {
		return Interval{}, fmt.Errorf("parse interval end: %w", err)
	}

	return NewInterval(start, end)
}

// ParseMinutes переводит "HH:MM" в минуты от полуночи. "24:00" допустимо как конец дня.
func ParseMinutes(s string) (int, error) {
	hm := strings.Split(strings.TrimSpace(s), ":")
	if len(hm) != 2 {
		return 0, fmt.Errorf("parse time %q: expected HH:MM", s)
	}

	hours, err := strconv.Atoi(hm[0])
	if err != nil {
		return 0, fmt.Errorf("parse hours %q: %w", hm[0], err)
	}
	minutes, err := strconv.Atoi(hm[1])
	if err != nil {
		return 0, fmt.Errorf("parse minutes %q: %w", hm[1], err)
	}

	if hours < 0 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("parse time %q: out of range", s)
	}
	total := hours*60 + minutes
	if total > MinutesPerDay {
		return 0, fmt.Errorf("parse time %q: out of range", s)
	}

	return total, nil
}

// FormatMinutes переводит минуты от полуночи в "HH:MM"
func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
