package model

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date календарная дата без времени. Сравнима, подходит для ключей map.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf возвращает дату момента времени в его часовом поясе
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Time возвращает полночь даты в UTC
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays сдвигает дату на n дней
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Before сравнивает даты
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// IsZero проверяет, что дата не задана
func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return d.Time().Format(dateLayout)
}
