package multas

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar day with no time or zone attached. The zero value means "no date".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate reads a DD/MM/YYYY string. It reports false for empty input, for anything that
// does not split into exactly three numeric parts and for impossible calendar days.
func ParseDate(s string) (Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, false
	}

	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return Date{}, false
	}

	nums := make([]int, 3)
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || !isDigits(p) {
			return Date{}, false
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, false
		}
		nums[i] = n
	}

	day, month, year := nums[0], nums[1], nums[2]
	if month < 1 || month > 12 || day < 1 {
		return Date{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return Date{}, false
	}

	return Date{Year: year, Month: time.Month(month), Day: day}, true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// DateOf truncates t to its calendar day in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) Before(o Date) bool {
	return d.Time().Before(o.Time())
}

func (d Date) After(o Date) bool {
	return d.Time().After(o.Time())
}

// DaysUntil is the number of whole days from d to o (negative when o is earlier).
func (d Date) DaysUntil(o Date) int {
	return int(o.Time().Sub(d.Time()).Hours() / 24)
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) AddMonths(n int) Date {
	return DateOf(d.Time().AddDate(0, n, 0))
}

// String formats the day as DD/MM/YYYY, the format the record store uses.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

// MonthKey groups dates by month as MM/YYYY.
func (d Date) MonthKey() string {
	return fmt.Sprintf("%02d/%04d", int(d.Month), d.Year)
}
