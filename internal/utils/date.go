package util

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var ErrInvalidDateFormat = errors.New("invalid date format")

var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

var location = time.Local

// SetLocation changes the zone used to decide which calendar day "today" is.
func SetLocation(loc *time.Location) {
	if loc == nil {
		loc = time.Local
	}
	location = loc
}

func Location() *time.Location {
	return location
}

// Date is a calendar day. The wrapped time is always midnight UTC so day
// arithmetic never crosses a DST boundary.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf keeps the calendar day of t as seen in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

func Today(now time.Time) Date {
	return DateOf(now.In(location))
}

func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, fmt.Errorf("%w: empty value", ErrInvalidDateFormat)
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return DateOf(t), nil
	}
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
}

// ParseDateValue accepts the heterogeneous inputs clients and drivers send.
func ParseDateValue(v interface{}) (Date, error) {
	switch val := v.(type) {
	case Date:
		return val, nil
	case *Date:
		if val == nil {
			return Date{}, fmt.Errorf("%w: nil date", ErrInvalidDateFormat)
		}
		return *val, nil
	case time.Time:
		return DateOf(val), nil
	case *time.Time:
		if val == nil {
			return Date{}, fmt.Errorf("%w: nil time", ErrInvalidDateFormat)
		}
		return DateOf(*val), nil
	case string:
		return ParseDate(val)
	case []byte:
		return ParseDate(string(val))
	default:
		return Date{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidDateFormat, v)
	}
}

func FormatDate(d Date) string {
	return d.String()
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) AddDays(n int) Date {
	return Date{d.Time.AddDate(0, 0, n)}
}

func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

// Between reports whether d lies in [start, end]. A nil end is unbounded.
func (d Date) Between(start Date, end *Date) bool {
	if d.Before(start) {
		return false
	}
	return end == nil || !d.After(*end)
}

func (d Date) Ptr() *Date {
	return &d
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

func (d *Date) Scan(value interface{}) error {
	if value == nil {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDateValue(value)
	if err != nil {
		return fmt.Errorf("cannot scan %T into Date: %w", value, err)
	}
	*d = parsed
	return nil
}

// SortedUnique returns a new ascending slice without duplicate days.
func SortedUnique(dates []Date) []Date {
	out := make([]Date, 0, len(dates))
	seen := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		key := d.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

func ContainsDate(dates []Date, target Date) bool {
	for _, d := range dates {
		if d.Equal(target) {
			return true
		}
	}
	return false
}

func RemoveDate(dates []Date, target Date) ([]Date, bool) {
	out := make([]Date, 0, len(dates))
	removed := false
	for _, d := range dates {
		if d.Equal(target) {
			removed = true
			continue
		}
		out = append(out, d)
	}
	return out, removed
}

// InRange filters dates to [start, end] inclusive.
func InRange(dates []Date, start, end Date) []Date {
	var out []Date
	for _, d := range dates {
		if d.Between(start, &end) {
			out = append(out, d)
		}
	}
	return SortedUnique(out)
}

func MaxDate(dates []Date) *Date {
	var max *Date
	for i := range dates {
		if dates[i].IsZero() {
			continue
		}
		if max == nil || dates[i].After(*max) {
			d := dates[i]
			max = &d
		}
	}
	return max
}
