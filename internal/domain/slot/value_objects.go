package slot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidDate   = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidTime   = errors.New("invalid time, expected HH:MM")
	ErrInvalidRange  = errors.New("end time must be after start time")
	ErrInvalidStatus = errors.New("invalid slot status")
)

const (
	DateLayout     = "2006-01-02"
	minutesPerDay  = 24 * 60
	slotStepMinute = 60
)

// Date is a calendar day with no zone attached.
type Date struct {
	year  int
	month time.Month
	day   int
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return DateOf(t, time.UTC), nil
}

// DateOf returns the calendar day of t as observed in loc.
func DateOf(t time.Time, loc *time.Location) Date {
	y, m, d := t.In(loc).Date()
	return Date{year: y, month: m, day: d}
}

func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC), time.UTC)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

func (d Date) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Midnight(time.UTC).AddDate(0, 0, n), time.UTC)
}

// Midnight is the start of d in loc.
func (d Date) Midnight(loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

func (d Date) Before(o Date) bool {
	return d.Midnight(time.UTC).Before(o.Midnight(time.UTC))
}

func (d Date) After(o Date) bool {
	return o.Before(d)
}

// TimeOfDay is minutes since midnight, always in [0, 1440).
type TimeOfDay int

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, ErrInvalidTime
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, ErrInvalidTime
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, ErrInvalidTime
	}
	return TimeOfDay(h*60 + m), nil
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Display12h renders 14:30 as "2:30 PM".
func (t TimeOfDay) Display12h() string {
	h := t.Hour()
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, t.Minute(), suffix)
}

func (t TimeOfDay) Add(minutes int) TimeOfDay {
	v := (int(t) + minutes) % minutesPerDay
	if v < 0 {
		v += minutesPerDay
	}
	return TimeOfDay(v)
}

// HourlyTimes lists one start time per hour in [start, end).
func HourlyTimes(start, end TimeOfDay) ([]TimeOfDay, error) {
	if end <= start {
		return nil, ErrInvalidRange
	}
	times := make([]TimeOfDay, 0, (int(end-start)+slotStepMinute-1)/slotStepMinute)
	for t := start; t < end; t += slotStepMinute {
		times = append(times, t)
	}
	return times, nil
}

// Key identifies a slot; (date, time) is unique across the ledger.
type Key struct {
	Date Date
	Time TimeOfDay
}

func ParseKey(date, tod string) (Key, error) {
	d, err := ParseDate(date)
	if err != nil {
		return Key{}, err
	}
	t, err := ParseTimeOfDay(tod)
	if err != nil {
		return Key{}, err
	}
	return Key{Date: d, Time: t}, nil
}

// KeyFromInstant maps a scheduled instant to the slot key of the hour it falls in, observed in loc.
func KeyFromInstant(at time.Time, loc *time.Location) Key {
	local := at.In(loc)
	return Key{
		Date: DateOf(local, loc),
		Time: TimeOfDay(local.Hour()*60 + local.Minute()),
	}
}

func (k Key) Instant(loc *time.Location) time.Time {
	return k.Date.Midnight(loc).Add(time.Duration(k.Time) * time.Minute)
}

func (k Key) String() string {
	return k.Date.String() + " " + k.Time.String()
}
