package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/RMS-AvailabilityService/pkg/types"
)

// ErrInvalidWindow возвращается при попытке построить окно с start >= end
// или с границами за пределами одних суток
var ErrInvalidWindow = errors.New("domain: invalid time window")

// TimeWindow half-open interval [Start, End) within a single calendar date.
// End may equal midnight of the following day ("24:00").
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// NewTimeWindow builds a window on date from two clock times.
func NewTimeWindow(date time.Time, start, end types.TimeString) (TimeWindow, error) {
	s, err := start.On(date)
	if err != nil {
		return TimeWindow{}, fmt.Errorf("%w: start %q: %v", ErrInvalidWindow, start, err)
	}
	if start == types.EndOfDay {
		return TimeWindow{}, fmt.Errorf("%w: window cannot start at %s", ErrInvalidWindow, start)
	}
	e, err := end.On(date)
	if err != nil {
		return TimeWindow{}, fmt.Errorf("%w: end %q: %v", ErrInvalidWindow, end, err)
	}
	return NewWindowFromTimes(s, e)
}

// NewWindowWithDuration builds a window of durationMinutes starting at start on date.
func NewWindowWithDuration(date time.Time, start types.TimeString, durationMinutes int) (TimeWindow, error) {
	s, err := start.On(date)
	if err != nil {
		return TimeWindow{}, fmt.Errorf("%w: start %q: %v", ErrInvalidWindow, start, err)
	}
	return NewWindowFromTimes(s, s.Add(time.Duration(durationMinutes)*time.Minute))
}

// NewWindowFromTimes validates absolute bounds.
func NewWindowFromTimes(start, end time.Time) (TimeWindow, error) {
	if !start.Before(end) {
		return TimeWindow{}, fmt.Errorf("%w: start %s is not before end %s",
			ErrInvalidWindow, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	if end.After(dayStart(start).AddDate(0, 0, 1)) {
		return TimeWindow{}, fmt.Errorf("%w: window %s-%s crosses midnight",
			ErrInvalidWindow, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return TimeWindow{Start: start, End: end}, nil
}

// Overlaps reports whether a and b share at least one instant. Touching windows do not overlap.
func Overlaps(a, b TimeWindow) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return Overlaps(w, other)
}

func (w TimeWindow) DurationMinutes() int {
	return int(w.End.Sub(w.Start) / time.Minute)
}

// Shift moves both bounds by minutes. The result is not re-validated.
func (w TimeWindow) Shift(minutes int) TimeWindow {
	d := time.Duration(minutes) * time.Minute
	return TimeWindow{Start: w.Start.Add(d), End: w.End.Add(d)}
}

// Date midnight of the window's calendar date
func (w TimeWindow) Date() time.Time {
	return dayStart(w.Start)
}

func (w TimeWindow) StartTime() types.TimeString {
	return types.NewTimeString(w.Start)
}

func (w TimeWindow) EndTime() types.TimeString {
	if w.End.Equal(w.Date().AddDate(0, 0, 1)) {
		return types.EndOfDay
	}
	return types.NewTimeString(w.End)
}

// StartMinute wall-clock minute of Start within its day
func (w TimeWindow) StartMinute() int {
	return w.Start.Hour()*60 + w.Start.Minute()
}

func (w TimeWindow) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("%s %s-%s", w.Date().Format(DateFormat), w.StartTime(), w.EndTime())
}

// ISOWeekBounds returns [monday 00:00, next monday 00:00) for the ISO week containing date.
func ISOWeekBounds(date time.Time) (time.Time, time.Time) {
	d := dayStart(date)
	offset := (int(d.Weekday()) + 6) % 7 // понедельник = 0
	monday := d.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 7)
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
