// Package schedule holds interval arithmetic for booking windows and worker hours.
package schedule

import (
	"fmt"
	"time"

	"github.com/Leganyst/maid-marketplace/internal/apperr"
)

var ErrInvalidTimeRange = apperr.Wrap(apperr.ErrInvalidArgument, "invalid time range")

// TimeRange представляет временной интервал [Start, End).
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange создаёт интервал и проверяет, что он не пустой.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return TimeRange{}, ErrInvalidTimeRange
	}
	return TimeRange{Start: start, End: end}, nil
}

// FromDuration строит интервал [start, start+minutes).
func FromDuration(start time.Time, minutes int) (TimeRange, error) {
	return NewTimeRange(start, start.Add(time.Duration(minutes)*time.Minute))
}

func (tr TimeRange) Duration() time.Duration {
	return tr.End.Sub(tr.Start)
}

// HasOverlap проверяет, пересекается ли newRange с existing.
// inclusive = true — касание концами считается пересечением.
func HasOverlap(
	newRange TimeRange,
	existing []TimeRange,
	inclusive bool,
) (bool, []TimeRange) {
	var conflicts []TimeRange

	for _, tr := range existing {
		if rangesOverlap(newRange, tr, inclusive) {
			conflicts = append(conflicts, tr)
		}
	}

	return len(conflicts) > 0, conflicts
}

func rangesOverlap(a, b TimeRange, inclusive bool) bool {
	if inclusive {
		return !a.Start.After(b.End) && !b.Start.After(a.End)
	}

	// Полуоткрытые интервалы [Start, End)
	// пересекаются, если a.Start < b.End && b.Start < a.End
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// DailyHours — рабочие часы исполнителя внутри суток, в минутах от полуночи.
// Нулевое значение означает «без ограничений».
type DailyHours struct {
	From int
	To   int
	set  bool
}

// ParseDailyHours разбирает пару "HH:MM". Две пустые строки дают неограниченные часы.
func ParseDailyHours(from, to string) (DailyHours, error) {
	if from == "" && to == "" {
		return DailyHours{}, nil
	}
	f, err := parseClock(from)
	if err != nil {
		return DailyHours{}, err
	}
	t, err := parseClock(to)
	if err != nil {
		return DailyHours{}, err
	}
	if t <= f {
		return DailyHours{}, apperr.Wrap(apperr.ErrInvalidArgument, "working hours %s-%s are empty", from, to)
	}
	return DailyHours{From: f, To: t, set: true}, nil
}

func parseClock(s string) (int, error) {
	c, err := time.Parse("15:04", s)
	if err != nil {
		return 0, apperr.Wrap(apperr.ErrInvalidArgument, "malformed clock time %q", s)
	}
	return c.Hour()*60 + c.Minute(), nil
}

// Restricted reports whether the hours limit anything.
func (h DailyHours) Restricted() bool {
	return h.set
}

// Contains reports whether tr lies within the hours of a single day in loc.
func (h DailyHours) Contains(tr TimeRange, loc *time.Location) bool {
	if !h.set {
		return true
	}
	if loc == nil {
		loc = time.UTC
	}
	start := tr.Start.In(loc)
	end := tr.End.In(loc)

	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	endMin := end.Hour()*60 + end.Minute()
	if sy != ey || sm != em || sd != ed {
		// Окончание ровно в полночь следующего дня не допускается: часы кончаются раньше.
		return false
	}
	startMin := start.Hour()*60 + start.Minute()
	return startMin >= h.From && endMin <= h.To
}

func (h DailyHours) String() string {
	if !h.set {
		return "any time"
	}
	return fmt.Sprintf("%02d:%02d-%02d:%02d", h.From/60, h.From%60, h.To/60, h.To%60)
}

// FormatWindow форматирует интервал для уведомлений: "Wed, 01 Jan 2025, 10:00–11:00".
func FormatWindow(tr TimeRange, loc *time.Location) string {
	start := tr.Start
	end := tr.End

	if loc != nil {
		start = start.In(loc)
		end = end.In(loc)
	}

	return fmt.Sprintf("%s, %s–%s", start.Format("Mon, 02 Jan 2006"), start.Format("15:04"), end.Format("15:04"))
}
