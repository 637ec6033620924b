package service

import "time"

// Clock returns the current time. Date defaults ("today") are derived from it.
type Clock func() time.Time

// ZoneClock returns a Clock reporting time in loc, so "today" follows the
// club's calendar rather than the host's.
func ZoneClock(loc *time.Location) Clock {
	if loc == nil {
		return time.Now
	}
	return func() time.Time { return time.Now().In(loc) }
}

// SetClock overrides the loader clock.
func (l *BlockLoader) SetClock(c Clock) { l.now = c }

// SetClock overrides the form clock.
func (f *BlockForm) SetClock(c Clock) { f.now = c }

// SetClock overrides the form clock.
func (f *SeriesForm) SetClock(c Clock) { f.now = c }

// SetClock overrides the form clock.
func (f *TemplateForm) SetClock(c Clock) { f.now = c }

// SetClock overrides the manager clock.
func (m *BulkDeleteManager) SetClock(c Clock) { m.now = c }
