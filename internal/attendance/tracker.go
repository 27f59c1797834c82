// Package attendance tracks the days the member checked in.
package attendance

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/osse101/PointStore_Go/internal/domain"
	"github.com/osse101/PointStore_Go/internal/economy"
	"github.com/osse101/PointStore_Go/internal/logger"
	"github.com/osse101/PointStore_Go/internal/refresh"
)

const LogMsgLoaded = "Attendance loaded"

// Tracker holds the set of attended days
type Tracker struct {
	client economy.Client
	bus    refresh.Bus

	mu   sync.RWMutex
	days map[domain.AttendanceDay]struct{}
}

// NewTracker creates an empty tracker
func NewTracker(client economy.Client, bus refresh.Bus) *Tracker {
	if bus == nil {
		bus = refresh.Nop{}
	}
	return &Tracker{client: client, bus: bus, days: map[domain.AttendanceDay]struct{}{}}
}

// Subscribe reloads after a check-in is recorded
func (t *Tracker) Subscribe() func() {
	return t.bus.Subscribe(refresh.OwnerAttendance, domain.TopicAttendance, func(ctx context.Context, _ domain.Topic) error {
		return t.Load(ctx)
	})
}

// Load replaces the attended set
func (t *Tracker) Load(ctx context.Context) error {
	list, err := t.client.GetAttendance(ctx)
	if err != nil {
		return err
	}
	days := make(map[domain.AttendanceDay]struct{}, len(list))
	for _, d := range list {
		days[d] = struct{}{}
	}

	t.mu.Lock()
	t.days = days
	t.mu.Unlock()

	logger.FromContext(ctx).Debug(LogMsgLoaded, "days", len(days))
	return nil
}

// IsMarked reports whether the member checked in on day
func (t *Tracker) IsMarked(day domain.AttendanceDay) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.days[day]
	return ok
}

// Today reports whether the member checked in on the calendar day of now
func (t *Tracker) Today(now time.Time) bool {
	return t.IsMarked(domain.DayOf(now))
}

// MarkedIn returns the attended days of one month in ascending order
func (t *Tracker) MarkedIn(year int, month time.Month) []int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []int
	for d := range t.days {
		if d.Year == year && d.Month == month {
			out = append(out, d.Day)
		}
	}
	slices.Sort(out)
	return out
}

// Count is the total number of attended days
func (t *Tracker) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.days)
}
