package orgstore

import (
	"sort"
	"time"

	"github.com/genet-ke/genethub/internal/domain/models"
	"go.uber.org/zap"
)

// eventDateLayouts are the formats the API has been seen serving.
var eventDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseEventDate parses an event's date string, trying the known layouts.
func ParseEventDate(raw string) (time.Time, bool) {
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// PartitionEvents splits events into upcoming (today or later, soonest
// first) and past (latest first) relative to today's date. Events with a
// missing or unparsable date are excluded from both partitions and logged,
// never treated as fatal.
func PartitionEvents(events []models.Event, today time.Time, log *zap.Logger) (upcoming, past []models.Event) {
	day := calendarDay(today)

	dates := make(map[int64]time.Time, len(events))
	for _, ev := range events {
		t, ok := ParseEventDate(ev.Date)
		if !ok {
			log.Debug("event has missing or unparsable date; excluded from partition",
				zap.Int64("event_id", ev.ID),
				zap.String("date", ev.Date))
			continue
		}
		dates[ev.ID] = calendarDay(t)
		if dates[ev.ID].Before(day) {
			past = append(past, ev)
		} else {
			upcoming = append(upcoming, ev)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return dates[upcoming[i].ID].Before(dates[upcoming[j].ID])
	})
	sort.SliceStable(past, func(i, j int) bool {
		return dates[past[j].ID].Before(dates[past[i].ID])
	})
	return upcoming, past
}

// calendarDay normalizes t to midnight UTC of its own calendar date.
// Truncate(24h) works against the UTC epoch, which misbuckets events near
// midnight when the process clock runs in a non-UTC zone; comparing
// calendar dates keeps "today" meaning today on the wall calendar.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NextUpcoming returns the soonest upcoming event, if any.
func NextUpcoming(events []models.Event, today time.Time, log *zap.Logger) *models.Event {
	upcoming, _ := PartitionEvents(events, today, log)
	if len(upcoming) == 0 {
		return nil
	}
	ev := upcoming[0]
	return &ev
}
