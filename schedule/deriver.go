// Package schedule derives calendar view-models from tournament records.
// Everything here is pure transformation; event statuses are recomputed
// against the clock on every call and never stored.
package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/arenaops/esports-platform/models"
)

// Priorities order events that fall on the same calendar day, higher first.
const (
	priorityBracketReminder    = 90
	priorityTournamentStart    = 80
	priorityFinals             = 70
	priorityRegistrationCloses = 60
	priorityRegistrationOpens  = 40
	priorityTournamentEnd      = 50
)

type Deriver struct {
	now func() time.Time
}

// NewDeriver builds a deriver on the given clock; pass nil for wall time.
func NewDeriver(now func() time.Time) *Deriver {
	if now == nil {
		now = time.Now
	}
	return &Deriver{now: now}
}

// DeriveEvents expands each tournament into its calendar events. Canceled
// tournaments contribute nothing.
func (d *Deriver) DeriveEvents(tournaments []models.Tournament) []models.ScheduleEvent {
	now := d.now()
	events := make([]models.ScheduleEvent, 0, len(tournaments)*5)

	for _, t := range tournaments {
		if t.Status == models.StatusCanceled {
			continue
		}

		add := func(kind models.ScheduleEventKind, title string, date time.Time, priority int) {
			if date.IsZero() {
				return
			}
			status := models.EventUpcoming
			if !date.After(now) {
				status = models.EventCompleted
			}
			events = append(events, models.ScheduleEvent{
				TournamentID:   t.ID,
				TournamentName: t.Name,
				Kind:           kind,
				Title:          title,
				Date:           date,
				Priority:       priority,
				Status:         status,
			})
		}

		add(models.EventRegistrationOpens,
			fmt.Sprintf("%s: registration opens", t.Name), t.CreatedAt, priorityRegistrationOpens)
		add(models.EventRegistrationCloses,
			fmt.Sprintf("%s: registration closes", t.Name), t.RegDate, priorityRegistrationCloses)
		add(models.EventTournamentStart,
			fmt.Sprintf("%s begins", t.Name), t.StartDate, priorityTournamentStart)
		add(models.EventFinals,
			fmt.Sprintf("%s: finals", t.Name), t.EndDate, priorityFinals)
		add(models.EventTournamentEnd,
			fmt.Sprintf("%s ends", t.Name), t.EndDate, priorityTournamentEnd)

		// Hosts get a reminder to generate brackets once registration has
		// closed but before the bracket exists.
		if t.Bracket == nil && (t.Status == models.StatusSoon || t.Status == models.StatusRegistration) {
			add(models.EventBracketReminder,
				fmt.Sprintf("%s: generate brackets", t.Name), t.RegDate, priorityBracketReminder)
		}
	}

	return events
}

// GroupByDay buckets events by calendar day (UTC). Days come out in
// ascending order; within a day events sort by priority descending, then by
// time ascending.
func (d *Deriver) GroupByDay(events []models.ScheduleEvent) []models.ScheduleDay {
	byDay := make(map[string][]models.ScheduleEvent)
	for _, ev := range events {
		key := ev.Date.UTC().Format("2006-01-02")
		byDay[key] = append(byDay[key], ev)
	}

	days := make([]models.ScheduleDay, 0, len(byDay))
	for day, evs := range byDay {
		sort.SliceStable(evs, func(i, j int) bool {
			if evs[i].Priority != evs[j].Priority {
				return evs[i].Priority > evs[j].Priority
			}
			return evs[i].Date.Before(evs[j].Date)
		})
		days = append(days, models.ScheduleDay{Day: day, Events: evs})
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Day < days[j].Day })
	return days
}
