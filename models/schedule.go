package models

import "time"

// ScheduleEventKind names the calendar events derived from tournament dates.
type ScheduleEventKind string

const (
	EventRegistrationOpens  ScheduleEventKind = "registration_opens"
	EventRegistrationCloses ScheduleEventKind = "registration_closes"
	EventTournamentStart    ScheduleEventKind = "tournament_start"
	EventTournamentEnd      ScheduleEventKind = "tournament_end"
	EventFinals             ScheduleEventKind = "finals"
	EventBracketReminder    ScheduleEventKind = "bracket_reminder"
)

// ScheduleEventStatus is recomputed against the clock at derivation time,
// never stored.
type ScheduleEventStatus string

const (
	EventCompleted ScheduleEventStatus = "completed"
	EventUpcoming  ScheduleEventStatus = "upcoming"
)

// ScheduleEvent is a single derived calendar entry. Priority is only a
// same-day sort key, higher first.
type ScheduleEvent struct {
	TournamentID   int                 `json:"tournament_id"`
	TournamentName string              `json:"tournament_name"`
	Kind           ScheduleEventKind   `json:"kind"`
	Title          string              `json:"title"`
	Date           time.Time           `json:"date"`
	Priority       int                 `json:"priority"`
	Status         ScheduleEventStatus `json:"status"`
}

// ScheduleDay groups the events of one calendar day, already sorted.
type ScheduleDay struct {
	Day    string          `json:"day"` // YYYY-MM-DD
	Events []ScheduleEvent `json:"events"`
}
