package models

import "time"

// ParticipantStatus tracks a registration through confirmation.
type ParticipantStatus string

const (
	ParticipantPending   ParticipantStatus = "pending"
	ParticipantConfirmed ParticipantStatus = "confirmed"
	ParticipantWithdrawn ParticipantStatus = "withdrawn"
)

// Participant is one registered entrant of a tournament. Seed is the 1-based
// registration order; it fixes initial bracket placement and only changes when
// the bracket is regenerated.
type Participant struct {
	ID           int               `json:"id"`
	TournamentID int               `json:"tournament_id"`
	UserID       int               `json:"user_id"`
	DisplayName  string            `json:"display_name"`
	Seed         int               `json:"seed"`
	Status       ParticipantStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
}
