package brackets

import (
	"github.com/arenaops/esports-platform/models"
)

// GenerateParams carries everything a generator needs. The participant slice
// is ordered: index 0 is seed 1. Seeds embedded into match slots are derived
// from this order, not from whatever the Participant structs carry.
type GenerateParams struct {
	TournamentID int
	Participants []models.Participant
}

// Generator builds a complete bracket for one format. Generation is pure:
// no I/O, no shared state, total over non-empty participant lists.
type Generator interface {
	Generate(params GenerateParams) (*models.Bracket, error)

	Name() string
}

// NewGenerator dispatches a format onto its generator. Every known format has
// one, including double elimination, whose Generate reports
// ErrFormatNotSupported instead of producing a bracket shell.
func NewGenerator(format models.BracketFormat) (Generator, error) {
	switch format {
	case models.FormatSingleElimination:
		return &singleEliminationGenerator{}, nil
	case models.FormatRoundRobin:
		return &roundRobinGenerator{}, nil
	case models.FormatDoubleElimination:
		return &doubleEliminationGenerator{}, nil
	}
	return nil, ErrInvalidFormat
}

// Generate picks the generator for the format and runs it over the seeded
// participant list. It parses nothing and persists nothing.
func Generate(format models.BracketFormat, params GenerateParams) (*models.Bracket, error) {
	gen, err := NewGenerator(format)
	if err != nil {
		return nil, err
	}
	return gen.Generate(params)
}

// seedSlot freezes the participant at 0-based index idx into a match slot.
// Returns nil when the index is out of range, which is how byes and empty
// pairings appear in round 1.
func seedSlot(participants []models.Participant, idx int) *models.TeamSlot {
	if idx < 0 || idx >= len(participants) {
		return nil
	}
	p := participants[idx]
	return &models.TeamSlot{ID: p.ID, Name: p.DisplayName, Seed: idx + 1}
}

// pairStatus classifies a round-1 pairing by how many slots are filled.
func pairStatus(t1, t2 *models.TeamSlot) models.MatchStatus {
	switch {
	case t1 == nil && t2 == nil:
		return models.MatchStatusNoTeams
	case t1 == nil || t2 == nil:
		return models.MatchStatusBye
	default:
		return models.MatchStatusScheduled
	}
}
