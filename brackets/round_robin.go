package brackets

import (
	"time"

	"github.com/arenaops/esports-platform/models"
)

type roundRobinGenerator struct{}

func (g *roundRobinGenerator) Name() string {
	return "RoundRobin"
}

// Generate creates one match per unordered participant pair (i < j), all in
// round 1, all immediately scheduled: n(n-1)/2 matches total for every n,
// including the degenerate single-entrant case, which has no pairs and so no
// matches. Byes cannot occur, every pairing has two real entrants.
func (g *roundRobinGenerator) Generate(params GenerateParams) (*models.Bracket, error) {
	participants := params.Participants
	n := len(participants)

	if n == 0 {
		return nil, ErrNoParticipants
	}

	bracket := &models.Bracket{
		TournamentID: params.TournamentID,
		Format:       models.FormatRoundRobin,
		Rounds:       1,
		CreatedAt:    time.Now().UTC(),
	}

	bracket.Matches = make([]models.Match, 0, n*(n-1)/2)
	matchID := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			matchID++
			bracket.Matches = append(bracket.Matches, models.Match{
				MatchID:      matchID,
				Round:        1,
				MatchInRound: matchID,
				Team1:        seedSlot(participants, i),
				Team2:        seedSlot(participants, j),
				Status:       models.MatchStatusScheduled,
			})
		}
	}

	return bracket, nil
}
