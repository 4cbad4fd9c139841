package brackets

import (
	"time"

	"github.com/arenaops/esports-platform/models"
)

type singleEliminationGenerator struct{}

func (g *singleEliminationGenerator) Name() string {
	return "SingleElimination"
}

// Generate builds a seeded single-elimination tree.
//
// Rounds = ceil(log2(n)); round r holds 2^(rounds-r) matches. Round 1 is
// filled pairwise from the seed order; match m takes participants at 0-based
// indices 2(m-1) and 2(m-1)+1, with out-of-range indices left as empty slots.
// Later rounds start empty in status awaiting and are filled by advancement.
// Match ids are a contiguous 1..M sequence, round-major then slot-major.
func (g *singleEliminationGenerator) Generate(params GenerateParams) (*models.Bracket, error) {
	participants := params.Participants
	n := len(participants)

	if n == 0 {
		return nil, ErrNoParticipants
	}

	bracket := &models.Bracket{
		TournamentID: params.TournamentID,
		Format:       models.FormatSingleElimination,
		CreatedAt:    time.Now().UTC(),
	}

	// A lone entrant gets a trivial bye-only bracket: one round, one match,
	// nobody to play. ceil(log2(1)) would be zero rounds, which renders as
	// an empty bracket, so this case is pinned explicitly.
	if n == 1 {
		bracket.Rounds = 1
		bracket.Matches = []models.Match{{
			MatchID:      1,
			Round:        1,
			MatchInRound: 1,
			Team1:        seedSlot(participants, 0),
			Status:       models.MatchStatusBye,
		}}
		return bracket, nil
	}

	numRounds := 0
	for (1 << numRounds) < n {
		numRounds++
	}
	bracket.Rounds = numRounds
	bracket.Matches = make([]models.Match, 0, (1<<numRounds)-1)

	matchID := 0
	for r := 1; r <= numRounds; r++ {
		matchesInRound := 1 << (numRounds - r)
		for m := 1; m <= matchesInRound; m++ {
			matchID++
			match := models.Match{
				MatchID:      matchID,
				Round:        r,
				MatchInRound: m,
				Status:       models.MatchStatusAwaiting,
			}
			if r == 1 {
				match.Team1 = seedSlot(participants, 2*(m-1))
				match.Team2 = seedSlot(participants, 2*(m-1)+1)
				match.Status = pairStatus(match.Team1, match.Team2)
			}
			bracket.Matches = append(bracket.Matches, match)
		}
	}

	return bracket, nil
}
