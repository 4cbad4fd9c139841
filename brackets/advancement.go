package brackets

import (
	"fmt"

	"github.com/arenaops/esports-platform/models"
)

// RecordResult marks a match completed with the given winner and, for single
// elimination, advances the winner into its downstream match. The input
// bracket is never mutated; the updated copy is returned.
//
// Eligibility: the match must exist, have both teams assigned and be in
// status scheduled or ongoing. Anything else is a caller error and returns
// ErrMatchNotEligible with no state change.
func RecordResult(bracket *models.Bracket, matchID, winnerID int, notes string) (*models.Bracket, error) {
	src := bracket.MatchByID(matchID)
	if src == nil {
		return nil, fmt.Errorf("%w: id %d", ErrMatchNotFound, matchID)
	}
	if src.Team1 == nil || src.Team2 == nil {
		return nil, fmt.Errorf("%w: match %d is missing a team", ErrMatchNotEligible, matchID)
	}
	if src.Status != models.MatchStatusScheduled && src.Status != models.MatchStatusOngoing {
		return nil, fmt.Errorf("%w: match %d has status %s", ErrMatchNotEligible, matchID, src.Status)
	}
	if winnerID != src.Team1.ID && winnerID != src.Team2.ID {
		return nil, fmt.Errorf("%w: id %d in match %d", ErrInvalidWinner, winnerID, matchID)
	}

	updated := bracket.Clone()
	match := updated.MatchByID(matchID)

	w := winnerID
	match.Winner = &w
	match.Status = models.MatchStatusCompleted
	match.Result = &models.MatchResult{Winner: winnerID, Notes: notes}

	if updated.Format == models.FormatSingleElimination {
		advanceWinner(updated, match)
	}

	return updated, nil
}

// advanceWinner writes the winning team's snapshot into the downstream slot.
//
// The downstream match is (round+1, ceil(matchInRound/2)); an odd matchInRound
// feeds team1, an even one feeds team2. This keeps the top half of the
// bracket on the team1 side all the way to the final, and visualisations rely
// on exactly this convention. When both slots of the downstream match are
// filled it is promoted from awaiting to scheduled. Writing the same winner
// twice lands on the same slot, so advancement is idempotent.
func advanceWinner(bracket *models.Bracket, match *models.Match) {
	if match.Winner == nil {
		return
	}

	next := bracket.MatchAt(match.Round+1, (match.MatchInRound+1)/2)
	if next == nil {
		// This was the final; the bracket is complete.
		return
	}

	var winnerSlot *models.TeamSlot
	switch {
	case match.Team1 != nil && match.Team1.ID == *match.Winner:
		winnerSlot = match.Team1
	case match.Team2 != nil && match.Team2.ID == *match.Winner:
		winnerSlot = match.Team2
	default:
		return
	}

	snapshot := *winnerSlot
	if match.MatchInRound%2 == 1 {
		next.Team1 = &snapshot
	} else {
		next.Team2 = &snapshot
	}

	if next.Team1 != nil && next.Team2 != nil && next.Status == models.MatchStatusAwaiting {
		next.Status = models.MatchStatusScheduled
	}
}

// ResolveByes completes every round-1 bye match with its lone entrant as
// winner and advances that entrant into the next round. Generation leaves
// later rounds untouched, so byes are resolved as a separate step right after
// a bracket is built. The operation is idempotent and pure like the rest of
// the engine.
func ResolveByes(bracket *models.Bracket) *models.Bracket {
	if bracket.Format != models.FormatSingleElimination {
		return bracket.Clone()
	}

	updated := bracket.Clone()
	for i := range updated.Matches {
		m := &updated.Matches[i]
		if m.Status != models.MatchStatusBye {
			continue
		}
		lone := m.Team1
		if lone == nil {
			lone = m.Team2
		}
		if lone == nil {
			continue
		}
		w := lone.ID
		m.Winner = &w
		m.Status = models.MatchStatusCompleted
		m.Result = &models.MatchResult{Winner: w, Notes: "bye"}
		advanceWinner(updated, m)
	}
	return updated
}
