package brackets

import (
	"testing"

	"github.com/arenaops/esports-platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordResultAdvancesWinner(t *testing.T) {
	bracket, err := Generate(models.FormatSingleElimination, GenerateParams{
		Participants: makeParticipants(4),
	})
	require.NoError(t, err)

	m1 := bracket.MatchAt(1, 1)
	winner1 := m1.Team1.ID

	afterFirst, err := RecordResult(bracket, m1.MatchID, winner1, "close series")
	require.NoError(t, err)

	// Completed match carries winner and result.
	done := afterFirst.MatchByID(m1.MatchID)
	assert.Equal(t, models.MatchStatusCompleted, done.Status)
	require.NotNil(t, done.Winner)
	assert.Equal(t, winner1, *done.Winner)
	require.NotNil(t, done.Result)
	assert.Equal(t, winner1, done.Result.Winner)
	assert.Equal(t, "close series", done.Result.Notes)

	// Odd matchInRound feeds team1 of the downstream match; the final stays
	// awaiting until its second slot fills.
	final := afterFirst.MatchAt(2, 1)
	require.NotNil(t, final)
	require.NotNil(t, final.Team1)
	assert.Equal(t, winner1, final.Team1.ID)
	assert.Nil(t, final.Team2)
	assert.Equal(t, models.MatchStatusAwaiting, final.Status)

	// Even matchInRound feeds team2 and promotes the final to scheduled.
	m2 := afterFirst.MatchAt(1, 2)
	winner2 := m2.Team2.ID
	afterSecond, err := RecordResult(afterFirst, m2.MatchID, winner2, "")
	require.NoError(t, err)

	final = afterSecond.MatchAt(2, 1)
	require.NotNil(t, final.Team1)
	require.NotNil(t, final.Team2)
	assert.Equal(t, winner1, final.Team1.ID)
	assert.Equal(t, winner2, final.Team2.ID)
	assert.Equal(t, models.MatchStatusScheduled, final.Status)
}

func TestRecordResultDoesNotMutateInput(t *testing.T) {
	bracket, err := Generate(models.FormatSingleElimination, GenerateParams{
		Participants: makeParticipants(4),
	})
	require.NoError(t, err)

	_, err = RecordResult(bracket, 1, bracket.Matches[0].Team1.ID, "")
	require.NoError(t, err)

	assert.Equal(t, models.MatchStatusScheduled, bracket.Matches[0].Status)
	assert.Nil(t, bracket.Matches[0].Winner)
	assert.Nil(t, bracket.MatchAt(2, 1).Team1)
}

func TestRecordResultOnFinalCompletesBracket(t *testing.T) {
	bracket, err := Generate(models.FormatSingleElimination, GenerateParams{
		Participants: makeParticipants(2),
	})
	require.NoError(t, err)

	winner := bracket.Matches[0].Team2.ID
	updated, err := RecordResult(bracket, 1, winner, "")
	require.NoError(t, err)

	m := updated.MatchByID(1)
	assert.Equal(t, models.MatchStatusCompleted, m.Status)
	assert.Equal(t, winner, *m.Winner)
}

func TestRecordResultEligibility(t *testing.T) {
	bracket, err := Generate(models.FormatSingleElimination, GenerateParams{
		Participants: makeParticipants(5),
	})
	require.NoError(t, err)

	t.Run("unknown match", func(t *testing.T) {
		_, err := RecordResult(bracket, 99, 100, "")
		assert.ErrorIs(t, err, ErrMatchNotFound)
	})

	t.Run("bye match lacks a team", func(t *testing.T) {
		bye := bracket.MatchAt(1, 3)
		require.Equal(t, models.MatchStatusBye, bye.Status)
		_, err := RecordResult(bracket, bye.MatchID, bye.Team1.ID, "")
		assert.ErrorIs(t, err, ErrMatchNotEligible)
	})

	t.Run("awaiting match", func(t *testing.T) {
		awaiting := bracket.MatchAt(2, 1)
		_, err := RecordResult(bracket, awaiting.MatchID, 100, "")
		assert.ErrorIs(t, err, ErrMatchNotEligible)
	})

	t.Run("winner not in match", func(t *testing.T) {
		_, err := RecordResult(bracket, 1, 999, "")
		assert.ErrorIs(t, err, ErrInvalidWinner)
	})

	t.Run("already completed", func(t *testing.T) {
		updated, err := RecordResult(bracket, 1, bracket.Matches[0].Team1.ID, "")
		require.NoError(t, err)
		_, err = RecordResult(updated, 1, bracket.Matches[0].Team1.ID, "")
		assert.ErrorIs(t, err, ErrMatchNotEligible)
	})
}

func TestAdvancementIsIdempotent(t *testing.T) {
	bracket, err := Generate(models.FormatSingleElimination, GenerateParams{
		Participants: makeParticipants(4),
	})
	require.NoError(t, err)

	updated, err := RecordResult(bracket, 1, bracket.Matches[0].Team1.ID, "")
	require.NoError(t, err)

	// Re-running the advancement step for the same completed match must not
	// duplicate or shift the downstream slot.
	again := updated.Clone()
	advanceWinner(again, again.MatchByID(1))

	assert.Equal(t, updated.MatchAt(2, 1).Team1, again.MatchAt(2, 1).Team1)
	assert.Nil(t, again.MatchAt(2, 1).Team2)
	assert.Equal(t, models.MatchStatusAwaiting, again.MatchAt(2, 1).Status)
}

func TestResolveByes(t *testing.T) {
	bracket, err := Generate(models.FormatSingleElimination, GenerateParams{
		Participants: makeParticipants(5),
	})
	require.NoError(t, err)

	resolved := ResolveByes(bracket)

	// Seed 5 sat in round-1 match 3 (odd), so it lands in team1 of round-2
	// match 2.
	bye := resolved.MatchAt(1, 3)
	require.NotNil(t, bye.Winner)
	assert.Equal(t, bye.Team1.ID, *bye.Winner)
	assert.Equal(t, models.MatchStatusCompleted, bye.Status)
	require.NotNil(t, bye.Result)
	assert.Equal(t, bye.Team1.ID, bye.Result.Winner)

	next := resolved.MatchAt(2, 2)
	require.NotNil(t, next.Team1)
	assert.Equal(t, bye.Team1.ID, next.Team1.ID)
	assert.Equal(t, models.MatchStatusAwaiting, next.Status)

	// Running it again changes nothing.
	twice := ResolveByes(resolved)
	assert.Equal(t, resolved.Matches, twice.Matches)

	// The original stays untouched.
	assert.Nil(t, bracket.MatchAt(1, 3).Winner)
}
