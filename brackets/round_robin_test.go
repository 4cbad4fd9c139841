package brackets

import (
	"fmt"
	"testing"

	"github.com/arenaops/esports-platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundRobinAllPairsOnce(t *testing.T) {
	for _, n := range []int{2, 3, 4, 7} {
		t.Run(fmt.Sprintf("%d participants", n), func(t *testing.T) {
			bracket, err := Generate(models.FormatRoundRobin, GenerateParams{
				Participants: makeParticipants(n),
			})
			require.NoError(t, err)

			assert.Equal(t, models.FormatRoundRobin, bracket.Format)
			require.Len(t, bracket.Matches, n*(n-1)/2)

			seen := make(map[[2]int]bool)
			for i, m := range bracket.Matches {
				assert.Equal(t, i+1, m.MatchID)
				assert.Equal(t, 1, m.Round)
				assert.Equal(t, models.MatchStatusScheduled, m.Status)
				require.NotNil(t, m.Team1)
				require.NotNil(t, m.Team2)

				pair := [2]int{m.Team1.ID, m.Team2.ID}
				if pair[0] > pair[1] {
					pair[0], pair[1] = pair[1], pair[0]
				}
				assert.False(t, seen[pair], "duplicate pairing %v", pair)
				seen[pair] = true
			}
			assert.Len(t, seen, n*(n-1)/2)
		})
	}
}

func TestRoundRobinSingleParticipant(t *testing.T) {
	bracket, err := Generate(models.FormatRoundRobin, GenerateParams{
		Participants: makeParticipants(1),
	})
	require.NoError(t, err)

	// One entrant pairs with nobody: 1*(1-1)/2 = 0 matches.
	assert.Equal(t, 1, bracket.Rounds)
	assert.Empty(t, bracket.Matches)
	assert.NotNil(t, bracket.Matches)
}

func TestRoundRobinResultHasNoAdvancement(t *testing.T) {
	bracket, err := Generate(models.FormatRoundRobin, GenerateParams{
		Participants: makeParticipants(4),
	})
	require.NoError(t, err)

	winner := bracket.Matches[0].Team1.ID
	updated, err := RecordResult(bracket, 1, winner, "2-0")
	require.NoError(t, err)

	m := updated.MatchByID(1)
	assert.Equal(t, models.MatchStatusCompleted, m.Status)
	require.NotNil(t, m.Winner)
	assert.Equal(t, winner, *m.Winner)

	// Every other match is untouched.
	for _, other := range updated.Matches[1:] {
		assert.Equal(t, models.MatchStatusScheduled, other.Status)
		assert.Nil(t, other.Winner)
	}
}
