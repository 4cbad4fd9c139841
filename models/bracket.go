package models

import "time"

// MatchStatus mirrors the lifecycle of a bracket slot, from an empty pairing
// up to a finished game. Values are stored as-is in the DB enum.
type MatchStatus string

const (
	MatchStatusNoTeams   MatchStatus = "no_teams"
	MatchStatusBye       MatchStatus = "bye"
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusAwaiting  MatchStatus = "awaiting"
	MatchStatusOngoing   MatchStatus = "ongoing"
	MatchStatusCompleted MatchStatus = "completed"
)

// BracketFormat values accepted on the wire. Parsing and dispatch live in the
// brackets package; models only carries the canonical spelling.
type BracketFormat string

const (
	FormatSingleElimination BracketFormat = "single-elimination"
	FormatDoubleElimination BracketFormat = "double-elimination"
	FormatRoundRobin        BracketFormat = "round-robin"
)

// TeamSlot is the participant snapshot frozen into a match at generation or
// advancement time. Seeds come from registration order and do not change
// unless the bracket is regenerated.
type TeamSlot struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Seed int    `json:"seed"`
}

// MatchResult holds the outcome entered by a host.
type MatchResult struct {
	Winner int    `json:"winner"`
	Notes  string `json:"notes,omitempty"`
}

type Match struct {
	MatchID       int          `json:"matchId"`
	Round         int          `json:"round"`
	MatchInRound  int          `json:"matchInRound"`
	Team1         *TeamSlot    `json:"team1"`
	Team2         *TeamSlot    `json:"team2"`
	Status        MatchStatus  `json:"status"`
	Winner        *int         `json:"winner"`
	Result        *MatchResult `json:"result"`
	ScheduledTime *time.Time   `json:"scheduledTime"`
}

// Bracket is the full competitive stage of one tournament: every match plus
// the structural metadata needed to render and advance it. Brackets are
// replaced wholesale on regeneration, never edited structurally.
type Bracket struct {
	TournamentID int           `json:"tournament_id"`
	Format       BracketFormat `json:"format"`
	Rounds       int           `json:"rounds"`
	Matches      []Match       `json:"matches"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// MatchByID returns a pointer into Matches for the given id, or nil.
func (b *Bracket) MatchByID(matchID int) *Match {
	for i := range b.Matches {
		if b.Matches[i].MatchID == matchID {
			return &b.Matches[i]
		}
	}
	return nil
}

// MatchAt locates a match by its (round, matchInRound) coordinates, or nil.
func (b *Bracket) MatchAt(round, matchInRound int) *Match {
	for i := range b.Matches {
		if b.Matches[i].Round == round && b.Matches[i].MatchInRound == matchInRound {
			return &b.Matches[i]
		}
	}
	return nil
}

// Clone returns a deep copy. Update operations on brackets are pure: they
// copy, mutate the copy and return it, leaving the caller's value intact.
func (b *Bracket) Clone() *Bracket {
	if b == nil {
		return nil
	}
	out := *b
	out.Matches = make([]Match, len(b.Matches))
	for i, m := range b.Matches {
		cm := m
		if m.Team1 != nil {
			t1 := *m.Team1
			cm.Team1 = &t1
		}
		if m.Team2 != nil {
			t2 := *m.Team2
			cm.Team2 = &t2
		}
		if m.Winner != nil {
			w := *m.Winner
			cm.Winner = &w
		}
		if m.Result != nil {
			r := *m.Result
			cm.Result = &r
		}
		if m.ScheduledTime != nil {
			st := *m.ScheduledTime
			cm.ScheduledTime = &st
		}
		out.Matches[i] = cm
	}
	return &out
}
