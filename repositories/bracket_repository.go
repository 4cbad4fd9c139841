package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/arenaops/esports-platform/models"
)

var (
	ErrBracketNotFound      = errors.New("bracket not found")
	ErrBracketMatchNotFound = errors.New("bracket match not found")
)

// BracketRepository persists whole brackets and individual match updates.
// Team slots and results are stored as JSONB; a bracket is one header row
// plus one row per match, keyed by (tournament_id, match_id).
type BracketRepository interface {
	// Replace removes any existing bracket for the tournament and writes the
	// new one. Must run inside a transaction supplied by the caller.
	Replace(ctx context.Context, exec SQLExecutor, bracket *models.Bracket) error
	GetByTournament(ctx context.Context, tournamentID int) (*models.Bracket, error)
	ExistsForTournament(ctx context.Context, tournamentID int) (bool, error)
	UpdateMatch(ctx context.Context, exec SQLExecutor, tournamentID int, match *models.Match) error
	DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error
}

type postgresBracketRepository struct {
	db *sql.DB
}

func NewPostgresBracketRepository(db *sql.DB) BracketRepository {
	return &postgresBracketRepository{db: db}
}

func (r *postgresBracketRepository) Replace(ctx context.Context, exec SQLExecutor, bracket *models.Bracket) error {
	if err := r.DeleteByTournament(ctx, exec, bracket.TournamentID); err != nil {
		return err
	}

	_, err := exec.ExecContext(ctx, `
		INSERT INTO brackets (tournament_id, format, rounds, created_at)
		VALUES ($1, $2, $3, $4)`,
		bracket.TournamentID, bracket.Format, bracket.Rounds, bracket.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bracket for tournament %d: %w", bracket.TournamentID, err)
	}

	for i := range bracket.Matches {
		if err := r.insertMatch(ctx, exec, bracket.TournamentID, &bracket.Matches[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresBracketRepository) insertMatch(ctx context.Context, exec SQLExecutor, tournamentID int, m *models.Match) error {
	team1, team2, result, err := marshalMatchJSON(m)
	if err != nil {
		return err
	}

	_, err = exec.ExecContext(ctx, `
		INSERT INTO bracket_matches
			(tournament_id, match_id, round, match_in_round, team1, team2,
			 status, winner, result, scheduled_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		tournamentID, m.MatchID, m.Round, m.MatchInRound, team1, team2,
		m.Status, m.Winner, result, m.ScheduledTime,
	)
	if err != nil {
		return fmt.Errorf("failed to insert match %d for tournament %d: %w", m.MatchID, tournamentID, err)
	}
	return nil
}

func (r *postgresBracketRepository) GetByTournament(ctx context.Context, tournamentID int) (*models.Bracket, error) {
	bracket := &models.Bracket{TournamentID: tournamentID}
	err := r.db.QueryRowContext(ctx, `
		SELECT format, rounds, created_at
		FROM brackets
		WHERE tournament_id = $1`, tournamentID,
	).Scan(&bracket.Format, &bracket.Rounds, &bracket.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBracketNotFound
		}
		return nil, fmt.Errorf("failed to scan bracket for tournament %d: %w", tournamentID, err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT match_id, round, match_in_round, team1, team2,
		       status, winner, result, scheduled_time
		FROM bracket_matches
		WHERE tournament_id = $1
		ORDER BY match_id ASC`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	bracket.Matches = make([]models.Match, 0)
	for rows.Next() {
		var (
			m            models.Match
			team1, team2 []byte
			result       []byte
		)
		if scanErr := rows.Scan(
			&m.MatchID, &m.Round, &m.MatchInRound, &team1, &team2,
			&m.Status, &m.Winner, &result, &m.ScheduledTime,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		if err := unmarshalMatchJSON(&m, team1, team2, result); err != nil {
			return nil, err
		}
		bracket.Matches = append(bracket.Matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return bracket, nil
}

func (r *postgresBracketRepository) ExistsForTournament(ctx context.Context, tournamentID int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM brackets WHERE tournament_id = $1)`, tournamentID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to probe bracket for tournament %d: %w", tournamentID, err)
	}
	return exists, nil
}

func (r *postgresBracketRepository) UpdateMatch(ctx context.Context, exec SQLExecutor, tournamentID int, m *models.Match) error {
	team1, team2, result, err := marshalMatchJSON(m)
	if err != nil {
		return err
	}

	res, err := exec.ExecContext(ctx, `
		UPDATE bracket_matches
		SET team1 = $1, team2 = $2, status = $3, winner = $4,
		    result = $5, scheduled_time = $6
		WHERE tournament_id = $7 AND match_id = $8`,
		team1, team2, m.Status, m.Winner, result, m.ScheduledTime,
		tournamentID, m.MatchID,
	)
	if err != nil {
		return fmt.Errorf("failed to update match %d for tournament %d: %w", m.MatchID, tournamentID, err)
	}
	return checkAffectedRows(res, ErrBracketMatchNotFound)
}

func (r *postgresBracketRepository) DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error {
	if _, err := exec.ExecContext(ctx,
		`DELETE FROM bracket_matches WHERE tournament_id = $1`, tournamentID); err != nil {
		return fmt.Errorf("failed to delete matches for tournament %d: %w", tournamentID, err)
	}
	if _, err := exec.ExecContext(ctx,
		`DELETE FROM brackets WHERE tournament_id = $1`, tournamentID); err != nil {
		return fmt.Errorf("failed to delete bracket for tournament %d: %w", tournamentID, err)
	}
	return nil
}

func marshalMatchJSON(m *models.Match) (team1, team2, result []byte, err error) {
	if m.Team1 != nil {
		if team1, err = json.Marshal(m.Team1); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to marshal team1 of match %d: %w", m.MatchID, err)
		}
	}
	if m.Team2 != nil {
		if team2, err = json.Marshal(m.Team2); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to marshal team2 of match %d: %w", m.MatchID, err)
		}
	}
	if m.Result != nil {
		if result, err = json.Marshal(m.Result); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to marshal result of match %d: %w", m.MatchID, err)
		}
	}
	return team1, team2, result, nil
}

func unmarshalMatchJSON(m *models.Match, team1, team2, result []byte) error {
	if len(team1) > 0 {
		m.Team1 = &models.TeamSlot{}
		if err := json.Unmarshal(team1, m.Team1); err != nil {
			return fmt.Errorf("failed to unmarshal team1 of match %d: %w", m.MatchID, err)
		}
	}
	if len(team2) > 0 {
		m.Team2 = &models.TeamSlot{}
		if err := json.Unmarshal(team2, m.Team2); err != nil {
			return fmt.Errorf("failed to unmarshal team2 of match %d: %w", m.MatchID, err)
		}
	}
	if len(result) > 0 {
		m.Result = &models.MatchResult{}
		if err := json.Unmarshal(result, m.Result); err != nil {
			return fmt.Errorf("failed to unmarshal result of match %d: %w", m.MatchID, err)
		}
	}
	return nil
}
