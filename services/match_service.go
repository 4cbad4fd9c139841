package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arenaops/esports-platform/brackets"
	"github.com/arenaops/esports-platform/models"
	"github.com/arenaops/esports-platform/realtime"
	"github.com/arenaops/esports-platform/repositories"
)

type RecordResultInput struct {
	WinnerID int    `json:"winner_id"`
	Notes    string `json:"notes"`
}

// MatchUpdatePayload is pushed over the websocket after a result is entered;
// clients re-render from the full bracket.
type MatchUpdatePayload struct {
	TournamentID int             `json:"tournament_id"`
	Match        *models.Match   `json:"match"`
	Bracket      *models.Bracket `json:"bracket"`
}

type MatchService interface {
	// RecordResult completes a match and advances the winner. The stored
	// bracket only changes if the whole update commits; on failure the
	// in-memory result is discarded.
	RecordResult(ctx context.Context, tournamentID, matchID, currentUserID int, input RecordResultInput) (*models.Bracket, error)
	// ScheduleMatch sets or clears a match's scheduled time.
	ScheduleMatch(ctx context.Context, tournamentID, matchID, currentUserID int, scheduledTime *time.Time) (*models.Match, error)
}

type matchService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	bracketRepo    repositories.BracketRepository
	hub            Broadcaster
	logger         *slog.Logger
}

func NewMatchService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	bracketRepo repositories.BracketRepository,
	hub Broadcaster,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		db:             db,
		tournamentRepo: tournamentRepo,
		bracketRepo:    bracketRepo,
		hub:            hub,
		logger:         logger,
	}
}

func (s *matchService) RecordResult(ctx context.Context, tournamentID, matchID, currentUserID int, input RecordResultInput) (*models.Bracket, error) {
	bracket, err := s.loadOwnedBracket(ctx, tournamentID, currentUserID)
	if err != nil {
		return nil, err
	}

	updated, err := brackets.RecordResult(bracket, matchID, input.WinnerID, input.Notes)
	if err != nil {
		return nil, err
	}

	// Persist the completed match and, when advancement touched it, the
	// downstream match.
	completed := updated.MatchByID(matchID)
	changed := []*models.Match{completed}
	if updated.Format == models.FormatSingleElimination {
		if next := updated.MatchAt(completed.Round+1, (completed.MatchInRound+1)/2); next != nil {
			changed = append(changed, next)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to begin transaction: %v", ErrBracketSaveFailed, err)
	}
	defer tx.Rollback()

	for _, m := range changed {
		if err := s.bracketRepo.UpdateMatch(ctx, tx, tournamentID, m); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBracketSaveFailed, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: failed to commit: %v", ErrBracketSaveFailed, err)
	}

	s.logger.Info("match result recorded",
		slog.Int("tournament_id", tournamentID),
		slog.Int("match_id", matchID),
		slog.Int("winner_id", input.WinnerID))

	s.hub.BroadcastToRoom(realtime.TournamentRoom(tournamentID), realtime.Message{
		Type: realtime.MessageMatchUpdated,
		Payload: MatchUpdatePayload{
			TournamentID: tournamentID,
			Match:        completed,
			Bracket:      updated,
		},
	})
	return updated, nil
}

func (s *matchService) ScheduleMatch(ctx context.Context, tournamentID, matchID, currentUserID int, scheduledTime *time.Time) (*models.Match, error) {
	bracket, err := s.loadOwnedBracket(ctx, tournamentID, currentUserID)
	if err != nil {
		return nil, err
	}

	match := bracket.MatchByID(matchID)
	if match == nil {
		return nil, fmt.Errorf("%w: id %d", brackets.ErrMatchNotFound, matchID)
	}
	match.ScheduledTime = scheduledTime

	if err := s.bracketRepo.UpdateMatch(ctx, s.db, tournamentID, match); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBracketSaveFailed, err)
	}

	s.hub.BroadcastToRoom(realtime.TournamentRoom(tournamentID), realtime.Message{
		Type: realtime.MessageMatchUpdated,
		Payload: MatchUpdatePayload{
			TournamentID: tournamentID,
			Match:        match,
			Bracket:      bracket,
		},
	})
	return match, nil
}

func (s *matchService) loadOwnedBracket(ctx context.Context, tournamentID, currentUserID int) (*models.Bracket, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.OrganizerID != currentUserID {
		return nil, ErrForbiddenOperation
	}

	bracket, err := s.bracketRepo.GetByTournament(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrBracketNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return bracket, nil
}
