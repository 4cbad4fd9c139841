package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/arenaops/esports-platform/brackets"
	"github.com/arenaops/esports-platform/models"
	"github.com/arenaops/esports-platform/realtime"
	"github.com/arenaops/esports-platform/repositories"
	"golang.org/x/sync/errgroup"
)

// Broadcaster pushes realtime updates to subscribed clients. Satisfied by
// *realtime.Hub.
type Broadcaster interface {
	BroadcastToRoom(roomID string, msg realtime.Message)
}

type BracketService interface {
	// GenerateBracket builds a fresh bracket from the tournament's confirmed
	// participants and persists it, replacing any existing bracket. The
	// returned bracket is only handed out after the transaction commits.
	GenerateBracket(ctx context.Context, tournamentID, currentUserID int) (*models.Bracket, error)
	// GetBracket loads the stored bracket. A missing bracket is a normal
	// empty state and comes back as (nil, nil).
	GetBracket(ctx context.Context, tournamentID int) (*models.Bracket, error)
	// GetTournamentBundle returns the tournament with participants and
	// bracket attached, loaded in parallel.
	GetTournamentBundle(ctx context.Context, tournamentID int) (*models.Tournament, error)
}

type bracketService struct {
	db                 *sql.DB
	tournamentRepo     repositories.TournamentRepository
	participantService ParticipantService
	bracketRepo        repositories.BracketRepository
	hub                Broadcaster
	logger             *slog.Logger
}

func NewBracketService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	participantService ParticipantService,
	bracketRepo repositories.BracketRepository,
	hub Broadcaster,
	logger *slog.Logger,
) BracketService {
	return &bracketService{
		db:                 db,
		tournamentRepo:     tournamentRepo,
		participantService: participantService,
		bracketRepo:        bracketRepo,
		hub:                hub,
		logger:             logger,
	}
}

func (s *bracketService) GenerateBracket(ctx context.Context, tournamentID, currentUserID int) (*models.Bracket, error) {
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

	participants, err := s.participantService.ListConfirmed(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list confirmed participants for tournament %d: %w", tournamentID, err)
	}

	bracket, err := brackets.Generate(tournament.Format, brackets.GenerateParams{
		TournamentID: tournamentID,
		Participants: participants,
	})
	if err != nil {
		return nil, err
	}
	bracket = brackets.ResolveByes(bracket)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to begin transaction: %v", ErrBracketSaveFailed, err)
	}
	defer tx.Rollback()

	if err := s.bracketRepo.Replace(ctx, tx, bracket); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBracketSaveFailed, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: failed to commit: %v", ErrBracketSaveFailed, err)
	}

	s.logger.Info("bracket generated",
		slog.Int("tournament_id", tournamentID),
		slog.String("format", string(bracket.Format)),
		slog.Int("rounds", bracket.Rounds),
		slog.Int("matches", len(bracket.Matches)))

	s.hub.BroadcastToRoom(realtime.TournamentRoom(tournamentID), realtime.Message{
		Type:    realtime.MessageBracketUpdated,
		Payload: bracket,
	})
	return bracket, nil
}

func (s *bracketService) GetBracket(ctx context.Context, tournamentID int) (*models.Bracket, error) {
	bracket, err := s.bracketRepo.GetByTournament(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrBracketNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return bracket, nil
}

func (s *bracketService) GetTournamentBundle(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		participants, err := s.participantService.ListConfirmed(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load participants: %w", err)
		}
		tournament.Participants = participants
		return nil
	})

	g.Go(func() error {
		bracket, err := s.GetBracket(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load bracket: %w", err)
		}
		tournament.Bracket = bracket
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tournament, nil
}
