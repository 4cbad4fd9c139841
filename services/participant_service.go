package services

import (
	"context"
	"errors"

	"github.com/arenaops/esports-platform/models"
	"github.com/arenaops/esports-platform/repositories"
)

type ParticipantService interface {
	// Register enters the user into the tournament. Registration order
	// defines seeding, so entries keep their created_at ordering.
	Register(ctx context.Context, tournamentID, userID int) (*models.Participant, error)
	Confirm(ctx context.Context, participantID, currentUserID int) (*models.Participant, error)
	Withdraw(ctx context.Context, participantID, currentUserID int) error
	// ListConfirmed returns confirmed entrants in seed order, with Seed
	// populated (1-based).
	ListConfirmed(ctx context.Context, tournamentID int) ([]models.Participant, error)
	ListAll(ctx context.Context, tournamentID int) ([]models.Participant, error)
}

type participantService struct {
	participantRepo repositories.ParticipantRepository
	tournamentRepo  repositories.TournamentRepository
	userRepo        repositories.UserRepository
}

func NewParticipantService(
	participantRepo repositories.ParticipantRepository,
	tournamentRepo repositories.TournamentRepository,
	userRepo repositories.UserRepository,
) ParticipantService {
	return &participantService{
		participantRepo: participantRepo,
		tournamentRepo:  tournamentRepo,
		userRepo:        userRepo,
	}
}

func (s *participantService) Register(ctx context.Context, tournamentID, userID int) (*models.Participant, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.Status != models.StatusRegistration {
		return nil, ErrRegistrationNotOpen
	}

	count, err := s.participantRepo.CountByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if count >= tournament.MaxParticipants {
		return nil, ErrTournamentFull
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	participant := &models.Participant{
		TournamentID: tournamentID,
		UserID:       userID,
		DisplayName:  user.Nickname,
		Status:       models.ParticipantPending,
	}
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		if errors.Is(err, repositories.ErrParticipantConflict) {
			return nil, ErrRegistrationConflict
		}
		return nil, err
	}
	return participant, nil
}

func (s *participantService) Confirm(ctx context.Context, participantID, currentUserID int) (*models.Participant, error) {
	participant, tournament, err := s.loadWithTournament(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if tournament.OrganizerID != currentUserID {
		return nil, ErrForbiddenOperation
	}

	if err := s.participantRepo.UpdateStatus(ctx, participantID, models.ParticipantConfirmed); err != nil {
		return nil, err
	}
	participant.Status = models.ParticipantConfirmed
	return participant, nil
}

func (s *participantService) Withdraw(ctx context.Context, participantID, currentUserID int) error {
	participant, tournament, err := s.loadWithTournament(ctx, participantID)
	if err != nil {
		return err
	}
	// The entrant themselves or the organizer may withdraw a registration.
	if participant.UserID != currentUserID && tournament.OrganizerID != currentUserID {
		return ErrForbiddenOperation
	}
	return s.participantRepo.UpdateStatus(ctx, participantID, models.ParticipantWithdrawn)
}

func (s *participantService) ListConfirmed(ctx context.Context, tournamentID int) ([]models.Participant, error) {
	confirmed := models.ParticipantConfirmed
	rows, err := s.participantRepo.ListByTournament(ctx, tournamentID, &confirmed)
	if err != nil {
		return nil, err
	}
	participants := make([]models.Participant, len(rows))
	for i, p := range rows {
		participants[i] = *p
		participants[i].Seed = i + 1
	}
	return participants, nil
}

func (s *participantService) ListAll(ctx context.Context, tournamentID int) ([]models.Participant, error) {
	rows, err := s.participantRepo.ListByTournament(ctx, tournamentID, nil)
	if err != nil {
		return nil, err
	}
	participants := make([]models.Participant, len(rows))
	for i, p := range rows {
		participants[i] = *p
	}
	return participants, nil
}

func (s *participantService) loadWithTournament(ctx context.Context, participantID int) (*models.Participant, *models.Tournament, error) {
	participant, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return nil, nil, ErrParticipantNotFound
		}
		return nil, nil, err
	}
	tournament, err := s.tournamentRepo.GetByID(ctx, participant.TournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, nil, ErrTournamentNotFound
		}
		return nil, nil, err
	}
	return participant, tournament, nil
}
