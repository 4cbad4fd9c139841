package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/arenaops/esports-platform/brackets"
	"github.com/arenaops/esports-platform/models"
	"github.com/arenaops/esports-platform/repositories"
	"github.com/arenaops/esports-platform/storage"
)

type CreateTournamentInput struct {
	Name            string     `json:"name"`
	Description     *string    `json:"description"`
	Game            string     `json:"game"`
	Format          string     `json:"format"`
	RegDate         time.Time  `json:"reg_date"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         time.Time  `json:"end_date"`
	Location        *string    `json:"location"`
	MaxParticipants int        `json:"max_participants"`
}

type UpdateTournamentInput struct {
	Name            *string    `json:"name"`
	Description     *string    `json:"description"`
	Game            *string    `json:"game"`
	Format          *string    `json:"format"`
	RegDate         *time.Time `json:"reg_date"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	Location        *string    `json:"location"`
	MaxParticipants *int       `json:"max_participants"`
}

type ListTournamentsFilter = repositories.ListTournamentsFilter

type TournamentService interface {
	CreateTournament(ctx context.Context, organizerID int, input CreateTournamentInput) (*models.Tournament, error)
	GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error)
	ListTournaments(ctx context.Context, filter ListTournamentsFilter) ([]*models.Tournament, error)
	UpdateTournament(ctx context.Context, id, currentUserID int, input UpdateTournamentInput) (*models.Tournament, error)
	UpdateStatus(ctx context.Context, id, currentUserID int, status models.TournamentStatus) (*models.Tournament, error)
	UploadLogo(ctx context.Context, id, currentUserID int, contentType string, file io.Reader) (*models.Tournament, error)
	AutoUpdateTournamentStatusesByDates(ctx context.Context) error
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	userRepo       repositories.UserRepository
	uploader       storage.FileUploader
	logger         *slog.Logger
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	userRepo repositories.UserRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		userRepo:       userRepo,
		uploader:       uploader,
		logger:         logger,
	}
}

func (s *tournamentService) CreateTournament(ctx context.Context, organizerID int, input CreateTournamentInput) (*models.Tournament, error) {
	if input.Name == "" {
		return nil, ErrTournamentNameRequired
	}
	if input.MaxParticipants <= 0 {
		return nil, ErrTournamentInvalidCap
	}
	if !input.RegDate.Before(input.StartDate) || !input.StartDate.Before(input.EndDate) {
		return nil, ErrTournamentInvalidDates
	}
	format, err := brackets.ParseFormat(input.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTournamentInvalidFormat, err)
	}

	t := &models.Tournament{
		Name:            input.Name,
		Description:     input.Description,
		Game:            input.Game,
		Format:          format,
		OrganizerID:     organizerID,
		RegDate:         input.RegDate,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		Location:        input.Location,
		Status:          models.StatusRegistration,
		MaxParticipants: input.MaxParticipants,
	}
	if err := s.tournamentRepo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("tournament created",
		slog.Int("tournament_id", t.ID),
		slog.Int("organizer_id", organizerID),
		slog.String("format", string(format)))
	return t, nil
}

func (s *tournamentService) GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	s.populateLogoURL(t)
	return t, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context, filter ListTournamentsFilter) ([]*models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, t := range tournaments {
		s.populateLogoURL(t)
	}
	return tournaments, nil
}

func (s *tournamentService) UpdateTournament(ctx context.Context, id, currentUserID int, input UpdateTournamentInput) (*models.Tournament, error) {
	t, err := s.ownedTournament(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrTournamentNameRequired
		}
		t.Name = *input.Name
	}
	if input.Description != nil {
		t.Description = input.Description
	}
	if input.Game != nil {
		t.Game = *input.Game
	}
	if input.Format != nil {
		format, err := brackets.ParseFormat(*input.Format)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTournamentInvalidFormat, err)
		}
		t.Format = format
	}
	if input.RegDate != nil {
		t.RegDate = *input.RegDate
	}
	if input.StartDate != nil {
		t.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		t.EndDate = *input.EndDate
	}
	if input.Location != nil {
		t.Location = input.Location
	}
	if input.MaxParticipants != nil {
		if *input.MaxParticipants <= 0 {
			return nil, ErrTournamentInvalidCap
		}
		t.MaxParticipants = *input.MaxParticipants
	}
	if !t.RegDate.Before(t.StartDate) || !t.StartDate.Before(t.EndDate) {
		return nil, ErrTournamentInvalidDates
	}

	if err := s.tournamentRepo.UpdateDetails(ctx, t); err != nil {
		return nil, err
	}
	s.populateLogoURL(t)
	return t, nil
}

// validStatusTransitions encodes the tournament lifecycle. Canceled is
// reachable from every non-final state.
var validStatusTransitions = map[models.TournamentStatus][]models.TournamentStatus{
	models.StatusSoon:         {models.StatusRegistration, models.StatusCanceled},
	models.StatusRegistration: {models.StatusActive, models.StatusCanceled},
	models.StatusActive:       {models.StatusCompleted, models.StatusCanceled},
}

func isValidTransition(from, to models.TournamentStatus) bool {
	for _, allowed := range validStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s *tournamentService) UpdateStatus(ctx context.Context, id, currentUserID int, status models.TournamentStatus) (*models.Tournament, error) {
	t, err := s.ownedTournament(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}

	if !isValidTransition(t.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, t.Status, status)
	}
	if err := s.tournamentRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	t.Status = status
	s.populateLogoURL(t)
	return t, nil
}

func (s *tournamentService) UploadLogo(ctx context.Context, id, currentUserID int, contentType string, file io.Reader) (*models.Tournament, error) {
	t, err := s.ownedTournament(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("tournaments/%d/logo", id)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload tournament logo: %w", err)
	}

	if err := s.tournamentRepo.UpdateLogoKey(ctx, id, &result.Key); err != nil {
		return nil, err
	}
	t.LogoKey = &result.Key
	s.populateLogoURL(t)
	return t, nil
}

// AutoUpdateTournamentStatusesByDates walks non-final tournaments and applies
// the transition their dates call for. Run periodically by the scheduler.
func (s *tournamentService) AutoUpdateTournamentStatusesByDates(ctx context.Context) error {
	now := time.Now()

	for _, status := range []models.TournamentStatus{models.StatusSoon, models.StatusRegistration, models.StatusActive} {
		st := status
		tournaments, err := s.tournamentRepo.List(ctx, ListTournamentsFilter{Status: &st})
		if err != nil {
			return fmt.Errorf("failed to list %s tournaments: %w", status, err)
		}
		for _, t := range tournaments {
			var next models.TournamentStatus
			switch {
			case t.Status == models.StatusSoon && !now.Before(t.RegDate):
				next = models.StatusRegistration
			case t.Status == models.StatusRegistration && !now.Before(t.StartDate):
				next = models.StatusActive
			case t.Status == models.StatusActive && !now.Before(t.EndDate):
				next = models.StatusCompleted
			default:
				continue
			}
			if err := s.tournamentRepo.UpdateStatus(ctx, t.ID, next); err != nil {
				s.logger.Error("failed to auto-update tournament status",
					slog.Int("tournament_id", t.ID),
					slog.String("to", string(next)),
					slog.Any("error", err))
				continue
			}
			s.logger.Info("tournament status auto-updated",
				slog.Int("tournament_id", t.ID),
				slog.String("from", string(t.Status)),
				slog.String("to", string(next)))
		}
	}
	return nil
}

func (s *tournamentService) ownedTournament(ctx context.Context, id, currentUserID int) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if t.OrganizerID != currentUserID {
		return nil, ErrForbiddenOperation
	}
	return t, nil
}

func (s *tournamentService) populateLogoURL(t *models.Tournament) {
	if t.LogoKey != nil && s.uploader != nil {
		url := s.uploader.GetPublicURL(*t.LogoKey)
		t.LogoURL = &url
	}
}
