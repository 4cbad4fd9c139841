package services

import (
	"context"
	"fmt"

	"github.com/arenaops/esports-platform/models"
	"github.com/arenaops/esports-platform/repositories"
	"github.com/arenaops/esports-platform/schedule"
)

type ScheduleService interface {
	// GetSchedule derives the calendar view across tournaments, grouped by
	// day. Bracket existence is probed best-effort: absence is a normal
	// state, not an error.
	GetSchedule(ctx context.Context, filter ListTournamentsFilter) ([]models.ScheduleDay, error)
}

type scheduleService struct {
	tournamentRepo repositories.TournamentRepository
	bracketRepo    repositories.BracketRepository
	deriver        *schedule.Deriver
}

func NewScheduleService(
	tournamentRepo repositories.TournamentRepository,
	bracketRepo repositories.BracketRepository,
	deriver *schedule.Deriver,
) ScheduleService {
	return &scheduleService{
		tournamentRepo: tournamentRepo,
		bracketRepo:    bracketRepo,
		deriver:        deriver,
	}
}

func (s *scheduleService) GetSchedule(ctx context.Context, filter ListTournamentsFilter) ([]models.ScheduleDay, error) {
	rows, err := s.tournamentRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments for schedule: %w", err)
	}

	tournaments := make([]models.Tournament, 0, len(rows))
	for _, t := range rows {
		tournament := *t
		exists, err := s.bracketRepo.ExistsForTournament(ctx, t.ID)
		if err == nil && exists {
			// Only presence matters to the deriver; the bracket reminder is
			// suppressed once one exists.
			tournament.Bracket = &models.Bracket{TournamentID: t.ID}
		}
		tournaments = append(tournaments, tournament)
	}

	events := s.deriver.DeriveEvents(tournaments)
	return s.deriver.GroupByDay(events), nil
}
