package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/arenaops/esports-platform/models"
	"github.com/arenaops/esports-platform/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTournamentRepo struct {
	byID   map[int]*models.Tournament
	nextID int

	statusUpdates map[int]models.TournamentStatus
}

func newFakeTournamentRepo() *fakeTournamentRepo {
	return &fakeTournamentRepo{
		byID:          make(map[int]*models.Tournament),
		nextID:        1,
		statusUpdates: make(map[int]models.TournamentStatus),
	}
}

func (f *fakeTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	t.ID = f.nextID
	f.nextID++
	copied := *t
	f.byID[t.ID] = &copied
	return nil
}

func (f *fakeTournamentRepo) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTournamentRepo) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]*models.Tournament, error) {
	var out []*models.Tournament
	for _, t := range f.byID {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		copied := *t
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeTournamentRepo) UpdateDetails(ctx context.Context, t *models.Tournament) error {
	if _, ok := f.byID[t.ID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	copied := *t
	f.byID[t.ID] = &copied
	return nil
}

func (f *fakeTournamentRepo) UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) error {
	t, ok := f.byID[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.Status = status
	f.statusUpdates[id] = status
	return nil
}

func (f *fakeTournamentRepo) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	t, ok := f.byID[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.LogoKey = logoKey
	return nil
}

func (f *fakeTournamentRepo) Delete(ctx context.Context, id int) error {
	delete(f.byID, id)
	return nil
}

func newTestTournamentService(repo *fakeTournamentRepo) TournamentService {
	return NewTournamentService(repo, nil, nil, slog.Default())
}

func validCreateInput() CreateTournamentInput {
	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	return CreateTournamentInput{
		Name:            "Autumn Invitational",
		Game:            "cs2",
		Format:          "single-elimination",
		RegDate:         base,
		StartDate:       base.AddDate(0, 0, 7),
		EndDate:         base.AddDate(0, 0, 9),
		MaxParticipants: 16,
	}
}

func TestCreateTournamentValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateTournamentInput)
		wantErr error
	}{
		{
			name:    "missing name",
			mutate:  func(in *CreateTournamentInput) { in.Name = "" },
			wantErr: ErrTournamentNameRequired,
		},
		{
			name:    "zero capacity",
			mutate:  func(in *CreateTournamentInput) { in.MaxParticipants = 0 },
			wantErr: ErrTournamentInvalidCap,
		},
		{
			name:    "start before registration close",
			mutate:  func(in *CreateTournamentInput) { in.StartDate = in.RegDate.AddDate(0, 0, -1) },
			wantErr: ErrTournamentInvalidDates,
		},
		{
			name:    "unknown format",
			mutate:  func(in *CreateTournamentInput) { in.Format = "swiss" },
			wantErr: ErrTournamentInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestTournamentService(newFakeTournamentRepo())
			input := validCreateInput()
			tt.mutate(&input)

			_, err := svc.CreateTournament(context.Background(), 1, input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateTournamentNormalizesFormat(t *testing.T) {
	repo := newFakeTournamentRepo()
	svc := newTestTournamentService(repo)

	input := validCreateInput()
	input.Format = "Round_Robin"

	created, err := svc.CreateTournament(context.Background(), 7, input)
	require.NoError(t, err)
	assert.Equal(t, models.FormatRoundRobin, created.Format)
	assert.Equal(t, 7, created.OrganizerID)
	assert.Equal(t, models.StatusRegistration, created.Status)
}

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		from    models.TournamentStatus
		to      models.TournamentStatus
		allowed bool
	}{
		{models.StatusSoon, models.StatusRegistration, true},
		{models.StatusSoon, models.StatusCanceled, true},
		{models.StatusSoon, models.StatusActive, false},
		{models.StatusRegistration, models.StatusActive, true},
		{models.StatusRegistration, models.StatusCompleted, false},
		{models.StatusActive, models.StatusCompleted, true},
		{models.StatusActive, models.StatusCanceled, true},
		{models.StatusCompleted, models.StatusActive, false},
		{models.StatusCanceled, models.StatusRegistration, false},
	}

	for _, tt := range tests {
		name := string(tt.from) + "_to_" + string(tt.to)
		t.Run(name, func(t *testing.T) {
			repo := newFakeTournamentRepo()
			svc := newTestTournamentService(repo)

			created, err := svc.CreateTournament(context.Background(), 1, validCreateInput())
			require.NoError(t, err)
			repo.byID[created.ID].Status = tt.from

			updated, err := svc.UpdateStatus(context.Background(), created.ID, 1, tt.to)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, updated.Status)
				assert.Equal(t, tt.to, repo.statusUpdates[created.ID])
			} else {
				assert.ErrorIs(t, err, ErrInvalidStatusTransition)
			}
		})
	}
}

func TestAutoUpdateTournamentStatusesByDates(t *testing.T) {
	now := time.Now()
	seed := func(repo *fakeTournamentRepo, status models.TournamentStatus, reg, start, end time.Time) int {
		tournament := &models.Tournament{
			Name:            "Seeded Cup",
			Game:            "cs2",
			Format:          models.FormatSingleElimination,
			OrganizerID:     1,
			RegDate:         reg,
			StartDate:       start,
			EndDate:         end,
			Status:          status,
			MaxParticipants: 8,
		}
		require.NoError(t, repo.Create(context.Background(), tournament))
		return tournament.ID
	}

	t.Run("soon advances once its registration date passes", func(t *testing.T) {
		repo := newFakeTournamentRepo()
		svc := newTestTournamentService(repo)
		id := seed(repo, models.StatusSoon,
			now.Add(-time.Hour), now.Add(24*time.Hour), now.Add(48*time.Hour))

		require.NoError(t, svc.AutoUpdateTournamentStatusesByDates(context.Background()))

		got, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, models.StatusRegistration, got.Status)
	})

	t.Run("registration advances once its start date passes", func(t *testing.T) {
		repo := newFakeTournamentRepo()
		svc := newTestTournamentService(repo)
		id := seed(repo, models.StatusRegistration,
			now.Add(-48*time.Hour), now.Add(-time.Hour), now.Add(24*time.Hour))

		require.NoError(t, svc.AutoUpdateTournamentStatusesByDates(context.Background()))

		got, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, models.StatusActive, got.Status)
	})

	// A tournament whose dates are all in the past walks the whole chain in
	// one sweep, since each status is re-listed after the previous step.
	t.Run("stale soon tournament reaches completed", func(t *testing.T) {
		repo := newFakeTournamentRepo()
		svc := newTestTournamentService(repo)
		id := seed(repo, models.StatusSoon,
			now.Add(-72*time.Hour), now.Add(-48*time.Hour), now.Add(-24*time.Hour))

		require.NoError(t, svc.AutoUpdateTournamentStatusesByDates(context.Background()))

		got, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, got.Status)
	})

	t.Run("future dates leave statuses alone", func(t *testing.T) {
		repo := newFakeTournamentRepo()
		svc := newTestTournamentService(repo)
		id := seed(repo, models.StatusSoon,
			now.Add(24*time.Hour), now.Add(48*time.Hour), now.Add(72*time.Hour))

		require.NoError(t, svc.AutoUpdateTournamentStatusesByDates(context.Background()))

		got, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, models.StatusSoon, got.Status)
	})
}

func TestUpdateStatusRequiresOwnership(t *testing.T) {
	repo := newFakeTournamentRepo()
	svc := newTestTournamentService(repo)

	created, err := svc.CreateTournament(context.Background(), 1, validCreateInput())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), created.ID, 99, models.StatusActive)
	assert.ErrorIs(t, err, ErrForbiddenOperation)
}

func TestUpdateStatusUnknownTournament(t *testing.T) {
	svc := newTestTournamentService(newFakeTournamentRepo())

	_, err := svc.UpdateStatus(context.Background(), 42, 1, models.StatusActive)
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}
