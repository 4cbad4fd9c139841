package services

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/arenaops/esports-platform/models"
	"github.com/arenaops/esports-platform/realtime"
	"github.com/arenaops/esports-platform/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDriver backs a *sql.DB whose transactions are no-ops, so service-level
// tests can exercise the tx flow while repository fakes absorb the writes.
type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) { return &stubConn{}, nil }

type stubConn struct{}

func (*stubConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("prepare not supported") }
func (*stubConn) Close() error                        { return nil }
func (*stubConn) Begin() (driver.Tx, error)           { return stubTx{}, nil }

type stubTx struct{}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

var stubDB = func() *sql.DB {
	sql.Register("stub", stubDriver{})
	db, err := sql.Open("stub", "")
	if err != nil {
		panic(err)
	}
	return db
}()

type fakeBracketRepo struct {
	stored     *models.Bracket
	replaceErr error
	updateErr  error

	replaced []*models.Bracket
	updated  []*models.Match
}

func (f *fakeBracketRepo) Replace(ctx context.Context, exec repositories.SQLExecutor, bracket *models.Bracket) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replaced = append(f.replaced, bracket)
	f.stored = bracket.Clone()
	return nil
}

func (f *fakeBracketRepo) GetByTournament(ctx context.Context, tournamentID int) (*models.Bracket, error) {
	if f.stored == nil || f.stored.TournamentID != tournamentID {
		return nil, repositories.ErrBracketNotFound
	}
	return f.stored.Clone(), nil
}

func (f *fakeBracketRepo) ExistsForTournament(ctx context.Context, tournamentID int) (bool, error) {
	return f.stored != nil && f.stored.TournamentID == tournamentID, nil
}

func (f *fakeBracketRepo) UpdateMatch(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, match *models.Match) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, match)
	return nil
}

func (f *fakeBracketRepo) DeleteByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) error {
	return nil
}

type fakeParticipantService struct {
	confirmed []models.Participant
}

func (f *fakeParticipantService) Register(ctx context.Context, tournamentID, userID int) (*models.Participant, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeParticipantService) Confirm(ctx context.Context, participantID, currentUserID int) (*models.Participant, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeParticipantService) Withdraw(ctx context.Context, participantID, currentUserID int) error {
	return errors.New("not implemented")
}

func (f *fakeParticipantService) ListConfirmed(ctx context.Context, tournamentID int) ([]models.Participant, error) {
	return f.confirmed, nil
}

func (f *fakeParticipantService) ListAll(ctx context.Context, tournamentID int) ([]models.Participant, error) {
	return f.confirmed, nil
}

type recordingBroadcaster struct {
	rooms    []string
	messages []realtime.Message
}

func (r *recordingBroadcaster) BroadcastToRoom(roomID string, msg realtime.Message) {
	r.rooms = append(r.rooms, roomID)
	r.messages = append(r.messages, msg)
}

func confirmedEntrants(n int) []models.Participant {
	out := make([]models.Participant, n)
	for i := range out {
		out[i] = models.Participant{
			ID:           100 + i,
			TournamentID: 1,
			UserID:       200 + i,
			DisplayName:  fmt.Sprintf("Team %d", i+1),
			Seed:         i + 1,
			Status:       models.ParticipantConfirmed,
		}
	}
	return out
}

func seedOwnedTournament(t *testing.T, repo *fakeTournamentRepo, organizerID int, format models.BracketFormat) int {
	t.Helper()
	base := time.Now().Add(24 * time.Hour)
	tournament := &models.Tournament{
		Name:            "Winter Clash",
		Game:            "dota2",
		Format:          format,
		OrganizerID:     organizerID,
		RegDate:         base,
		StartDate:       base.AddDate(0, 0, 7),
		EndDate:         base.AddDate(0, 0, 9),
		Status:          models.StatusActive,
		MaxParticipants: 16,
	}
	require.NoError(t, repo.Create(context.Background(), tournament))
	return tournament.ID
}

func TestGenerateBracketPersistsAndBroadcasts(t *testing.T) {
	tournamentRepo := newFakeTournamentRepo()
	id := seedOwnedTournament(t, tournamentRepo, 1, models.FormatSingleElimination)

	bracketRepo := &fakeBracketRepo{}
	hub := &recordingBroadcaster{}
	svc := NewBracketService(stubDB, tournamentRepo,
		&fakeParticipantService{confirmed: confirmedEntrants(5)},
		bracketRepo, hub, slog.Default())

	bracket, err := svc.GenerateBracket(context.Background(), id, 1)
	require.NoError(t, err)
	require.NotNil(t, bracket)
	assert.Equal(t, 3, bracket.Rounds)
	require.Len(t, bracketRepo.replaced, 1)

	// Byes are resolved before the bracket is persisted: the lone seed of
	// round-1 match 3 is already through to round 2.
	bye := bracket.MatchAt(1, 3)
	require.NotNil(t, bye)
	assert.Equal(t, models.MatchStatusCompleted, bye.Status)
	require.NotNil(t, bye.Winner)
	next := bracket.MatchAt(2, 2)
	require.NotNil(t, next.Team1)
	assert.Equal(t, *bye.Winner, next.Team1.ID)

	require.Len(t, hub.rooms, 1)
	assert.Equal(t, realtime.TournamentRoom(id), hub.rooms[0])
	assert.Equal(t, realtime.MessageBracketUpdated, hub.messages[0].Type)
}

func TestGenerateBracketSaveFailure(t *testing.T) {
	tournamentRepo := newFakeTournamentRepo()
	id := seedOwnedTournament(t, tournamentRepo, 1, models.FormatSingleElimination)

	bracketRepo := &fakeBracketRepo{replaceErr: errors.New("disk on fire")}
	hub := &recordingBroadcaster{}
	svc := NewBracketService(stubDB, tournamentRepo,
		&fakeParticipantService{confirmed: confirmedEntrants(4)},
		bracketRepo, hub, slog.Default())

	bracket, err := svc.GenerateBracket(context.Background(), id, 1)
	assert.ErrorIs(t, err, ErrBracketSaveFailed)
	assert.Nil(t, bracket)

	// Nothing was stored and nothing was announced.
	assert.Nil(t, bracketRepo.stored)
	assert.Empty(t, hub.rooms)
}

func TestGenerateBracketRequiresOrganizer(t *testing.T) {
	tournamentRepo := newFakeTournamentRepo()
	id := seedOwnedTournament(t, tournamentRepo, 1, models.FormatSingleElimination)

	svc := NewBracketService(stubDB, tournamentRepo,
		&fakeParticipantService{confirmed: confirmedEntrants(4)},
		&fakeBracketRepo{}, &recordingBroadcaster{}, slog.Default())

	_, err := svc.GenerateBracket(context.Background(), id, 99)
	assert.ErrorIs(t, err, ErrForbiddenOperation)
}

func TestGetBracketMissingIsNil(t *testing.T) {
	svc := NewBracketService(stubDB, newFakeTournamentRepo(),
		&fakeParticipantService{}, &fakeBracketRepo{}, &recordingBroadcaster{}, slog.Default())

	bracket, err := svc.GetBracket(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, bracket)
}
