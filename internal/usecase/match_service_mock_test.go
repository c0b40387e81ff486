package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/crichq/auction-tracker/internal/domain/match"
	"github.com/crichq/auction-tracker/internal/platform/logging"
)

type matchRepoMock struct {
	mock.Mock
}

func newMatchRepoMock(t *testing.T) *matchRepoMock {
	t.Helper()

	m := &matchRepoMock{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *matchRepoMock) Create(ctx context.Context, v match.Match) (match.Match, error) {
	args := m.Called(ctx, v)
	return args.Get(0).(match.Match), args.Error(1)
}

func (m *matchRepoMock) List(ctx context.Context, filter match.ListFilter) ([]match.Match, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]match.Match), args.Error(1)
}

func (m *matchRepoMock) GetByID(ctx context.Context, matchID int64) (match.Match, bool, error) {
	args := m.Called(ctx, matchID)
	return args.Get(0).(match.Match), args.Bool(1), args.Error(2)
}

func (m *matchRepoMock) Update(ctx context.Context, matchID int64, changes match.Update) (match.Match, bool, error) {
	args := m.Called(ctx, matchID, changes)
	return args.Get(0).(match.Match), args.Bool(1), args.Error(2)
}

func TestMatchServiceCreate_RepoErrorPropagates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newMatchRepoMock(t)
	svc := NewMatchService(repo, logging.NewNop())

	repoErr := fmt.Errorf("connection reset")
	repo.
		On("Create", mock.MatchedBy(func(v context.Context) bool { return v != nil }), mock.AnythingOfType("match.Match")).
		Return(match.Match{}, repoErr).
		Once()

	_, err := svc.Create(ctx, CreateMatchInput{
		MatchNumber: 1,
		Team1:       "Mumbai Indians",
		Team2:       "Chennai Super Kings",
		MatchDate:   time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC),
		Venue:       "Wankhede Stadium",
	})
	if !errors.Is(err, repoErr) {
		t.Fatalf("expected repository error to propagate, got %v", err)
	}
}

func TestMatchServiceCreate_ValidationSkipsRepo(t *testing.T) {
	t.Parallel()

	repo := newMatchRepoMock(t)
	svc := NewMatchService(repo, logging.NewNop())

	_, err := svc.Create(context.Background(), CreateMatchInput{
		MatchNumber: 0,
		Team1:       "Mumbai Indians",
		Team2:       "Chennai Super Kings",
		MatchDate:   time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	repo.AssertNotCalled(t, "Create")
}
