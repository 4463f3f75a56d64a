package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/conorfennell/myeng/internal/domain"
)

// maxAssignAttempts bounds how often Assign rescans after losing an update race.
const maxAssignAttempts = 5

// TestService stores tests and hands them out to users.
type TestService struct {
	store  TestStore
	logger *zap.Logger
}

// NewTestService creates a TestService backed by store.
func NewTestService(store TestStore, logger *zap.Logger) *TestService {
	return &TestService{store: store, logger: logger}
}

// Create stores the test as given and returns its id.
func (s *TestService) Create(ctx context.Context, t domain.Test) (int64, error) {
	id, err := s.store.InsertTest(ctx, t)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("test added", zap.Int64("test_id", id), zap.String("theme", t.Theme))
	return id, nil
}

// Assign hands the user the first test of the theme they have not been
// given yet and records it in that test's passed-users list.
//
// It returns ErrNoSuchTest when the theme has no tests and ErrAllTestsPassed
// when the user already has every one of them.
func (s *TestService) Assign(ctx context.Context, theme string, userID int64) (domain.Test, error) {
	for attempt := 1; attempt <= maxAssignAttempts; attempt++ {
		tests, err := s.store.ListTestsByTheme(ctx, theme)
		if err != nil {
			return domain.Test{}, err
		}
		if len(tests) == 0 {
			return domain.Test{}, ErrNoSuchTest
		}

		next, ok := firstUnpassed(tests, userID)
		if !ok {
			return domain.Test{}, ErrAllTestsPassed
		}

		updated := next.PassedUsers.Add(userID)
		swapped, err := s.store.SwapPassedUsers(ctx, next.ID, next.PassedUsers, updated)
		if err != nil {
			return domain.Test{}, err
		}
		if swapped {
			next.PassedUsers = updated
			s.logger.Info("test assigned",
				zap.Int64("test_id", next.ID),
				zap.Int64("user_id", userID),
				zap.String("theme", theme),
			)
			return next, nil
		}

		s.logger.Warn("passed users changed concurrently, rescanning",
			zap.Int64("test_id", next.ID),
			zap.Int("attempt", attempt),
		)
	}
	return domain.Test{}, ErrAssignConflict
}

func firstUnpassed(tests []domain.Test, userID int64) (domain.Test, bool) {
	for _, t := range tests {
		if !t.PassedUsers.Contains(userID) {
			return t, true
		}
	}
	return domain.Test{}, false
}
