package service

import (
	"context"

	"github.com/conorfennell/myeng/internal/domain"
)

// UserStore persists user profiles.
type UserStore interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	FindUser(ctx context.Context, id int64) (domain.User, error)
	UserExists(ctx context.Context, id int64) (bool, error)
	InsertUser(ctx context.Context, u domain.User) (bool, error)
	DeleteUser(ctx context.Context, id int64) (bool, error)
}

// QuestionStore persists quiz questions.
type QuestionStore interface {
	InsertQuestion(ctx context.Context, q domain.Question) (int64, error)
	FindQuestion(ctx context.Context, id int64) (domain.Question, error)
	ListQuestions(ctx context.Context, theme string) ([]domain.Question, error)
}

// TestStore persists tests. SwapPassedUsers replaces the passed-users list
// only while it still equals expected and reports whether it did.
type TestStore interface {
	InsertTest(ctx context.Context, t domain.Test) (int64, error)
	ListTestsByTheme(ctx context.Context, theme string) ([]domain.Test, error)
	SwapPassedUsers(ctx context.Context, testID int64, expected, updated domain.PassedUsers) (bool, error)
}
