package web

import (
	"context"

	"github.com/conorfennell/myeng/internal/domain"
)

// UserService is the user behaviour the handlers depend on.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id int64) (domain.User, error)
	Create(ctx context.Context, u domain.User) error
	Delete(ctx context.Context, id int64) error
}

// QuestionService is the question behaviour the handlers depend on.
type QuestionService interface {
	Create(ctx context.Context, q domain.Question) (int64, error)
	Get(ctx context.Context, id int64) (domain.Question, error)
	List(ctx context.Context, theme string) ([]domain.Question, error)
}

// TestService is the test behaviour the handlers depend on.
type TestService interface {
	Create(ctx context.Context, t domain.Test) (int64, error)
	Assign(ctx context.Context, theme string, userID int64) (domain.Test, error)
}

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
