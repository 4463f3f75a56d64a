package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/conorfennell/myeng/internal/domain"
	"github.com/conorfennell/myeng/internal/storage"
)

// QuestionService manages the question bank.
type QuestionService struct {
	store  QuestionStore
	logger *zap.Logger
}

// NewQuestionService creates a QuestionService backed by store.
func NewQuestionService(store QuestionStore, logger *zap.Logger) *QuestionService {
	return &QuestionService{store: store, logger: logger}
}

// Create stores the question as given and returns its id.
func (s *QuestionService) Create(ctx context.Context, q domain.Question) (int64, error) {
	id, err := s.store.InsertQuestion(ctx, q)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("question added", zap.Int64("question_id", id), zap.String("theme", q.Theme))
	return id, nil
}

// Get returns ErrQuestionNotFound when the id is unknown.
func (s *QuestionService) Get(ctx context.Context, id int64) (domain.Question, error) {
	q, err := s.store.FindQuestion(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return domain.Question{}, ErrQuestionNotFound
	}
	return q, err
}

// List returns the questions of a theme, or all of them for an empty theme.
func (s *QuestionService) List(ctx context.Context, theme string) ([]domain.Question, error) {
	return s.store.ListQuestions(ctx, theme)
}
