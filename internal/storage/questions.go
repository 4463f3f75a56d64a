package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/conorfennell/myeng/internal/domain"
)

const questionColumns = `id, COALESCE(theme, ''), COALESCE(text, ''), COALESCE(ans, '')`

func scanQuestion(row rowScanner) (domain.Question, error) {
	var q domain.Question
	err := row.Scan(&q.ID, &q.Theme, &q.Text, &q.Ans)
	return q, err
}

// InsertQuestion stores a question and returns its id. A zero id lets
// SQLite assign one.
func (db *DB) InsertQuestion(ctx context.Context, q domain.Question) (int64, error) {
	res, err := db.conn.ExecContext(ctx, `
		INSERT INTO questions (id, theme, text, ans)
		VALUES (?, ?, ?, ?)
	`, nullableID(q.ID), q.Theme, q.Text, q.Ans)
	if err != nil {
		return 0, fmt.Errorf("failed to insert question: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for question: %w", err)
	}
	return id, nil
}

// FindQuestion retrieves a question by id. It returns ErrNotFound if there is none.
func (db *DB) FindQuestion(ctx context.Context, id int64) (domain.Question, error) {
	row := db.conn.QueryRowContext(ctx, `SELECT `+questionColumns+` FROM questions WHERE id = ?`, id)
	q, err := scanQuestion(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Question{}, ErrNotFound
		}
		return domain.Question{}, fmt.Errorf("failed to find question %d: %w", id, err)
	}
	return q, nil
}

// ListQuestions returns the questions of a theme in id order,
// or all questions when theme is empty.
func (db *DB) ListQuestions(ctx context.Context, theme string) ([]domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions`
	var args []any
	if theme != "" {
		query += ` WHERE theme = ?`
		args = append(args, theme)
	}
	query += ` ORDER BY id`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question row: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate question rows: %w", err)
	}
	return questions, nil
}
