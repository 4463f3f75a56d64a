package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/conorfennell/myeng/internal/domain"
)

const testColumns = `id, COALESCE(theme, ''), COALESCE(questions, ''), COALESCE(passed_users, '')`

func scanTest(row rowScanner) (domain.Test, error) {
	var (
		t      domain.Test
		passed string
	)
	if err := row.Scan(&t.ID, &t.Theme, &t.Questions, &passed); err != nil {
		return domain.Test{}, err
	}
	t.PassedUsers = domain.ParsePassedUsers(passed)
	return t, nil
}

// InsertTest stores a test and returns its id. A zero id lets SQLite assign one.
func (db *DB) InsertTest(ctx context.Context, t domain.Test) (int64, error) {
	res, err := db.conn.ExecContext(ctx, `
		INSERT INTO tests (id, theme, questions, passed_users)
		VALUES (?, ?, ?, ?)
	`, nullableID(t.ID), t.Theme, t.Questions, t.PassedUsers.String())
	if err != nil {
		return 0, fmt.Errorf("failed to insert test: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for test: %w", err)
	}
	return id, nil
}

// FindTest retrieves a test by id. It returns ErrNotFound if there is none.
func (db *DB) FindTest(ctx context.Context, id int64) (domain.Test, error) {
	row := db.conn.QueryRowContext(ctx, `SELECT `+testColumns+` FROM tests WHERE id = ?`, id)
	t, err := scanTest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Test{}, ErrNotFound
		}
		return domain.Test{}, fmt.Errorf("failed to find test %d: %w", id, err)
	}
	return t, nil
}

// ListTestsByTheme returns the tests of a theme in storage order.
func (db *DB) ListTestsByTheme(ctx context.Context, theme string) ([]domain.Test, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT `+testColumns+`
		FROM tests WHERE theme = ?
		ORDER BY id
	`, theme)
	if err != nil {
		return nil, fmt.Errorf("failed to list tests for theme %q: %w", theme, err)
	}
	defer rows.Close()

	var tests []domain.Test
	for rows.Next() {
		t, err := scanTest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan test row for theme %q: %w", theme, err)
		}
		tests = append(tests, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate test rows for theme %q: %w", theme, err)
	}
	return tests, nil
}

// SwapPassedUsers replaces a test's passed-users list only if the row still
// holds the text expected was read from. It reports whether the row was updated.
func (db *DB) SwapPassedUsers(ctx context.Context, testID int64, expected, updated domain.PassedUsers) (bool, error) {
	res, err := db.conn.ExecContext(ctx, `
		UPDATE tests
		SET passed_users = ?
		WHERE id = ? AND COALESCE(passed_users, '') = ?
	`, updated.String(), testID, expected.Source())
	if err != nil {
		return false, fmt.Errorf("failed to update passed users for test %d: %w", testID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows for test %d: %w", testID, err)
	}
	return n == 1, nil
}
