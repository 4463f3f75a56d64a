package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/conorfennell/myeng/internal/domain"
)

const userColumns = `id, COALESCE(surname, ''), COALESCE(name, ''), COALESCE(age, 0),
	COALESCE(address, ''), COALESCE(email, ''), COALESCE(telegram_name, ''),
	COALESCE(aim, ''), COALESCE(password, '')`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Surname,
		&u.Name,
		&u.Age,
		&u.Address,
		&u.Email,
		&u.TelegramName,
		&u.Aim,
		&u.Password,
	)
	return u, err
}

// ListUsers returns every user in id order.
func (db *DB) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}
	return users, nil
}

// FindUser retrieves a user by id. It returns ErrNotFound if there is none.
func (db *DB) FindUser(ctx context.Context, id int64) (domain.User, error) {
	row := db.conn.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, fmt.Errorf("failed to find user %d: %w", id, err)
	}
	return u, nil
}

// UserExists checks if a user with the given id is stored.
func (db *DB) UserExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := db.conn.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user %d: %w", id, err)
	}
	return exists, nil
}

// InsertUser stores a new user. It reports false, leaving the stored row
// untouched, when the id is already taken.
func (db *DB) InsertUser(ctx context.Context, u domain.User) (bool, error) {
	res, err := db.conn.ExecContext(ctx, `
		INSERT INTO users (id, surname, name, age, address, email, telegram_name, aim, password)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING
	`,
		u.ID,
		u.Surname,
		u.Name,
		u.Age,
		u.Address,
		u.Email,
		u.TelegramName,
		u.Aim,
		u.Password,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert user %d: %w", u.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows for user %d: %w", u.ID, err)
	}
	return n == 1, nil
}

// DeleteUser removes a user by id and reports whether a row was deleted.
func (db *DB) DeleteUser(ctx context.Context, id int64) (bool, error) {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows for user %d: %w", id, err)
	}
	return n > 0, nil
}
