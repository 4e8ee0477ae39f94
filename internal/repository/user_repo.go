package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"task_tracker/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL           = `INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)`
	selectUserByUsernameSQL = `SELECT id, username, email, password_hash FROM users WHERE username = ?`
	selectUserByIDSQL       = `SELECT id, username, email, password_hash FROM users WHERE id = ?`
)

// Create inserts a new user and returns its ID. A UNIQUE violation on
// username or email maps to ErrUsernameTaken / ErrEmailTaken.
func (r *UserRepository) Create(username, email, passwordHash string) (int, error) {
	res, err := r.db.Exec(insertUserSQL, username, email, passwordHash)
	if err != nil {
		if isUniqueViolation(err, "users.username") {
			return 0, ErrUsernameTaken
		}
		if isUniqueViolation(err, "users.email") {
			return 0, ErrEmailTaken
		}
		return 0, fmt.Errorf("insert user %q: %w", username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", username, err)
	}
	return int(lastID), nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	return r.getOne(selectUserByUsernameSQL, username)
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(id int) (*models.User, error) {
	return r.getOne(selectUserByIDSQL, id)
}

func (r *UserRepository) getOne(query string, arg any) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(query, arg).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %v: %w", arg, err)
	}
	return &u, nil
}

// isUniqueViolation checks the sqlite error text for a UNIQUE constraint
// failure on the given column (modernc.org/sqlite exposes no typed error).
func isUniqueViolation(err error, column string) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: "+column)
}
