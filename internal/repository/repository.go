package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"task_tracker/internal/models"
)

// Conflict sentinels surfaced when the storage-layer uniqueness
// constraints reject an insert.
var (
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already registered")
)

type Users interface {
	Create(username, email, passwordHash string) (int, error)
	GetByUsername(username string) (*models.User, error)
	GetByID(id int) (*models.User, error)
}

type Todos interface {
	Create(ctx context.Context, t models.Todo) (models.Todo, error)
	GetByID(ctx context.Context, id string) (*models.Todo, error)
	ListByOwner(ctx context.Context, ownerID int, search string, limit, offset int) ([]models.Todo, int, error)
	Update(ctx context.Context, t models.Todo) error
	Delete(ctx context.Context, id string) error
}

type Activities interface {
	Append(ctx context.Context, a models.Activity) error
	List(ctx context.Context, userID int, from, to time.Time, typ string) ([]models.Activity, error)
}

type Repository struct {
	Users      Users
	Todos      Todos
	Activities Activities
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:      NewUserRepository(db),
		Todos:      NewTodoRepository(db),
		Activities: NewActivityRepository(db),
	}
}
