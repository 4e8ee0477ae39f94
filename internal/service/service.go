package service

import (
	"context"
	"errors"
	"time"

	"task_tracker/internal/models"
	"task_tracker/internal/repository"
)

// ErrValidation marks malformed or missing input; callers wrap it with
// field detail via fmt.Errorf("%w: ...", ErrValidation).
var ErrValidation = errors.New("invalid input")

// Authorization is the credential store plus the token service: it owns
// registration, credential verification and JWT issue/parse.
type Authorization interface {
	SignUp(username, email, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
	UserByID(id int) (*models.User, error)
}

// Todos exposes ownership-scoped CRUD with search and pagination.
type Todos interface {
	Create(ctx context.Context, ownerID int, title, description string) (models.Todo, error)
	List(ctx context.Context, ownerID int, p ListParams) (TodoPage, error)
	Update(ctx context.Context, todoID string, ownerID int, p UpdateParams) (models.Todo, error)
	Delete(ctx context.Context, todoID string, ownerID int) error
}

// ActivityLog exposes the caller's append-only mutation history.
type ActivityLog interface {
	List(ctx context.Context, userID int, f ActivityFilter) ([]models.Activity, error)
}

// ListParams selects a page of todos. Page is 1-indexed; Search filters
// by substring across title and description.
type ListParams struct {
	Search string
	Page   int
	Limit  int
}

// TodoPage is one page of results plus pagination metadata.
type TodoPage struct {
	Items       []models.Todo
	Total       int
	Pages       int
	CurrentPage int
}

// UpdateParams carries the fields of a partial update; nil means "leave
// the previous value".
type UpdateParams struct {
	Title       *string
	Description *string
	Status      *models.TodoStatus
}

// ActivityFilter supports history filtering by time range and type.
type ActivityFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "TODO_CREATED", "TODO_UPDATED", "TODO_DELETED"
}

// AuthConfig is the process-wide token configuration, established at
// startup and never mutated.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Authorization
	Todos
	ActivityLog
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, auth AuthConfig) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, auth),
		Todos:         NewTodoService(repos.Todos, repos.Activities),
		ActivityLog:   NewActivityService(repos.Activities),
	}
}
