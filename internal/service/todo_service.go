package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"task_tracker/internal/models"
	"task_tracker/internal/repository"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// Activity entry types recorded for todo mutations.
const (
	ActivityTodoCreated = "TODO_CREATED"
	ActivityTodoUpdated = "TODO_UPDATED"
	ActivityTodoDeleted = "TODO_DELETED"
)

var (
	ErrTodoNotFound = errors.New("todo not found")
	// ErrForbidden means the caller is authenticated but is not the
	// owner of the record.
	ErrForbidden = errors.New("you do not have permission for this action")
)

// TodoService orchestrates todo persistence and enforces ownership.
type TodoService struct {
	todos      repository.Todos
	activities repository.Activities
}

func NewTodoService(todos repository.Todos, activities repository.Activities) *TodoService {
	return &TodoService{todos: todos, activities: activities}
}

// ownedBy is the ownership predicate: only the user whose id is stored
// as OwnerID may mutate or delete the todo.
func ownedBy(t models.Todo, userID int) bool {
	return t.OwnerID == userID
}

// Create persists a new todo with status ACTIVE for the given owner.
func (s *TodoService) Create(ctx context.Context, ownerID int, title, description string) (models.Todo, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return models.Todo{}, fmt.Errorf("%w: title and description are required", ErrValidation)
	}

	created, err := s.todos.Create(ctx, models.Todo{
		Title:       title,
		Description: description,
		Status:      models.StatusActive,
		OwnerID:     ownerID,
	})
	if err != nil {
		return models.Todo{}, err
	}

	s.record(ctx, ownerID, ActivityTodoCreated, created.ID, created.Title)
	return created, nil
}

// List returns one 1-indexed page of the owner's todos. A page beyond
// range yields an empty item list, not an error. Search matches title or
// description as a case-insensitive substring.
func (s *TodoService) List(ctx context.Context, ownerID int, p ListParams) (TodoPage, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}

	offset := (p.Page - 1) * p.Limit
	items, total, err := s.todos.ListByOwner(ctx, ownerID, strings.TrimSpace(p.Search), p.Limit, offset)
	if err != nil {
		return TodoPage{}, err
	}

	pages := (total + p.Limit - 1) / p.Limit
	return TodoPage{
		Items:       items,
		Total:       total,
		Pages:       pages,
		CurrentPage: p.Page,
	}, nil
}

// Update applies a partial update: only non-nil fields change, the rest
// keep their previous values. Last write wins on concurrent updates.
func (s *TodoService) Update(ctx context.Context, todoID string, ownerID int, p UpdateParams) (models.Todo, error) {
	t, err := s.loadOwned(ctx, todoID, ownerID)
	if err != nil {
		return models.Todo{}, err
	}

	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			return models.Todo{}, fmt.Errorf("%w: title must not be empty", ErrValidation)
		}
		t.Title = *p.Title
	}
	if p.Description != nil {
		if strings.TrimSpace(*p.Description) == "" {
			return models.Todo{}, fmt.Errorf("%w: description must not be empty", ErrValidation)
		}
		t.Description = *p.Description
	}
	if p.Status != nil {
		if !models.ValidStatus(*p.Status) {
			return models.Todo{}, fmt.Errorf("%w: status must be ACTIVE or COMPLETED", ErrValidation)
		}
		t.Status = *p.Status
	}
	t.UpdatedAt = time.Now().UTC()

	if err := s.todos.Update(ctx, *t); err != nil {
		return models.Todo{}, err
	}

	s.record(ctx, ownerID, ActivityTodoUpdated, t.ID, t.Title)
	return *t, nil
}

// Delete removes the todo permanently.
func (s *TodoService) Delete(ctx context.Context, todoID string, ownerID int) error {
	t, err := s.loadOwned(ctx, todoID, ownerID)
	if err != nil {
		return err
	}

	if err := s.todos.Delete(ctx, todoID); err != nil {
		return err
	}

	s.record(ctx, ownerID, ActivityTodoDeleted, t.ID, t.Title)
	return nil
}

// loadOwned fetches the todo and enforces the ownership predicate.
func (s *TodoService) loadOwned(ctx context.Context, todoID string, ownerID int) (*models.Todo, error) {
	t, err := s.todos.GetByID(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTodoNotFound
	}
	if !ownedBy(*t, ownerID) {
		return nil, ErrForbidden
	}
	return t, nil
}

// record appends an activity entry. The audit trail is best-effort: a
// failed append never fails the mutation it describes.
func (s *TodoService) record(ctx context.Context, userID int, typ, todoID, detail string) {
	_ = s.activities.Append(ctx, models.Activity{
		UserID: userID,
		Type:   typ,
		TodoID: todoID,
		Detail: detail,
	})
}
