package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"task_tracker/internal/models"

	"github.com/google/uuid"
)

type TodoRepository struct {
	db *sql.DB
}

func NewTodoRepository(db *sql.DB) *TodoRepository { return &TodoRepository{db: db} }

var _ Todos = (*TodoRepository)(nil)

const (
	insertTodoSQL = `INSERT INTO todos (id, title, description, status, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	selectTodoByIDSQL = `SELECT id, title, description, status, owner_id, created_at, updated_at
		FROM todos WHERE id = ?`
	updateTodoSQL = `UPDATE todos SET title = ?, description = ?, status = ?, updated_at = ? WHERE id = ?`
	deleteTodoSQL = `DELETE FROM todos WHERE id = ?`

	countTodosByOwnerSQL  = `SELECT COUNT(*) FROM todos WHERE owner_id = ?`
	selectTodosByOwnerSQL = `SELECT id, title, description, status, owner_id, created_at, updated_at
		FROM todos WHERE owner_id = ?`

	// Matches against title OR description. SQLite LIKE is
	// case-insensitive for ASCII, which is the documented behavior of
	// search here. ESCAPE lets likePattern neutralize % and _ in the
	// term so it matches as a literal substring.
	searchCondSQL = ` AND (title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\')`

	listOrderSQL = ` ORDER BY created_at ASC, id ASC LIMIT ? OFFSET ?`
)

var likeMetaReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a contains-substring LIKE pattern with the term's
// wildcard characters escaped, paired with ESCAPE '\' in searchCondSQL.
func likePattern(term string) string {
	return "%" + likeMetaReplacer.Replace(term) + "%"
}

// Create inserts a new todo. If ID or timestamps are unset, they’re set.
func (r *TodoRepository) Create(ctx context.Context, t models.Todo) (models.Todo, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = t.CreatedAt
	}

	_, err := r.db.ExecContext(ctx, insertTodoSQL,
		t.ID, t.Title, t.Description, string(t.Status), t.OwnerID, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return models.Todo{}, fmt.Errorf("insert todo %q: %w", t.ID, err)
	}
	return t, nil
}

// GetByID fetches a todo by id. Returns (nil, nil) if not found.
func (r *TodoRepository) GetByID(ctx context.Context, id string) (*models.Todo, error) {
	row := r.db.QueryRowContext(ctx, selectTodoByIDSQL, id)

	var t models.Todo
	var status string
	err := row.Scan(&t.ID, &t.Title, &t.Description, &status, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select todo %q: %w", id, err)
	}
	t.Status = models.TodoStatus(status)
	return &t, nil
}

// ListByOwner returns one page of the owner's todos plus the total count
// of rows matching the same filter. A page beyond range yields an empty
// slice, not an error.
func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID int, search string, limit, offset int) ([]models.Todo, int, error) {
	countQ := countTodosByOwnerSQL
	listQ := selectTodosByOwnerSQL
	args := []any{ownerID}
	if search != "" {
		pattern := likePattern(search)
		countQ += searchCondSQL
		listQ += searchCondSQL
		args = append(args, pattern, pattern)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count todos for owner %d: %w", ownerID, err)
	}

	listQ += listOrderSQL
	rows, err := r.db.QueryContext(ctx, listQ, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("select todos for owner %d: %w", ownerID, err)
	}
	defer rows.Close()

	out := make([]models.Todo, 0, limit)
	for rows.Next() {
		var t models.Todo
		var status string
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &status, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, err
		}
		t.Status = models.TodoStatus(status)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Update persists title/description/status for an existing row. Ownership
// checks are the service's concern; this applies the row as given.
func (r *TodoRepository) Update(ctx context.Context, t models.Todo) error {
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, updateTodoSQL,
		t.Title, t.Description, string(t.Status), t.UpdatedAt, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update todo %q: %w", t.ID, err)
	}
	return nil
}

// Delete removes the row permanently (no soft delete).
func (r *TodoRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, deleteTodoSQL, id); err != nil {
		return fmt.Errorf("delete todo %q: %w", id, err)
	}
	return nil
}
