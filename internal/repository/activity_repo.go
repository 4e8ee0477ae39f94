package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"task_tracker/internal/models"

	"github.com/google/uuid"
)

type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository { return &ActivityRepository{db: db} }

var _ Activities = (*ActivityRepository)(nil)

const (
	insertActivitySQL = `INSERT INTO activities (id, occurred_at, user_id, type, todo_id, detail)
		VALUES (?, ?, ?, ?, ?, ?)`
	selectActivitiesSQL = `SELECT id, occurred_at, type, todo_id, detail
		FROM activities WHERE user_id = ?`
)

// Append inserts a new entry. If ID or OccurredAt are empty, they’re set.
func (r *ActivityRepository) Append(ctx context.Context, a models.Activity) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.OccurredAt.IsZero() {
		a.OccurredAt = time.Now().UTC()
	} else {
		a.OccurredAt = a.OccurredAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertActivitySQL,
		a.ID,
		a.OccurredAt,
		a.UserID,
		strings.ToUpper(strings.TrimSpace(a.Type)),
		a.TodoID,
		a.Detail,
	)
	return err
}

// List returns the user's entries filtered by [from, to] (inclusive)
// and/or type, ordered ASC.
func (r *ActivityRepository) List(ctx context.Context, userID int, from, to time.Time, typ string) ([]models.Activity, error) {
	q := selectActivitiesSQL
	args := []any{userID}

	if !from.IsZero() {
		q += " AND occurred_at >= ?"
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		q += " AND occurred_at <= ?"
		args = append(args, to.UTC())
	}
	if typ = strings.ToUpper(strings.TrimSpace(typ)); typ != "" {
		q += " AND type = ?"
		args = append(args, typ)
	}
	q += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Activity, 0, 64)
	for rows.Next() {
		var a models.Activity
		var detail sql.NullString
		if err := rows.Scan(&a.ID, &a.OccurredAt, &a.Type, &a.TodoID, &detail); err != nil {
			return nil, err
		}
		a.UserID = userID
		a.OccurredAt = a.OccurredAt.UTC()
		a.Detail = detail.String
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
