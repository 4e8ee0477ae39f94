package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"task_tracker/internal/models"
)

// mockTodoRepo is a lightweight in-test mock for repository.Todos.
type mockTodoRepo struct {
	CreateFn      func(t models.Todo) (models.Todo, error)
	GetByIDFn     func(id string) (*models.Todo, error)
	ListByOwnerFn func(ownerID int, search string, limit, offset int) ([]models.Todo, int, error)
	UpdateFn      func(t models.Todo) error
	DeleteFn      func(id string) error

	updates []models.Todo
	deletes []string
}

func (m *mockTodoRepo) Create(_ context.Context, t models.Todo) (models.Todo, error) {
	return m.CreateFn(t)
}
func (m *mockTodoRepo) GetByID(_ context.Context, id string) (*models.Todo, error) {
	return m.GetByIDFn(id)
}
func (m *mockTodoRepo) ListByOwner(_ context.Context, ownerID int, search string, limit, offset int) ([]models.Todo, int, error) {
	return m.ListByOwnerFn(ownerID, search, limit, offset)
}
func (m *mockTodoRepo) Update(_ context.Context, t models.Todo) error {
	m.updates = append(m.updates, t)
	if m.UpdateFn != nil {
		return m.UpdateFn(t)
	}
	return nil
}
func (m *mockTodoRepo) Delete(_ context.Context, id string) error {
	m.deletes = append(m.deletes, id)
	if m.DeleteFn != nil {
		return m.DeleteFn(id)
	}
	return nil
}

// mockActivityRepo records appended entries.
type mockActivityRepo struct {
	entries []models.Activity
	err     error
}

func (m *mockActivityRepo) Append(_ context.Context, a models.Activity) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, a)
	return nil
}
func (m *mockActivityRepo) List(_ context.Context, userID int, from, to time.Time, typ string) ([]models.Activity, error) {
	return m.entries, nil
}

func strPtr(s string) *string                          { return &s }
func statusPtr(s models.TodoStatus) *models.TodoStatus { return &s }

// --- Create ---

func TestTodoService_Create_Validation(t *testing.T) {
	repo := &mockTodoRepo{
		CreateFn: func(todo models.Todo) (models.Todo, error) {
			t.Fatal("Create should not be called for invalid input")
			return models.Todo{}, nil
		},
	}
	svc := NewTodoService(repo, &mockActivityRepo{})

	for _, in := range []struct{ title, desc string }{
		{"", "d"},
		{"t", ""},
		{"   ", "d"},
	} {
		if _, err := svc.Create(context.Background(), 1, in.title, in.desc); !errors.Is(err, ErrValidation) {
			t.Fatalf("title=%q desc=%q: expected ErrValidation, got %v", in.title, in.desc, err)
		}
	}
}

func TestTodoService_Create_DefaultsToActiveAndRecordsActivity(t *testing.T) {
	repo := &mockTodoRepo{
		CreateFn: func(todo models.Todo) (models.Todo, error) {
			if todo.Status != models.StatusActive {
				t.Fatalf("expected status ACTIVE at creation, got %q", todo.Status)
			}
			if todo.OwnerID != 9 {
				t.Fatalf("expected owner 9, got %d", todo.OwnerID)
			}
			todo.ID = "new-id"
			return todo, nil
		},
	}
	activity := &mockActivityRepo{}
	svc := NewTodoService(repo, activity)

	created, err := svc.Create(context.Background(), 9, "t", "d")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID != "new-id" {
		t.Fatalf("expected persisted id, got %q", created.ID)
	}

	if len(activity.entries) != 1 || activity.entries[0].Type != ActivityTodoCreated {
		t.Fatalf("expected one TODO_CREATED entry, got %+v", activity.entries)
	}
	if activity.entries[0].UserID != 9 || activity.entries[0].TodoID != "new-id" {
		t.Fatalf("unexpected activity entry: %+v", activity.entries[0])
	}
}

func TestTodoService_Create_ActivityFailureDoesNotFailCreate(t *testing.T) {
	repo := &mockTodoRepo{
		CreateFn: func(todo models.Todo) (models.Todo, error) {
			todo.ID = "x"
			return todo, nil
		},
	}
	svc := NewTodoService(repo, &mockActivityRepo{err: errors.New("audit down")})

	if _, err := svc.Create(context.Background(), 1, "t", "d"); err != nil {
		t.Fatalf("create must succeed despite audit failure, got %v", err)
	}
}

// --- List ---

func TestTodoService_List_PaginationMath(t *testing.T) {
	var gotLimit, gotOffset int
	repo := &mockTodoRepo{
		ListByOwnerFn: func(ownerID int, search string, limit, offset int) ([]models.Todo, int, error) {
			gotLimit, gotOffset = limit, offset
			// 15 todos total; page 2 of 10 holds the last 5.
			items := make([]models.Todo, 5)
			return items, 15, nil
		},
	}
	svc := NewTodoService(repo, &mockActivityRepo{})

	page, err := svc.List(context.Background(), 1, ListParams{Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if gotLimit != 10 || gotOffset != 10 {
		t.Fatalf("expected limit=10 offset=10, got %d/%d", gotLimit, gotOffset)
	}
	if page.Total != 15 || page.Pages != 2 || page.CurrentPage != 2 || len(page.Items) != 5 {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestTodoService_List_PageBeyondRangeIsEmptyNotError(t *testing.T) {
	repo := &mockTodoRepo{
		ListByOwnerFn: func(ownerID int, search string, limit, offset int) ([]models.Todo, int, error) {
			if offset != 20 {
				t.Fatalf("expected offset 20 for page 3, got %d", offset)
			}
			return []models.Todo{}, 15, nil
		},
	}
	svc := NewTodoService(repo, &mockActivityRepo{})

	page, err := svc.List(context.Background(), 1, ListParams{Page: 3, Limit: 10})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(page.Items) != 0 || page.Pages != 2 {
		t.Fatalf("expected empty page with pages=2, got %+v", page)
	}
}

func TestTodoService_List_Defaults(t *testing.T) {
	repo := &mockTodoRepo{
		ListByOwnerFn: func(ownerID int, search string, limit, offset int) ([]models.Todo, int, error) {
			if limit != defaultPageLimit || offset != 0 {
				t.Fatalf("expected default limit %d offset 0, got %d/%d", defaultPageLimit, limit, offset)
			}
			return []models.Todo{}, 0, nil
		},
	}
	svc := NewTodoService(repo, &mockActivityRepo{})

	page, err := svc.List(context.Background(), 1, ListParams{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if page.CurrentPage != 1 || page.Pages != 0 {
		t.Fatalf("unexpected page meta: %+v", page)
	}
}

// --- Update ---

func existing() *models.Todo {
	return &models.Todo{
		ID:          "abc",
		Title:       "original title",
		Description: "original description",
		Status:      models.StatusActive,
		OwnerID:     1,
	}
}

func TestTodoService_Update_PartialKeepsOtherFields(t *testing.T) {
	repo := &mockTodoRepo{
		GetByIDFn: func(id string) (*models.Todo, error) { return existing(), nil },
	}
	activity := &mockActivityRepo{}
	svc := NewTodoService(repo, activity)

	updated, err := svc.Update(context.Background(), "abc", 1, UpdateParams{Title: strPtr("amended title")})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != "amended title" {
		t.Fatalf("title not applied: %q", updated.Title)
	}
	if updated.Description != "original description" || updated.Status != models.StatusActive {
		t.Fatalf("unset fields must keep previous values: %+v", updated)
	}

	if len(repo.updates) != 1 {
		t.Fatalf("expected 1 persisted update, got %d", len(repo.updates))
	}
	if len(activity.entries) != 1 || activity.entries[0].Type != ActivityTodoUpdated {
		t.Fatalf("expected TODO_UPDATED entry, got %+v", activity.entries)
	}
}

func TestTodoService_Update_StatusTransition(t *testing.T) {
	repo := &mockTodoRepo{
		GetByIDFn: func(id string) (*models.Todo, error) { return existing(), nil },
	}
	svc := NewTodoService(repo, &mockActivityRepo{})

	updated, err := svc.Update(context.Background(), "abc", 1, UpdateParams{Status: statusPtr(models.StatusCompleted)})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Status != models.StatusCompleted {
		t.Fatalf("expected COMPLETED, got %q", updated.Status)
	}
}

func TestTodoService_Update_InvalidStatus(t *testing.T) {
	repo := &mockTodoRepo{
		GetByIDFn: func(id string) (*models.Todo, error) { return existing(), nil },
	}
	svc := NewTodoService(repo, &mockActivityRepo{})

	_, err := svc.Update(context.Background(), "abc", 1, UpdateParams{Status: statusPtr(models.TodoStatus("DONE"))})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(repo.updates) != 0 {
		t.Fatalf("nothing should be persisted on validation failure")
	}
}

func TestTodoService_Update_NotFound(t *testing.T) {
	repo := &mockTodoRepo{
		GetByIDFn: func(id string) (*models.Todo, error) { return nil, nil },
	}
	svc := NewTodoService(repo, &mockActivityRepo{})

	_, err := svc.Update(context.Background(), "missing", 1, UpdateParams{Title: strPtr("x")})
	if !errors.Is(err, ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound, got %v", err)
	}
}

func TestTodoService_Update_NotOwnerLeavesRecordUntouched(t *testing.T) {
	repo := &mockTodoRepo{
		GetByIDFn: func(id string) (*models.Todo, error) { return existing(), nil },
	}
	svc := NewTodoService(repo, &mockActivityRepo{})

	_, err := svc.Update(context.Background(), "abc", 2, UpdateParams{Title: strPtr("x")})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(repo.updates) != 0 {
		t.Fatalf("record must stay unmodified, got %d updates", len(repo.updates))
	}
}

// --- Delete ---

func TestTodoService_Delete_Success(t *testing.T) {
	repo := &mockTodoRepo{
		GetByIDFn: func(id string) (*models.Todo, error) { return existing(), nil },
	}
	activity := &mockActivityRepo{}
	svc := NewTodoService(repo, activity)

	if err := svc.Delete(context.Background(), "abc", 1); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(repo.deletes) != 1 || repo.deletes[0] != "abc" {
		t.Fatalf("unexpected deletes: %v", repo.deletes)
	}
	if len(activity.entries) != 1 || activity.entries[0].Type != ActivityTodoDeleted {
		t.Fatalf("expected TODO_DELETED entry, got %+v", activity.entries)
	}
}

func TestTodoService_Delete_NotOwner(t *testing.T) {
	repo := &mockTodoRepo{
		GetByIDFn: func(id string) (*models.Todo, error) { return existing(), nil },
	}
	svc := NewTodoService(repo, &mockActivityRepo{})

	if err := svc.Delete(context.Background(), "abc", 99); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(repo.deletes) != 0 {
		t.Fatalf("record must not be deleted, got %v", repo.deletes)
	}
}

func TestTodoService_Delete_NotFound(t *testing.T) {
	repo := &mockTodoRepo{
		GetByIDFn: func(id string) (*models.Todo, error) { return nil, nil },
	}
	svc := NewTodoService(repo, &mockActivityRepo{})

	if err := svc.Delete(context.Background(), "missing", 1); !errors.Is(err, ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound, got %v", err)
	}
}
