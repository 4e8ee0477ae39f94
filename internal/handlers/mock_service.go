package handlers

import (
	"context"
	"net/http"

	"task_tracker/internal/models"
	"task_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error
	userByID      *models.User
	userByIDErr   error

	lastSignUpUsername string
	lastSignUpEmail    string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, email, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpEmail = email
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}
func (m *mockAuth) UserByID(id int) (*models.User, error) {
	return m.userByID, m.userByIDErr
}

type mockTodos struct {
	createTodo models.Todo
	createErr  error
	listPage   service.TodoPage
	listErr    error
	updateTodo models.Todo
	updateErr  error
	deleteErr  error

	lastCreateOwner int
	lastCreateTitle string
	lastCreateDesc  string
	lastListOwner   int
	lastListParams  service.ListParams
	lastUpdateID    string
	lastUpdateOwner int
	lastUpdate      service.UpdateParams
	lastDeleteID    string
	lastDeleteOwner int
}

func (m *mockTodos) Create(ctx context.Context, ownerID int, title, description string) (models.Todo, error) {
	m.lastCreateOwner = ownerID
	m.lastCreateTitle = title
	m.lastCreateDesc = description
	return m.createTodo, m.createErr
}
func (m *mockTodos) List(ctx context.Context, ownerID int, p service.ListParams) (service.TodoPage, error) {
	m.lastListOwner = ownerID
	m.lastListParams = p
	return m.listPage, m.listErr
}
func (m *mockTodos) Update(ctx context.Context, todoID string, ownerID int, p service.UpdateParams) (models.Todo, error) {
	m.lastUpdateID = todoID
	m.lastUpdateOwner = ownerID
	m.lastUpdate = p
	return m.updateTodo, m.updateErr
}
func (m *mockTodos) Delete(ctx context.Context, todoID string, ownerID int) error {
	m.lastDeleteID = todoID
	m.lastDeleteOwner = ownerID
	return m.deleteErr
}

type mockActivityLog struct {
	resp       []models.Activity
	err        error
	lastUserID int
	lastFilter service.ActivityFilter
}

func (m *mockActivityLog) List(ctx context.Context, userID int, f service.ActivityFilter) ([]models.Activity, error) {
	m.lastUserID = userID
	m.lastFilter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

// authedService returns a service whose middleware admits any bearer
// token as the given user id.
func authedService(userID int, todos *mockTodos, activity *mockActivityLog) *service.Service {
	return &service.Service{
		Authorization: &mockAuth{parseID: userID, userByID: &models.User{ID: userID, Username: "u"}},
		Todos:         todos,
		ActivityLog:   activity,
	}
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
