package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"task_tracker/internal/models"
	"task_tracker/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenTTL = time.Hour
	minPasswordLen  = 6
)

// Domain errors for auth flows.
var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password; callers must not be able to tell which one it was.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("this email is already linked to an account")
)

// AuthService handles user registration, credential checks and tokens.
type AuthService struct {
	users repository.Users
	cfg   AuthConfig
}

func NewAuthService(users repository.Users, cfg AuthConfig) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	return &AuthService{users: users, cfg: cfg}
}

// SignUp validates the registration input, hashes the password and
// creates a new user. Uniqueness races are resolved by the storage
// constraint, never by a check-then-insert here.
func (s *AuthService) SignUp(username, email, password string) (int, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return 0, fmt.Errorf("%w: you must provide a username, email and password", ErrValidation)
	}
	if len(password) < minPasswordLen {
		return 0, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.users.Create(username, email, hash)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameTaken):
			return 0, ErrUsernameTaken
		case errors.Is(err, repository.ErrEmailTaken):
			return 0, ErrEmailTaken
		}
		return 0, err
	}
	return id, nil
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// GenerateToken verifies credentials and returns a signed JWT.
func (s *AuthService) GenerateToken(username, password string) (string, error) {
	u, err := s.users.GetByUsername(username)
	if err != nil {
		return "", err
	}
	if u == nil {
		// Burn a hash comparison anyway so the unknown-username path is
		// not observably faster than a wrong password.
		_ = verifyPassword(dummyHash, password)
		return "", ErrInvalidCredentials
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.issueToken(u.ID)
}

// ParseToken parses and verifies a JWT and returns the embedded user id.
// An id alone is not proof the user still exists; callers resolve it via
// UserByID.
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SigningKey), nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}

	return claims.UserID, nil
}

// UserByID resolves a token subject back to a user. Returns (nil, nil)
// when the id no longer maps to anyone.
func (s *AuthService) UserByID(id int) (*models.User, error) {
	return s.users.GetByID(id)
}

// bcrypt hash of an arbitrary string, used to equalize timing on the
// unknown-username path.
var dummyHash = func() string {
	h, _ := bcrypt.GenerateFromPassword([]byte("timing-equalizer"), bcrypt.DefaultCost)
	return string(h)
}()

// helper: hash password safely
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT carrying the user id as subject
func (s *AuthService) issueToken(userID int) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString([]byte(s.cfg.SigningKey))
}
