package user

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"tasktracker/internal/auth"
)

type UserServiceInterface interface {
	Register(username, password string) error
	Login(username, password string) (*auth.Session, error)
	Logout(token string)
}

// UserService composes the credential store with session issuance.
type UserService struct {
	repo    UserRepositoryInterface
	revoker *auth.Revoker
	secret  string
	window  time.Duration
}

func NewUserService(repo UserRepositoryInterface, revoker *auth.Revoker, secret string, window time.Duration) UserServiceInterface {
	return &UserService{
		repo:    repo,
		revoker: revoker,
		secret:  secret,
		window:  window,
	}
}

// Register stores a new user with a bcrypt hash of the password. The
// repository rejects duplicates under its own lock.
func (s *UserService) Register(username, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		logrus.WithError(err).Error("Failed to hash password")
		return err
	}

	return s.repo.Create(&User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	})
}

// Login verifies the credentials and creates a fresh session with login
// time now. Unknown user and wrong password produce the same error.
func (s *UserService) Login(username, password string) (*auth.Session, error) {
	user, err := s.repo.GetByUsername(username)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			logrus.WithError(err).Error("Credential lookup failed")
		}
		return nil, ErrInvalidCredentials
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		logrus.WithField("username", username).Warn("Login failed: wrong password")
		return nil, ErrInvalidCredentials
	}

	session, err := auth.NewSession(username, s.secret, s.window)
	if err != nil {
		return nil, err
	}

	logrus.WithField("username", username).Info("Login successful")
	return session, nil
}

// Logout discards the session behind the token. It always succeeds: an
// unreadable or already-expired token simply has nothing left to discard.
func (s *UserService) Logout(token string) {
	id, err := auth.SessionID(token, s.secret)
	if err != nil {
		return
	}
	s.revoker.Revoke(id, time.Now().Add(s.window))
	logrus.WithField("session_id", id).Info("Session discarded")
}
