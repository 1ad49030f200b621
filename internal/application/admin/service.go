package admin

import (
	"crypto/subtle"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/shopfront/backend/internal/domain/shop"
)

// SessionIssuer mints signed session tokens for authenticated admins.
type SessionIssuer interface {
	IssueSession(username string) (token string, expiresAt time.Time, err error)
}

// Service authenticates the admin user against configured credentials.
type Service struct {
	username     string
	passwordHash string
	sessions     SessionIssuer
	logger       *zap.Logger
}

// NewService creates an admin service. sessions may be nil when only
// basic-auth checks are needed.
func NewService(username, passwordHash string, sessions SessionIssuer, logger *zap.Logger) *Service {
	return &Service{
		username:     username,
		passwordHash: passwordHash,
		sessions:     sessions,
		logger:       logger,
	}
}

// Authenticate checks the given credentials. Both comparisons always
// run so a rejected username costs the same as a rejected password.
func (s *Service) Authenticate(username, password string) error {
	if s.username == "" || s.passwordHash == "" {
		return shop.ErrUnauthorized
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password))

	if !userOK || passErr != nil {
		s.logger.Warn("Admin authentication failed", zap.String("username", username))
		return shop.ErrUnauthorized
	}
	return nil
}

// Login authenticates and issues a session token.
func (s *Service) Login(username, password string) (string, time.Time, error) {
	if err := s.Authenticate(username, password); err != nil {
		return "", time.Time{}, err
	}
	if s.sessions == nil {
		return "", time.Time{}, shop.ErrUnauthorized
	}

	token, expiresAt, err := s.sessions.IssueSession(username)
	if err != nil {
		s.logger.Error("Failed to issue admin session", zap.Error(err))
		return "", time.Time{}, err
	}

	s.logger.Info("Admin logged in", zap.String("username", username))
	return token, expiresAt, nil
}

// HashPassword hashes a password for storage in configuration.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
