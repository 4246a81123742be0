package services

import (
	"go.uber.org/zap"

	apperrors "github.com/fsel/admin-console-api/pkg/errors"
	"github.com/fsel/admin-console-api/pkg/jwt"
	"github.com/fsel/admin-console-api/pkg/logger"
)

// OperatorAuthService authenticates console operators and issues their
// session tokens. Operator credentials are deploy-time configuration; this
// is a single-tenant internal tool, not a user system.
type OperatorAuthService struct {
	username string
	password string
	tokens   *jwt.TokenManager
}

func NewOperatorAuthService(username, password string, tokens *jwt.TokenManager) *OperatorAuthService {
	return &OperatorAuthService{username: username, password: password, tokens: tokens}
}

// Login verifies the operator's credentials and returns a session token.
func (s *OperatorAuthService) Login(username, password string) (string, error) {
	userOK := jwt.TimingSafeCompare(username, s.username)
	passOK := jwt.TimingSafeCompare(password, s.password)
	if !userOK || !passOK {
		logger.Log.Warn("Operator login rejected", zap.String("username", username))
		return "", apperrors.ErrUnauthorized
	}

	token, err := s.tokens.GenerateToken(username, "operator")
	if err != nil {
		return "", apperrors.InternalError("failed to issue session token")
	}
	return token, nil
}

// Validate checks a session token and returns the operator's claims.
func (s *OperatorAuthService) Validate(token string) (*jwt.OperatorClaims, error) {
	return s.tokens.ValidateToken(token)
}

// SessionTTLSeconds reports how long issued sessions live.
func (s *OperatorAuthService) SessionTTLSeconds() int {
	return int(s.tokens.GetExpirationTime().Seconds())
}
