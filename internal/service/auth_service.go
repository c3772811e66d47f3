package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Freeeeeet/availability_api/internal/repository"
)

// AuthService mock-аутентификация: токен выдаётся любому существующему специалисту
type AuthService struct {
	professionals repository.ProfessionalStore
	tokens        TokenSigner
	logger        *zap.Logger
}

func NewAuthService(professionals repository.ProfessionalStore, tokens TokenSigner, logger *zap.Logger) *AuthService {
	return &AuthService{
		professionals: professionals,
		tokens:        tokens,
		logger:        logger,
	}
}

// Login выдаёт токен для специалиста
func (s *AuthService) Login(ctx context.Context, professionalID *int64) (string, error) {
	if professionalID == nil || *professionalID == 0 {
		return "", validationError(msgLoginRequired)
	}

	exists, err := s.professionals.Exists(ctx, *professionalID)
	if err != nil {
		return "", fmt.Errorf("check professional: %w", err)
	}

	if !exists {
		return "", forbiddenError(msgInvalidProfessional)
	}

	token, err := s.tokens.Sign(*professionalID)
	if err != nil {
		return "", err
	}

	s.logger.Debug("Token issued", zap.Int64("professional_id", *professionalID))

	return token, nil
}

// Authenticate проверяет токен и возвращает ID специалиста
func (s *AuthService) Authenticate(ctx context.Context, token string) (int64, error) {
	professionalID, err := s.tokens.Verify(token)
	if err != nil {
		return 0, unauthorizedError(msgInvalidToken)
	}

	exists, err := s.professionals.Exists(ctx, professionalID)
	if err != nil {
		return 0, fmt.Errorf("check professional: %w", err)
	}

	if !exists {
		return 0, unauthorizedError(msgProfessionalNotFound)
	}

	return professionalID, nil
}
