package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Freeeeeet/availability_api/internal/model"
	"github.com/Freeeeeet/availability_api/internal/repository"
)

// ProfessionalInput поля специалиста из запроса; nil означает "не передано"
type ProfessionalInput struct {
	FirstName *string
	LastName  *string
}

type ProfessionalService struct {
	tx            repository.TxManager
	professionals repository.ProfessionalStore
	tokens        TokenSigner
	logger        *zap.Logger
}

func NewProfessionalService(
	tx repository.TxManager,
	professionals repository.ProfessionalStore,
	tokens TokenSigner,
	logger *zap.Logger,
) *ProfessionalService {
	return &ProfessionalService{
		tx:            tx,
		professionals: professionals,
		tokens:        tokens,
		logger:        logger,
	}
}

// Create регистрирует специалиста и сразу выдаёт ему mock-токен
func (s *ProfessionalService) Create(ctx context.Context, input *ProfessionalInput) (*model.Professional, error) {
	if input == nil {
		return nil, validationError(msgProfessionalRequired)
	}

	if input.FirstName == nil || strings.TrimSpace(*input.FirstName) == "" {
		return nil, validationError(msgFirstNameRequired)
	}

	if input.LastName == nil || strings.TrimSpace(*input.LastName) == "" {
		return nil, validationError(msgLastNameRequired)
	}

	professional := &model.Professional{
		FirstName: *input.FirstName,
		LastName:  *input.LastName,
	}

	err := s.tx.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		if err := repos.Professionals.Create(ctx, professional); err != nil {
			return err
		}

		token, err := s.tokens.Sign(professional.ID)
		if err != nil {
			return err
		}

		if err := repos.Professionals.SetToken(ctx, professional.ID, token); err != nil {
			return err
		}

		professional.Token = token
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Professional created",
		zap.Int64("professional_id", professional.ID),
		zap.String("first_name", professional.FirstName),
	)

	return professional, nil
}

// Find получает специалистов по фильтру
func (s *ProfessionalService) Find(ctx context.Context, filter model.ProfessionalFilter) ([]*model.Professional, error) {
	return s.professionals.List(ctx, filter)
}

// FindOne получает специалиста по ID
func (s *ProfessionalService) FindOne(ctx context.Context, id int64) (*model.Professional, error) {
	professional, err := s.professionals.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get professional: %w", err)
	}

	if professional == nil {
		return nil, notFoundError(msgProfessionalNotFound)
	}

	return professional, nil
}

// Update заменяет переданные поля. Токен не меняется никогда.
func (s *ProfessionalService) Update(ctx context.Context, id int64, input *ProfessionalInput) (*model.Professional, error) {
	if input == nil {
		return nil, validationError(msgProfessionalRequired)
	}

	professional, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		if strings.TrimSpace(*input.FirstName) == "" {
			return nil, validationError(msgFirstNameRequired)
		}
		professional.FirstName = *input.FirstName
	}

	if input.LastName != nil {
		if strings.TrimSpace(*input.LastName) == "" {
			return nil, validationError(msgLastNameRequired)
		}
		professional.LastName = *input.LastName
	}

	updated, err := s.professionals.Update(ctx, professional)
	if err != nil {
		return nil, err
	}

	if !updated {
		return nil, notFoundError(msgProfessionalNotFound)
	}

	s.logger.Info("Professional updated", zap.Int64("professional_id", id))

	return professional, nil
}

// Destroy удаляет специалиста; отсутствие записи не ошибка
func (s *ProfessionalService) Destroy(ctx context.Context, id int64) error {
	if err := s.professionals.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Professional deleted", zap.Int64("professional_id", id))

	return nil
}
