package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/availability_api/internal/model"
	"github.com/Freeeeeet/availability_api/internal/repository"
)

type SessionService struct {
	tx       repository.TxManager
	sessions repository.SessionStore
	cache    AvailabilityCache
	location *time.Location
	logger   *zap.Logger
}

func NewSessionService(
	tx repository.TxManager,
	sessions repository.SessionStore,
	cache AvailabilityCache,
	location *time.Location,
	logger *zap.Logger,
) *SessionService {
	if cache == nil {
		cache = noopCache{}
	}
	if location == nil {
		location = time.UTC
	}

	return &SessionService{
		tx:       tx,
		sessions: sessions,
		cache:    cache,
		location: location,
		logger:   logger,
	}
}

// Create нарезает интервал на слоты и сохраняет их одной транзакцией.
// Проверка пересечений и вставка выполняются под блокировкой специалиста.
func (s *SessionService) Create(ctx context.Context, professionalID int64, start, end time.Time) ([]*model.Session, error) {
	slots, err := GenerateSlots(professionalID, start, end)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		if err := repos.Sessions.LockProfessional(ctx, professionalID); err != nil {
			return err
		}

		conflicts, err := repos.Sessions.FindOverlapping(ctx, professionalID, start, end)
		if err != nil {
			return fmt.Errorf("find overlapping sessions: %w", err)
		}

		if len(conflicts) > 0 {
			return overlapError(conflicts, s.location)
		}

		return repos.Sessions.CreateBatch(ctx, slots)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)

	s.logger.Info("Sessions created",
		zap.Int64("professional_id", professionalID),
		zap.Time("start", start),
		zap.Time("end", end),
		zap.Int("count", len(slots)),
	)

	return slots, nil
}

// Find получает слоты по фильтру
func (s *SessionService) Find(ctx context.Context, filter model.SessionFilter) ([]*model.Session, error) {
	return s.sessions.List(ctx, filter)
}

// FindOne получает слот по ID
func (s *SessionService) FindOne(ctx context.Context, id int64) (*model.Session, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session == nil {
		return nil, notFoundError(msgSessionNotFound)
	}

	return session, nil
}

// FindAvailable получает слоты, с которых можно начать запись на 2 слота подряд
func (s *SessionService) FindAvailable(ctx context.Context, filter model.AvailabilityFilter) ([]*model.Session, error) {
	version, cacheable := s.cache.Version(ctx)
	if cacheable {
		if cached, ok := s.cache.Get(ctx, version, filter); ok {
			return cached, nil
		}
	}

	free, err := s.sessions.ListFree(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list free sessions: %w", err)
	}

	available := ScanAvailable(free)
	if cacheable {
		s.cache.Set(ctx, version, filter, available)
	}

	return available, nil
}

// Destroy удаляет слот специалиста. Забронированность не проверяется.
func (s *SessionService) Destroy(ctx context.Context, professionalID, id int64) error {
	deleted, err := s.sessions.DeleteOwned(ctx, id, professionalID)
	if err != nil {
		return err
	}

	if !deleted {
		return forbiddenError(msgNotOwner)
	}

	s.cache.Invalidate(ctx)

	s.logger.Info("Session deleted",
		zap.Int64("session_id", id),
		zap.Int64("professional_id", professionalID),
	)

	return nil
}
