package service

import (
	"context"

	"github.com/Freeeeeet/availability_api/internal/model"
)

// TokenSigner выдаёт и проверяет mock-токены
type TokenSigner interface {
	Sign(professionalID int64) (string, error)
	Verify(token string) (int64, error)
}

// AvailabilityCache кеш результатов поиска доступных слотов
type AvailabilityCache interface {
	Version(ctx context.Context) (int64, bool)
	Get(ctx context.Context, version int64, filter model.AvailabilityFilter) ([]*model.Session, bool)
	Set(ctx context.Context, version int64, filter model.AvailabilityFilter, sessions []*model.Session)
	Invalidate(ctx context.Context)
}

// BookingNotifier уведомляет о новой записи
type BookingNotifier interface {
	NotifyBooked(ctx context.Context, sessions []*model.Session)
}

type noopCache struct{}

func (noopCache) Version(context.Context) (int64, bool) { return 0, false }
func (noopCache) Get(context.Context, int64, model.AvailabilityFilter) ([]*model.Session, bool) {
	return nil, false
}
func (noopCache) Set(context.Context, int64, model.AvailabilityFilter, []*model.Session) {}
func (noopCache) Invalidate(context.Context)                                             {}

type noopNotifier struct{}

func (noopNotifier) NotifyBooked(context.Context, []*model.Session) {}
