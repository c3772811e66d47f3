package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Freeeeeet/availability_api/internal/model"
	"github.com/Freeeeeet/availability_api/internal/repository"
)

type BookingService struct {
	tx       repository.TxManager
	cache    AvailabilityCache
	notifier BookingNotifier
	logger   *zap.Logger
}

func NewBookingService(
	tx repository.TxManager,
	cache AvailabilityCache,
	notifier BookingNotifier,
	logger *zap.Logger,
) *BookingService {
	if cache == nil {
		cache = noopCache{}
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}

	return &BookingService{
		tx:       tx,
		cache:    cache,
		notifier: notifier,
		logger:   logger,
	}
}

// Schedule бронирует слот и следующий за ним слот того же специалиста для клиента.
// Оба слота блокируются в транзакции и обновляются вместе либо не обновляются вовсе.
func (s *BookingService) Schedule(ctx context.Context, sessionID int64, customer string) ([]*model.Session, error) {
	if strings.TrimSpace(customer) == "" {
		return nil, validationError(msgCustomerRequired)
	}

	var booked []*model.Session

	err := s.tx.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		period1, err := repos.Sessions.GetByIDForUpdate(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}

		if period1 == nil {
			return notFoundError(msgSessionNotFound)
		}

		if period1.Booked {
			return newError(msgSessionNotAvailable, ErrConflict, ErrForbidden)
		}

		expectedStart := period1.Start.Add(model.SlotDuration)
		period2, err := repos.Sessions.FindFreeAtForUpdate(ctx, period1.ProfessionalID, expectedStart)
		if err != nil {
			return fmt.Errorf("get paired session: %w", err)
		}

		if period2 == nil {
			return conflictError(msgSessionNotAvailable)
		}

		booked, err = repos.Sessions.Book(ctx, []int64{period1.ID, period2.ID}, customer)
		if err != nil {
			return err
		}

		// Кто-то успел занять один из слотов, транзакция откатится
		if len(booked) != 2 {
			return conflictError(msgSessionNotAvailable)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(booked, func(i, j int) bool {
		return booked[i].Start.Before(booked[j].Start)
	})

	s.cache.Invalidate(ctx)
	s.notifier.NotifyBooked(ctx, booked)

	s.logger.Info("Sessions booked",
		zap.Int64("session_id", booked[0].ID),
		zap.Int64("paired_session_id", booked[1].ID),
		zap.Int64("professional_id", booked[0].ProfessionalID),
		zap.String("customer", customer),
	)

	return booked, nil
}
