package repository

import (
	"context"
	"time"

	"github.com/Freeeeeet/availability_api/internal/model"
)

// SessionStore хранилище слотов
type SessionStore interface {
	CreateBatch(ctx context.Context, sessions []*model.Session) error
	GetByID(ctx context.Context, id int64) (*model.Session, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*model.Session, error)
	FindOverlapping(ctx context.Context, professionalID int64, start, end time.Time) ([]*model.Session, error)
	FindFreeAtForUpdate(ctx context.Context, professionalID int64, start time.Time) (*model.Session, error)
	ListFree(ctx context.Context, filter model.AvailabilityFilter) ([]*model.Session, error)
	List(ctx context.Context, filter model.SessionFilter) ([]*model.Session, error)
	Book(ctx context.Context, ids []int64, customer string) ([]*model.Session, error)
	DeleteOwned(ctx context.Context, id, professionalID int64) (bool, error)
	LockProfessional(ctx context.Context, professionalID int64) error
}

// ProfessionalStore хранилище специалистов
type ProfessionalStore interface {
	Create(ctx context.Context, professional *model.Professional) error
	SetToken(ctx context.Context, id int64, token string) error
	GetByID(ctx context.Context, id int64) (*model.Professional, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, filter model.ProfessionalFilter) ([]*model.Professional, error)
	Update(ctx context.Context, professional *model.Professional) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// TxRepositories репозитории, работающие внутри одной транзакции
type TxRepositories struct {
	Sessions      SessionStore
	Professionals ProfessionalStore
}

// TxManager выполняет fn в транзакции; ошибка fn откатывает её
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}
