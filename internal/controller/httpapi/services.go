package httpapi

import (
	"context"
	"time"

	"github.com/Freeeeeet/availability_api/internal/model"
	"github.com/Freeeeeet/availability_api/internal/service"
)

// Интерфейсы сервисов, которые нужны обработчикам

type ProfessionalService interface {
	Create(ctx context.Context, input *service.ProfessionalInput) (*model.Professional, error)
	Find(ctx context.Context, filter model.ProfessionalFilter) ([]*model.Professional, error)
	FindOne(ctx context.Context, id int64) (*model.Professional, error)
	Update(ctx context.Context, id int64, input *service.ProfessionalInput) (*model.Professional, error)
	Destroy(ctx context.Context, id int64) error
}

type SessionService interface {
	Create(ctx context.Context, professionalID int64, start, end time.Time) ([]*model.Session, error)
	Find(ctx context.Context, filter model.SessionFilter) ([]*model.Session, error)
	FindOne(ctx context.Context, id int64) (*model.Session, error)
	FindAvailable(ctx context.Context, filter model.AvailabilityFilter) ([]*model.Session, error)
	Destroy(ctx context.Context, professionalID, id int64) error
}

type BookingService interface {
	Schedule(ctx context.Context, sessionID int64, customer string) ([]*model.Session, error)
}

type AuthService interface {
	Login(ctx context.Context, professionalID *int64) (string, error)
	Authenticate(ctx context.Context, token string) (int64, error)
}
