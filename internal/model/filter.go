package model

import "time"

// TimeRange диапазон [From, To], применяется только если заданы обе границы
type TimeRange struct {
	From time.Time
	To   time.Time
}

// IsSet проверяет что обе границы заданы
func (r TimeRange) IsSet() bool {
	return !r.From.IsZero() && !r.To.IsZero()
}

// Page offset/limit пагинация
type Page struct {
	Limit  int
	Offset int
}

// SessionFilter фильтр для списка слотов
type SessionFilter struct {
	ProfessionalID *int64
	Booked         *bool
	Customer       *string
	Range          TimeRange
	Page           Page
}

// AvailabilityFilter фильтр для поиска доступных слотов
type AvailabilityFilter struct {
	ProfessionalID *int64
	Range          TimeRange
}

// ProfessionalFilter фильтр для списка специалистов
type ProfessionalFilter struct {
	FirstName *string
	LastName  *string
	Page      Page
}
