package model

import "time"

const (
	// SlotDuration длительность одного слота
	SlotDuration = 30 * time.Minute
	// MinInterval минимальный интервал, из которого нарезаются слоты
	MinInterval = time.Hour
)

type Session struct {
	ID             int64     `json:"id"`
	ProfessionalID int64     `json:"professional"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	Booked         bool      `json:"booked"`
	Customer       *string   `json:"customer"` // указатель - может быть nil
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}
