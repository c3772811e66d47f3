package service

import (
	"time"

	"github.com/Freeeeeet/availability_api/internal/formatting"
	"github.com/Freeeeeet/availability_api/internal/model"
)

// GenerateSlots нарезает интервал [start, end) на последовательные 30-минутные слоты.
// Хвост короче 30 минут отбрасывается. Слоты не сохраняются.
func GenerateSlots(professionalID int64, start, end time.Time) ([]*model.Session, error) {
	if start.IsZero() {
		return nil, validationError("The start for the interval must be sent")
	}

	if end.IsZero() {
		return nil, validationError("The end for the interval must be sent")
	}

	if !end.After(start) {
		return nil, validationError("The end of the interval must be after the start")
	}

	if end.Sub(start) < model.MinInterval {
		return nil, validationError("The interval must be at least 1 hour")
	}

	count := int(end.Sub(start) / model.SlotDuration)
	slots := make([]*model.Session, 0, count)

	for cursor := start; end.Sub(cursor) >= model.SlotDuration; cursor = cursor.Add(model.SlotDuration) {
		slots = append(slots, &model.Session{
			ProfessionalID: professionalID,
			Start:          cursor,
			End:            cursor.Add(model.SlotDuration),
			Booked:         false,
			Customer:       nil,
		})
	}

	return slots, nil
}

// LatestConflict возвращает конфликтующий слот с наибольшим началом.
// Время "доступно с" берётся из его конца, а не из максимального конца среди конфликтов.
func LatestConflict(conflicts []*model.Session) *model.Session {
	var latest *model.Session
	for _, slot := range conflicts {
		if latest == nil || slot.Start.After(latest.Start) {
			latest = slot
		}
	}
	return latest
}

// overlapError строит ConflictError для непустого списка пересечений
func overlapError(conflicts []*model.Session, loc *time.Location) error {
	latest := LatestConflict(conflicts)
	return conflictError("There are sessions in this interval. Available from %s",
		formatting.FormatHourMark(latest.End, loc))
}

// ScanAvailable оставляет только слоты, за которыми ровно через 30 минут идёт
// следующий свободный слот того же специалиста. Вход отсортирован по началу.
func ScanAvailable(slots []*model.Session) []*model.Session {
	groups := make(map[int64][]*model.Session)
	order := make([]int64, 0)

	for _, slot := range slots {
		if _, ok := groups[slot.ProfessionalID]; !ok {
			order = append(order, slot.ProfessionalID)
		}
		groups[slot.ProfessionalID] = append(groups[slot.ProfessionalID], slot)
	}

	available := make([]*model.Session, 0)
	for _, professionalID := range order {
		group := groups[professionalID]
		// Для записи нужны минимум два слота подряд
		if len(group) < 2 {
			continue
		}

		for i := 0; i < len(group)-1; i++ {
			if group[i+1].Start.Sub(group[i].Start) == model.SlotDuration {
				available = append(available, group[i])
			}
		}
	}

	return available
}
