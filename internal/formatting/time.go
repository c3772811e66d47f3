package formatting

import (
	"fmt"
	"time"
)

// FormatDateTime форматирует дату и время
func FormatDateTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("02.01.2006 15:04")
}

// FormatHourMark форматирует время как 09h30
func FormatHourMark(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("15h04")
}

// FormatTimeRange форматирует диапазон времени
func FormatTimeRange(start, end time.Time, loc *time.Location) string {
	return fmt.Sprintf("%s-%s", start.In(loc).Format("15:04"), end.In(loc).Format("15:04"))
}
