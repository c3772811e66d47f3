package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Freeeeeet/availability_api/internal/model"
	"github.com/Freeeeeet/availability_api/internal/service"
)

// Форматы без смещения читаются в опорной таймзоне
var localLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// parseTime разбирает время из запроса; пустая строка даёт нулевое время
func parseTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid time %q", value)
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, service.ValidationError("Invalid id")
	}
	return id, nil
}

// lookupID ID из пути для поиска; неразборчивый ID означает отсутствующий объект
func lookupID(c *gin.Context, missing func() error) (int64, error) {
	id, err := pathID(c)
	if err != nil {
		return 0, missing()
	}
	return id, nil
}

func queryInt64(c *gin.Context, key string) (*int64, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, invalidQuery(key)
	}
	return &v, nil
}

func queryBool(c *gin.Context, key string) (*bool, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, invalidQuery(key)
	}
	return &v, nil
}

func queryString(c *gin.Context, key string) *string {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil
	}
	return &raw
}

func queryPage(c *gin.Context) (model.Page, error) {
	var page model.Page

	for _, p := range []struct {
		key  string
		dest *int
	}{
		{"limit", &page.Limit},
		{"skip", &page.Offset},
	} {
		raw, ok := c.GetQuery(p.key)
		if !ok || raw == "" {
			continue
		}

		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return model.Page{}, invalidQuery(p.key)
		}
		*p.dest = v
	}

	return page, nil
}

// queryRange применяется только если переданы обе границы
func queryRange(c *gin.Context, loc *time.Location) (model.TimeRange, error) {
	from, err := parseTime(c.Query("start"), loc)
	if err != nil {
		return model.TimeRange{}, invalidQuery("start")
	}

	to, err := parseTime(c.Query("end"), loc)
	if err != nil {
		return model.TimeRange{}, invalidQuery("end")
	}

	r := model.TimeRange{From: from, To: to}
	if !r.IsSet() {
		return model.TimeRange{}, nil
	}
	return r, nil
}

func invalidQuery(key string) error {
	return service.ValidationError(fmt.Sprintf("Invalid value for %q", key))
}

// parseProfessionalRef принимает ID числом или строкой с числом
func parseProfessionalRef(raw json.RawMessage) *int64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(raw, &number); err == nil {
		if id, err := number.Int64(); err == nil {
			return &id
		}
		return nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if id, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64); err == nil {
			return &id
		}
	}

	return nil
}

// bindBody разбирает JSON тело; пустое тело оставляет поля неотправленными
func bindBody(c *gin.Context, dest any) error {
	if c.Request.Body == nil {
		return nil
	}

	if err := c.ShouldBindJSON(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return service.ValidationError("Invalid JSON body")
	}
	return nil
}
