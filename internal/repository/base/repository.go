package base

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX общий интерфейс для *pgxpool.Pool и pgx.Tx
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository базовый репозиторий с общими методами
type Repository struct {
	db DBTX
}

// NewRepository создаёт новый базовый репозиторий
func NewRepository(db DBTX) *Repository {
	return &Repository{db: db}
}

// DB возвращает пул или транзакцию
func (r *Repository) DB() DBTX {
	return r.db
}

// QueryRow выполняет запрос и возвращает одну строку
func (r *Repository) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	return r.db.QueryRow(ctx, query, args...)
}

// Query выполняет запрос и возвращает множество строк
func (r *Repository) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	return r.db.Query(ctx, query, args...)
}

// ExecAffected выполняет команду и возвращает количество затронутых строк
func (r *Repository) ExecAffected(ctx context.Context, query string, args ...any) (int64, error) {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// IsNotFound проверяет является ли ошибка "строка не найдена"
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// Where собирает условия WHERE с позиционными параметрами
type Where struct {
	parts []string
	args  []any
}

// Add добавляет условие; "?" в выражении заменяется на следующий $N
func (w *Where) Add(expr string, value any) {
	w.args = append(w.args, value)
	w.parts = append(w.parts, strings.Replace(expr, "?", fmt.Sprintf("$%d", len(w.args)), 1))
}

// AddRaw добавляет условие без параметров
func (w *Where) AddRaw(expr string) {
	w.parts = append(w.parts, expr)
}

// Args возвращает накопленные параметры
func (w *Where) Args() []any {
	return w.args
}

// Next возвращает номер следующего параметра
func (w *Where) Next() int {
	return len(w.args) + 1
}

// Push добавляет параметр без условия (для LIMIT/OFFSET) и возвращает его плейсхолдер
func (w *Where) Push(value any) string {
	w.args = append(w.args, value)
	return fmt.Sprintf("$%d", len(w.args))
}

// String возвращает " WHERE ..." или пустую строку
func (w *Where) String() string {
	if len(w.parts) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.parts, " AND ")
}

// Paginate возвращает LIMIT/OFFSET для непустых значений
func (w *Where) Paginate(limit, offset int) string {
	var sb strings.Builder
	if limit > 0 {
		sb.WriteString(" LIMIT " + w.Push(limit))
	}
	if offset > 0 {
		sb.WriteString(" OFFSET " + w.Push(offset))
	}
	return sb.String()
}
