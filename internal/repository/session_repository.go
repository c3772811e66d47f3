package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Freeeeeet/availability_api/internal/model"
	"github.com/Freeeeeet/availability_api/internal/repository/base"
)

const sessionColumns = `id, professional_id, start_time, end_time, booked, customer, created_at, updated_at`

type SessionRepository struct {
	*base.Repository
}

func NewSessionRepository(db base.DBTX) *SessionRepository {
	return &SessionRepository{Repository: base.NewRepository(db)}
}

// CreateBatch вставляет все слоты одним запросом
func (r *SessionRepository) CreateBatch(ctx context.Context, sessions []*model.Session) error {
	if len(sessions) == 0 {
		return nil
	}

	values := make([]string, 0, len(sessions))
	args := make([]any, 0, len(sessions)*4)
	for i, s := range sessions {
		n := i * 4
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4))
		args = append(args, s.ProfessionalID, s.Start, s.End, s.Booked)
	}

	query := `
		INSERT INTO session (professional_id, start_time, end_time, booked)
		VALUES ` + strings.Join(values, ", ") + `
		RETURNING id, created_at, updated_at
	`

	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("create sessions: %w", err)
	}
	defer rows.Close()

	// Postgres возвращает RETURNING в порядке VALUES
	i := 0
	for rows.Next() {
		if i >= len(sessions) {
			return fmt.Errorf("create sessions: unexpected extra row")
		}
		if err := rows.Scan(&sessions[i].ID, &sessions[i].CreatedAt, &sessions[i].UpdatedAt); err != nil {
			return fmt.Errorf("scan created session: %w", err)
		}
		i++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("create sessions: %w", err)
	}

	return nil
}

// GetByID получает слот по ID
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM session WHERE id = $1`
	return r.getOne(ctx, "get session by id", query, id)
}

// GetByIDForUpdate получает слот по ID и блокирует строку до конца транзакции
func (r *SessionRepository) GetByIDForUpdate(ctx context.Context, id int64) (*model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM session WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, "get session for update", query, id)
}

// FindOverlapping находит слоты специалиста, у которых начало или конец попадает в [start, end]
func (r *SessionRepository) FindOverlapping(ctx context.Context, professionalID int64, start, end time.Time) ([]*model.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM session
		WHERE professional_id = $1
		  AND (start_time BETWEEN $2 AND $3 OR end_time BETWEEN $2 AND $3)
		ORDER BY start_time DESC
	`

	return r.getMany(ctx, "find overlapping sessions", query, professionalID, start, end)
}

// FindFreeAtForUpdate находит свободный слот специалиста, начинающийся в start, и блокирует его
func (r *SessionRepository) FindFreeAtForUpdate(ctx context.Context, professionalID int64, start time.Time) (*model.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM session
		WHERE professional_id = $1
		  AND start_time = $2
		  AND booked = FALSE
		LIMIT 1
		FOR UPDATE
	`

	return r.getOne(ctx, "find free session", query, professionalID, start)
}

// ListFree получает свободные слоты по возрастанию начала
func (r *SessionRepository) ListFree(ctx context.Context, filter model.AvailabilityFilter) ([]*model.Session, error) {
	var where base.Where
	where.AddRaw("booked = FALSE")

	if filter.ProfessionalID != nil {
		where.Add("professional_id = ?", *filter.ProfessionalID)
	}
	if filter.Range.IsSet() {
		where.Add("start_time >= ?", filter.Range.From)
		where.Add("end_time <= ?", filter.Range.To)
	}

	query := `SELECT ` + sessionColumns + ` FROM session` + where.String() + ` ORDER BY start_time ASC`

	return r.getMany(ctx, "list free sessions", query, where.Args()...)
}

// List получает слоты по фильтру с пагинацией
func (r *SessionRepository) List(ctx context.Context, filter model.SessionFilter) ([]*model.Session, error) {
	var where base.Where

	if filter.ProfessionalID != nil {
		where.Add("professional_id = ?", *filter.ProfessionalID)
	}
	if filter.Booked != nil {
		where.Add("booked = ?", *filter.Booked)
	}
	if filter.Customer != nil {
		where.Add("customer = ?", *filter.Customer)
	}
	if filter.Range.IsSet() {
		where.Add("start_time >= ?", filter.Range.From)
		where.Add("end_time <= ?", filter.Range.To)
	}

	query := `SELECT ` + sessionColumns + ` FROM session` + where.String() + ` ORDER BY id ASC`
	query += where.Paginate(filter.Page.Limit, filter.Page.Offset)

	return r.getMany(ctx, "list sessions", query, where.Args()...)
}

// Book бронирует свободные слоты для клиента и возвращает обновлённые
func (r *SessionRepository) Book(ctx context.Context, ids []int64, customer string) ([]*model.Session, error) {
	query := `
		UPDATE session
		SET booked = TRUE, customer = $1, updated_at = NOW()
		WHERE id = ANY($2) AND booked = FALSE
		RETURNING ` + sessionColumns

	sessions, err := r.getMany(ctx, "book sessions", query, customer, ids)
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

// DeleteOwned удаляет слот, только если он принадлежит специалисту
func (r *SessionRepository) DeleteOwned(ctx context.Context, id, professionalID int64) (bool, error) {
	query := `DELETE FROM session WHERE id = $1 AND professional_id = $2`

	affected, err := r.ExecAffected(ctx, query, id, professionalID)
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}

	return affected > 0, nil
}

// LockProfessional берёт advisory lock специалиста до конца транзакции
func (r *SessionRepository) LockProfessional(ctx context.Context, professionalID int64) error {
	if _, err := r.DB().Exec(ctx, "SELECT pg_advisory_xact_lock($1)", professionalID); err != nil {
		return fmt.Errorf("lock professional %d: %w", professionalID, err)
	}
	return nil
}

func (r *SessionRepository) getOne(ctx context.Context, op, query string, args ...any) (*model.Session, error) {
	session, err := scanSession(r.QueryRow(ctx, query, args...))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return session, nil
}

func (r *SessionRepository) getMany(ctx context.Context, op, query string, args ...any) ([]*model.Session, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	sessions := make([]*model.Session, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sessions, nil
}

func scanSession(row pgx.Row) (*model.Session, error) {
	var session model.Session
	err := row.Scan(
		&session.ID,
		&session.ProfessionalID,
		&session.Start,
		&session.End,
		&session.Booked,
		&session.Customer,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}
