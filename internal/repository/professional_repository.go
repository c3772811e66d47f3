package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/availability_api/internal/model"
	"github.com/Freeeeeet/availability_api/internal/repository/base"
)

// Токен не входит в выборки по умолчанию
const professionalColumns = `id, first_name, last_name, created_at, updated_at`

type ProfessionalRepository struct {
	*base.Repository
}

func NewProfessionalRepository(db base.DBTX) *ProfessionalRepository {
	return &ProfessionalRepository{Repository: base.NewRepository(db)}
}

// Create создаёт нового специалиста
func (r *ProfessionalRepository) Create(ctx context.Context, professional *model.Professional) error {
	query := `
		INSERT INTO professional (first_name, last_name)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := r.QueryRow(ctx, query, professional.FirstName, professional.LastName).
		Scan(&professional.ID, &professional.CreatedAt, &professional.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create professional: %w", err)
	}

	return nil
}

// SetToken сохраняет mock-токен специалиста
func (r *ProfessionalRepository) SetToken(ctx context.Context, id int64, token string) error {
	query := `UPDATE professional SET token = $1 WHERE id = $2`

	affected, err := r.ExecAffected(ctx, query, token, id)
	if err != nil {
		return fmt.Errorf("set professional token: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("professional not found")
	}

	return nil
}

// GetByID получает специалиста по ID
func (r *ProfessionalRepository) GetByID(ctx context.Context, id int64) (*model.Professional, error) {
	query := `SELECT ` + professionalColumns + ` FROM professional WHERE id = $1`

	var p model.Professional
	err := r.QueryRow(ctx, query, id).Scan(&p.ID, &p.FirstName, &p.LastName, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get professional by id: %w", err)
	}

	return &p, nil
}

// Exists проверяет существование специалиста
func (r *ProfessionalRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM professional WHERE id = $1)`

	var exists bool
	if err := r.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check professional exists: %w", err)
	}

	return exists, nil
}

// List получает специалистов по фильтру с пагинацией
func (r *ProfessionalRepository) List(ctx context.Context, filter model.ProfessionalFilter) ([]*model.Professional, error) {
	var where base.Where

	if filter.FirstName != nil {
		where.Add("first_name = ?", *filter.FirstName)
	}
	if filter.LastName != nil {
		where.Add("last_name = ?", *filter.LastName)
	}

	query := `SELECT ` + professionalColumns + ` FROM professional` + where.String() + ` ORDER BY id ASC`
	query += where.Paginate(filter.Page.Limit, filter.Page.Offset)

	rows, err := r.Query(ctx, query, where.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list professionals: %w", err)
	}
	defer rows.Close()

	professionals := make([]*model.Professional, 0)
	for rows.Next() {
		var p model.Professional
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan professional: %w", err)
		}
		professionals = append(professionals, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list professionals: %w", err)
	}

	return professionals, nil
}

// Update обновляет имя и фамилию; токен не трогается
func (r *ProfessionalRepository) Update(ctx context.Context, professional *model.Professional) (bool, error) {
	query := `
		UPDATE professional
		SET first_name = $1, last_name = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at
	`

	err := r.QueryRow(ctx, query, professional.FirstName, professional.LastName, professional.ID).
		Scan(&professional.UpdatedAt)
	if err != nil {
		if base.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("update professional: %w", err)
	}

	return true, nil
}

// Delete удаляет специалиста; его слоты остаются
func (r *ProfessionalRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.ExecAffected(ctx, `DELETE FROM professional WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete professional: %w", err)
	}
	return nil
}
