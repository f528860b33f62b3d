package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/rat-api/internal/domain"
)

// ProjectTypeRepository реализует repository.ProjectTypeRepository для PostgreSQL
type ProjectTypeRepository struct {
	db *pgxpool.Pool
}

// NewProjectTypeRepository создает новый экземпляр ProjectTypeRepository
func NewProjectTypeRepository(db *pgxpool.Pool) *ProjectTypeRepository {
	return &ProjectTypeRepository{db: db}
}

// GetIDByName возвращает ID типа проекта по названию
func (r *ProjectTypeRepository) GetIDByName(ctx context.Context, name string) (int, error) {
	query := `SELECT id FROM project_type WHERE name = $1`

	var id int
	err := r.db.QueryRow(ctx, query, name).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrProjectTypeNotFound
		}
		return 0, err
	}

	return id, nil
}

// List возвращает все типы проектов
func (r *ProjectTypeRepository) List(ctx context.Context) ([]domain.ProjectType, error) {
	query := `SELECT id, name FROM project_type ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := []domain.ProjectType{}
	for rows.Next() {
		var pt domain.ProjectType
		if err := rows.Scan(&pt.ID, &pt.Name); err != nil {
			return nil, err
		}
		types = append(types, pt)
	}

	return types, rows.Err()
}
