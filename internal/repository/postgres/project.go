package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/rat-api/internal/domain"
)

// querier общий интерфейс pgxpool.Pool и pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ProjectRepository реализует repository.ProjectRepository для PostgreSQL
type ProjectRepository struct {
	db *pgxpool.Pool
}

// NewProjectRepository создает новый экземпляр ProjectRepository
func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Insert создает проект и возвращает его ID
func (r *ProjectRepository) Insert(ctx context.Context, name string, typeID int, meta domain.WriteMeta) (int, error) {
	return insertProject(ctx, r.db, name, typeID, meta)
}

// InsertWithMember создает проект и привязывает к нему участника в одной транзакции
func (r *ProjectRepository) InsertWithMember(ctx context.Context, name string, typeID, memberID int, meta domain.WriteMeta) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // после Commit возвращает ErrTxClosed
	}()

	projectID, err := insertProject(ctx, tx, name, typeID, meta)
	if err != nil {
		return 0, err
	}

	if err := insertMemberProject(ctx, tx, memberID, projectID, meta); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return projectID, nil
}

// GetByID получает проект вместе с его типом
func (r *ProjectRepository) GetByID(ctx context.Context, projectID int) (*domain.ProjectDetail, error) {
	query := `
		SELECT p.id, p.name, pt.id, pt.name
		FROM project p
		INNER JOIN project_type pt ON pt.id = p.project_type_id
		WHERE p.id = $1
	`

	var project domain.ProjectDetail
	err := r.db.QueryRow(ctx, query, projectID).Scan(
		&project.ID,
		&project.Name,
		&project.TypeID,
		&project.TypeName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}

	return &project, nil
}

// ListByMember возвращает проекты участника, упорядоченные по ID
func (r *ProjectRepository) ListByMember(ctx context.Context, memberID int) ([]domain.ProjectSummary, error) {
	query := `
		SELECT p.id, p.name
		FROM project p
		INNER JOIN member_project mp ON mp.project_id = p.id
		WHERE mp.member_id = $1
		ORDER BY p.id
	`

	rows, err := r.db.Query(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []domain.ProjectSummary{}
	for rows.Next() {
		var project domain.ProjectSummary
		if err := rows.Scan(&project.ID, &project.Name); err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

func insertProject(ctx context.Context, q querier, name string, typeID int, meta domain.WriteMeta) (int, error) {
	query := `
		INSERT INTO project (name, project_type_id, operator_id, operation, operated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int
	err := q.QueryRow(ctx, query, name, typeID, meta.Operator, string(meta.Operation), meta.Timestamp).Scan(&id)
	if err != nil {
		if _, ok := foreignKeyConstraint(err); ok {
			return 0, domain.ErrProjectTypeNotFound
		}
		return 0, err
	}

	return id, nil
}
