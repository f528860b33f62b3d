package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/rat-api/internal/domain"
)

// MemberProjectRepository реализует repository.MemberProjectRepository для PostgreSQL
type MemberProjectRepository struct {
	db *pgxpool.Pool
}

// NewMemberProjectRepository создает новый экземпляр MemberProjectRepository
func NewMemberProjectRepository(db *pgxpool.Pool) *MemberProjectRepository {
	return &MemberProjectRepository{db: db}
}

// Insert привязывает участника к проекту
func (r *MemberProjectRepository) Insert(ctx context.Context, memberID, projectID int, meta domain.WriteMeta) error {
	return insertMemberProject(ctx, r.db, memberID, projectID, meta)
}

func insertMemberProject(ctx context.Context, q querier, memberID, projectID int, meta domain.WriteMeta) error {
	query := `
		INSERT INTO member_project (member_id, project_id, operator_id, operation, operated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := q.Exec(ctx, query, memberID, projectID, meta.Operator, string(meta.Operation), meta.Timestamp)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrMemberProjectExists
		}
		if constraint, ok := foreignKeyConstraint(err); ok {
			if constraint == "member_project_member_id_fkey" {
				return domain.ErrMemberNotFound
			}
			return domain.ErrProjectNotFound
		}
		return err
	}

	return nil
}
