package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/rat-api/internal/domain"
)

// MemberRepository реализует repository.MemberRepository для PostgreSQL
type MemberRepository struct {
	db *pgxpool.Pool
}

// NewMemberRepository создает новый экземпляр MemberRepository
func NewMemberRepository(db *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{db: db}
}

// Insert создает участника и возвращает его ID.
// Если внешний ID уже занят, возвращает domain.ErrMemberExists
func (r *MemberRepository) Insert(ctx context.Context, externalUserID string, meta domain.WriteMeta) (int, error) {
	query := `
		INSERT INTO member (external_user_id, operator_id, operation, operated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int
	err := r.db.QueryRow(ctx, query, externalUserID, meta.Operator, string(meta.Operation), meta.Timestamp).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrMemberExists
		}
		return 0, err
	}

	return id, nil
}

// GetByExternalID получает участника по внешнему ID
func (r *MemberRepository) GetByExternalID(ctx context.Context, externalUserID string) (*domain.Member, error) {
	query := `
		SELECT id, external_user_id
		FROM member
		WHERE external_user_id = $1
	`

	return r.scanMember(r.db.QueryRow(ctx, query, externalUserID))
}

// GetByID получает участника по ID
func (r *MemberRepository) GetByID(ctx context.Context, memberID int) (*domain.Member, error) {
	query := `
		SELECT id, external_user_id
		FROM member
		WHERE id = $1
	`

	return r.scanMember(r.db.QueryRow(ctx, query, memberID))
}

func (r *MemberRepository) scanMember(row pgx.Row) (*domain.Member, error) {
	var member domain.Member
	if err := row.Scan(&member.ID, &member.ExternalUserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}
