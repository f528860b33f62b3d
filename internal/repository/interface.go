package repository

import (
	"context"

	"github.com/aidar/rat-api/internal/domain"
)

// ProjectRepository определяет методы для работы с данными проектов
type ProjectRepository interface {
	// Insert создает проект и возвращает его ID
	Insert(ctx context.Context, name string, typeID int, meta domain.WriteMeta) (int, error)

	// InsertWithMember создает проект и привязывает к нему участника в одной транзакции
	InsertWithMember(ctx context.Context, name string, typeID, memberID int, meta domain.WriteMeta) (int, error)

	// GetByID получает проект вместе с его типом
	GetByID(ctx context.Context, projectID int) (*domain.ProjectDetail, error)

	// ListByMember возвращает проекты участника, упорядоченные по ID
	ListByMember(ctx context.Context, memberID int) ([]domain.ProjectSummary, error)
}

// ProjectTypeRepository определяет методы для чтения справочника типов проектов
type ProjectTypeRepository interface {
	// GetIDByName возвращает ID типа проекта по названию
	GetIDByName(ctx context.Context, name string) (int, error)

	// List возвращает все типы проектов
	List(ctx context.Context) ([]domain.ProjectType, error)
}

// MemberRepository определяет методы для работы с данными участников
type MemberRepository interface {
	// Insert создает участника и возвращает его ID
	Insert(ctx context.Context, externalUserID string, meta domain.WriteMeta) (int, error)

	// GetByExternalID получает участника по внешнему ID
	GetByExternalID(ctx context.Context, externalUserID string) (*domain.Member, error)

	// GetByID получает участника по ID
	GetByID(ctx context.Context, memberID int) (*domain.Member, error)
}

// MemberProjectRepository определяет методы для работы со связями участник-проект
type MemberProjectRepository interface {
	// Insert привязывает участника к проекту
	Insert(ctx context.Context, memberID, projectID int, meta domain.WriteMeta) error
}
