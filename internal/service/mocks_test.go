package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/aidar/rat-api/internal/domain"
)

type mockProjectRepo struct {
	mock.Mock
}

func (m *mockProjectRepo) Insert(ctx context.Context, name string, typeID int, meta domain.WriteMeta) (int, error) {
	args := m.Called(ctx, name, typeID, meta)
	return args.Int(0), args.Error(1)
}

func (m *mockProjectRepo) InsertWithMember(ctx context.Context, name string, typeID, memberID int, meta domain.WriteMeta) (int, error) {
	args := m.Called(ctx, name, typeID, memberID, meta)
	return args.Int(0), args.Error(1)
}

func (m *mockProjectRepo) GetByID(ctx context.Context, projectID int) (*domain.ProjectDetail, error) {
	args := m.Called(ctx, projectID)
	project, _ := args.Get(0).(*domain.ProjectDetail)
	return project, args.Error(1)
}

func (m *mockProjectRepo) ListByMember(ctx context.Context, memberID int) ([]domain.ProjectSummary, error) {
	args := m.Called(ctx, memberID)
	projects, _ := args.Get(0).([]domain.ProjectSummary)
	return projects, args.Error(1)
}

type mockProjectTypeRepo struct {
	mock.Mock
}

func (m *mockProjectTypeRepo) GetIDByName(ctx context.Context, name string) (int, error) {
	args := m.Called(ctx, name)
	return args.Int(0), args.Error(1)
}

func (m *mockProjectTypeRepo) List(ctx context.Context) ([]domain.ProjectType, error) {
	args := m.Called(ctx)
	types, _ := args.Get(0).([]domain.ProjectType)
	return types, args.Error(1)
}

type mockMemberRepo struct {
	mock.Mock
}

func (m *mockMemberRepo) Insert(ctx context.Context, externalUserID string, meta domain.WriteMeta) (int, error) {
	args := m.Called(ctx, externalUserID, meta)
	return args.Int(0), args.Error(1)
}

func (m *mockMemberRepo) GetByExternalID(ctx context.Context, externalUserID string) (*domain.Member, error) {
	args := m.Called(ctx, externalUserID)
	member, _ := args.Get(0).(*domain.Member)
	return member, args.Error(1)
}

func (m *mockMemberRepo) GetByID(ctx context.Context, memberID int) (*domain.Member, error) {
	args := m.Called(ctx, memberID)
	member, _ := args.Get(0).(*domain.Member)
	return member, args.Error(1)
}

// insertMeta сопоставляет аудит-метаданные вставки от имени operator
func insertMeta(operator int) interface{} {
	return mock.MatchedBy(func(meta domain.WriteMeta) bool {
		return meta.Operator == operator && meta.Operation == domain.OperationInsert && !meta.Timestamp.IsZero()
	})
}
