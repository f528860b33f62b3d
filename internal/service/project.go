package service

import (
	"context"

	"github.com/aidar/rat-api/internal/domain"
	"github.com/aidar/rat-api/internal/repository"
)

// ProjectService handles project queries and project creation
type ProjectService struct {
	projectRepo     repository.ProjectRepository
	projectTypeRepo repository.ProjectTypeRepository
	memberRepo      repository.MemberRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projectRepo repository.ProjectRepository,
	projectTypeRepo repository.ProjectTypeRepository,
	memberRepo repository.MemberRepository,
) *ProjectService {
	return &ProjectService{
		projectRepo:     projectRepo,
		projectTypeRepo: projectTypeRepo,
		memberRepo:      memberRepo,
	}
}

// GetProjectByID returns the project with its type.
// Non-positive ids fail with ErrInvalidProjectID before any storage call
func (s *ProjectService) GetProjectByID(ctx context.Context, projectID int) (*domain.ProjectDetail, error) {
	if projectID <= 0 {
		return nil, domain.ErrInvalidProjectID
	}

	return s.projectRepo.GetByID(ctx, projectID)
}

// ListProjectsForMember returns the projects the member is linked to.
// A member without projects gets an empty list, not an error
func (s *ProjectService) ListProjectsForMember(ctx context.Context, memberID int) (*domain.ProjectStats, error) {
	if memberID <= 0 {
		return nil, domain.ErrMemberNotFound
	}

	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	projects, err := s.projectRepo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	// Return empty array instead of nil
	if projects == nil {
		projects = []domain.ProjectSummary{}
	}

	return &domain.ProjectStats{
		UserID:         member.ID,
		ExternalUserID: member.ExternalUserID,
		ProjectStats:   projects,
	}, nil
}

// CreateProject creates a project and makes the member its first participant.
// The type is taken from TypeID, or looked up by TypeName when TypeID is zero
func (s *ProjectService) CreateProject(ctx context.Context, memberID int, input domain.NewProject) (*domain.ProjectDetail, error) {
	name, err := domain.ValidateProjectName(input.Name)
	if err != nil {
		return nil, err
	}

	typeID := input.TypeID
	if typeID == 0 && input.TypeName != "" {
		typeID, err = s.projectTypeRepo.GetIDByName(ctx, input.TypeName)
		if err != nil {
			return nil, err
		}
	}
	if typeID <= 0 {
		return nil, domain.ErrInvalidProjectType
	}

	projectID, err := s.projectRepo.InsertWithMember(ctx, name, typeID, memberID, domain.NewInsertMeta(memberID))
	if err != nil {
		return nil, err
	}

	// Return the created project
	return s.projectRepo.GetByID(ctx, projectID)
}

// ListProjectTypes returns the project type catalog
func (s *ProjectService) ListProjectTypes(ctx context.Context) ([]domain.ProjectType, error) {
	return s.projectTypeRepo.List(ctx)
}
