package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/aidar/rat-api/internal/domain"
	"github.com/aidar/rat-api/internal/repository"
)

// IdentityResolver maps an identity claim to an internal member
type IdentityResolver struct {
	memberRepo repository.MemberRepository
	operatorID int
}

// NewIdentityResolver creates a new IdentityResolver.
// operatorID is recorded as the audit operator of bootstrapped members
func NewIdentityResolver(memberRepo repository.MemberRepository, operatorID int) *IdentityResolver {
	return &IdentityResolver{
		memberRepo: memberRepo,
		operatorID: operatorID,
	}
}

// ResolveMember returns the member id for the claim, creating the member if absent (create-or-get).
//
// A missing claim yields domain.ErrNoAccess without touching storage.
// An unknown claim becomes a permanent member on first contact, even with no projects.
// When a concurrent request created the member first, the existing row is returned.
func (r *IdentityResolver) ResolveMember(ctx context.Context, claim string) (int, error) {
	claim = domain.NormalizeClaim(claim)
	if claim == "" || utf8.RuneCountInString(claim) > domain.MaxExternalUserIDLength {
		return 0, domain.ErrNoAccess
	}

	member, err := r.memberRepo.GetByExternalID(ctx, claim)
	if err == nil {
		return member.ID, nil
	}
	if !errors.Is(err, domain.ErrMemberNotFound) {
		return 0, fmt.Errorf("get member: %w", err)
	}

	id, err := r.memberRepo.Insert(ctx, claim, domain.NewInsertMeta(r.operatorID))
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, domain.ErrMemberExists) {
		return 0, fmt.Errorf("insert member: %w", err)
	}

	// Lost the unique constraint race, the member exists now
	member, err = r.memberRepo.GetByExternalID(ctx, claim)
	if err != nil {
		return 0, fmt.Errorf("get member after conflict: %w", err)
	}

	return member.ID, nil
}
