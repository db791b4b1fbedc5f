package membership

import (
	"context"
	"errors"
)

// RoleOf looks up the caller's role without side effects.
func RoleOf(ctx context.Context, repo Repository, userID, babyID string) (Role, bool, error) {
	member, err := repo.GetMembership(ctx, babyID, userID)
	if errors.Is(err, ErrMembershipNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return member.Role, true, nil
}

func Authorize(ctx context.Context, repo Repository, userID, babyID string) (Access, error) {
	role, ok, err := RoleOf(ctx, repo, userID, babyID)
	if err != nil {
		return Access{}, err
	}
	if !ok {
		return Access{}, nil
	}
	return Access{Allowed: true, Role: role}, nil
}

// Require maps a denied access to ErrBabyNotFound so non-members cannot tell a
// foreign baby from a missing one.
func (a Access) Require() (Role, error) {
	if !a.Allowed {
		return "", ErrBabyNotFound
	}
	return a.Role, nil
}

func (a Access) RequireOwner() error {
	role, err := a.Require()
	if err != nil {
		return err
	}
	if role != RoleOwner {
		return ErrNotOwner
	}
	return nil
}

// Grant adds a parent membership. An existing membership is a conflict and is
// never overwritten. Owners are only created together with their baby.
func Grant(ctx context.Context, repo Repository, userID, babyID string, role Role) error {
	if role != RoleParent {
		return ErrInvalidRole
	}

	_, exists, err := RoleOf(ctx, repo, userID, babyID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyMember
	}

	return repo.AddMembership(ctx, &Membership{
		BabyID: babyID,
		UserID: userID,
		Role:   role,
	})
}
