package invites

import (
	"context"
	"time"

	"baby-tracker-go/internal/domain/membership"
	"github.com/google/uuid"
)

const DefaultTTL = 7 * 24 * time.Hour

type Service struct {
	repo Repository
	ttl  time.Duration
	now  func() time.Time
}

func NewService(repo Repository, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		repo: repo,
		ttl:  ttl,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Issue creates a fresh invite for any member of the baby. Outstanding invites
// stay valid.
func (s *Service) Issue(ctx context.Context, userID, babyID string) (*Invite, error) {
	access, err := membership.Authorize(ctx, s.repo.Memberships(), userID, babyID)
	if err != nil {
		return nil, err
	}
	if _, err := access.Require(); err != nil {
		return nil, err
	}

	now := s.now()
	invite := Invite{
		ID:        uuid.NewString(),
		BabyID:    babyID,
		Token:     uuid.NewString(),
		CreatedBy: userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.CreateInvite(ctx, &invite); err != nil {
		return nil, err
	}
	return &invite, nil
}

// usable resolves a token to an invite that can still be accepted. Consumed
// invites are reported as unknown.
func usable(ctx context.Context, repo Repository, token string, now time.Time) (*Invite, error) {
	invite, err := repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	switch invite.Status(now) {
	case StatusConsumed:
		return nil, ErrInviteNotFound
	case StatusExpired:
		return nil, ErrInviteExpired
	}
	return invite, nil
}

func (s *Service) Inspect(ctx context.Context, token string) (*Preview, error) {
	invite, err := usable(ctx, s.repo, token, s.now())
	if err != nil {
		return nil, err
	}
	return s.repo.GetPreview(ctx, invite)
}

// Accept consumes the invite and grants the parent role in one transaction.
// Members keep their role and leave the invite untouched.
func (s *Service) Accept(ctx context.Context, token, userID string) (*Acceptance, error) {
	var result Acceptance
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		now := s.now()
		invite, err := usable(ctx, tx, token, now)
		if err != nil {
			return err
		}

		members := tx.Memberships()
		_, isMember, err := membership.RoleOf(ctx, members, userID, invite.BabyID)
		if err != nil {
			return err
		}
		if isMember {
			return membership.ErrAlreadyMember
		}

		consumed, err := tx.MarkUsed(ctx, invite.ID, userID, now)
		if err != nil {
			return err
		}
		if !consumed {
			return ErrInviteNotFound
		}

		if err := membership.Grant(ctx, members, userID, invite.BabyID, membership.RoleParent); err != nil {
			return err
		}

		baby, err := members.GetBaby(ctx, invite.BabyID)
		if err != nil {
			return err
		}
		result = Acceptance{BabyID: baby.ID, BabyName: baby.Name}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}
