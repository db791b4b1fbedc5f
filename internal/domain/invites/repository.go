package invites

import (
	"context"
	"time"

	"baby-tracker-go/internal/domain/membership"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	CreateInvite(ctx context.Context, invite *Invite) error
	GetByToken(ctx context.Context, token string) (*Invite, error)
	GetPreview(ctx context.Context, invite *Invite) (*Preview, error)

	// MarkUsed consumes the invite only if it is still unused and reports
	// whether this call did it.
	MarkUsed(ctx context.Context, inviteID, userID string, at time.Time) (bool, error)

	// Memberships is bound to the same transaction as the receiver.
	Memberships() membership.Repository
}
