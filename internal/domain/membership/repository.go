package membership

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	GetMembership(ctx context.Context, babyID, userID string) (*Membership, error)
	AddMembership(ctx context.Context, member *Membership) error
	DeleteMembership(ctx context.Context, babyID, userID string) (bool, error)
	ListMembers(ctx context.Context, babyID string) ([]Member, error)

	CreateBaby(ctx context.Context, baby *Baby) error
	GetBaby(ctx context.Context, babyID string) (*Baby, error)
	UpdateBaby(ctx context.Context, baby *Baby) error
	ListBabiesForUser(ctx context.Context, userID string) ([]BabySummary, error)

	// DeleteBabyCascade removes the baby with its entries, memberships and
	// invites. Callers run it inside Transaction.
	DeleteBabyCascade(ctx context.Context, babyID string) error
}
