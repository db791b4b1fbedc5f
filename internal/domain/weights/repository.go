package weights

import (
	"context"

	"baby-tracker-go/internal/domain/membership"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	// ListEntries returns the baby's entries by measurement date, oldest first.
	ListEntries(ctx context.Context, babyID string) ([]EntryRecord, error)
	GetEntry(ctx context.Context, babyID, entryID string) (*Entry, error)
	CreateEntry(ctx context.Context, entry *Entry) error
	UpdateEntry(ctx context.Context, entry *Entry) error
	DeleteEntry(ctx context.Context, babyID, entryID string) (bool, error)
}

// Gate decides whether a user may touch a baby's entries.
type Gate interface {
	RequireAnyRole(ctx context.Context, userID, babyID string) (membership.Role, error)
}
