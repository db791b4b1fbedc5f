package identity

import (
	"context"
	"errors"
	"strings"

	"baby-tracker-go/internal/db"
	identitydomain "baby-tracker-go/internal/domain/identity"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, userID string) (*identitydomain.User, error) {
	var user identitydomain.User
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, identitydomain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*identitydomain.User, error) {
	var user identitydomain.User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, identitydomain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user *identitydomain.User) error {
	err := db.RetryOnce(ctx, func() error {
		return r.db.WithContext(ctx).Create(user).Error
	})
	if db.IsUniqueViolation(err) {
		return identitydomain.ErrEmailTaken
	}
	return err
}
