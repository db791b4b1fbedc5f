package invites

import (
	"context"
	"errors"
	"time"

	"baby-tracker-go/internal/db"
	invitesdomain "baby-tracker-go/internal/domain/invites"
	membershipdomain "baby-tracker-go/internal/domain/membership"
	membershiprepo "baby-tracker-go/internal/repository/postgres/membership"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(invitesdomain.Repository) error) error {
	return db.RetryOnce(ctx, func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(&PostgresRepository{db: tx})
		})
	})
}

func (r *PostgresRepository) Memberships() membershipdomain.Repository {
	return membershiprepo.NewPostgres(r.db)
}

func (r *PostgresRepository) CreateInvite(ctx context.Context, invite *invitesdomain.Invite) error {
	return db.RetryOnce(ctx, func() error {
		return r.db.WithContext(ctx).Create(invite).Error
	})
}

func (r *PostgresRepository) GetByToken(ctx context.Context, token string) (*invitesdomain.Invite, error) {
	var invite invitesdomain.Invite
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&invite).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invitesdomain.ErrInviteNotFound
		}
		return nil, err
	}
	return &invite, nil
}

func (r *PostgresRepository) GetPreview(ctx context.Context, invite *invitesdomain.Invite) (*invitesdomain.Preview, error) {
	type previewRow struct {
		BabyName      string    `gorm:"column:baby_name"`
		BabyBirthDate time.Time `gorm:"column:baby_birth_date"`
		InviterName   string    `gorm:"column:inviter_name"`
	}

	var row previewRow
	result := r.db.WithContext(ctx).
		Table("invites").
		Select("babies.name as baby_name, babies.birth_date as baby_birth_date, coalesce(users.name, '') as inviter_name").
		Joins("join babies on babies.id = invites.baby_id").
		Joins("left join users on users.id = invites.created_by").
		Where("invites.id = ?", invite.ID).
		Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, invitesdomain.ErrInviteNotFound
	}

	return &invitesdomain.Preview{
		BabyName:      row.BabyName,
		BabyBirthDate: row.BabyBirthDate,
		InviterName:   row.InviterName,
		ExpiresAt:     invite.ExpiresAt,
	}, nil
}

func (r *PostgresRepository) MarkUsed(ctx context.Context, inviteID, userID string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&invitesdomain.Invite{}).
		Where("id = ? AND used_at IS NULL", inviteID).
		Updates(map[string]interface{}{
			"used_at": at,
			"used_by": userID,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
