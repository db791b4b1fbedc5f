package membership

import (
	"context"
	"errors"
	"time"

	"baby-tracker-go/internal/db"
	invitesdomain "baby-tracker-go/internal/domain/invites"
	membershipdomain "baby-tracker-go/internal/domain/membership"
	weightsdomain "baby-tracker-go/internal/domain/weights"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(membershipdomain.Repository) error) error {
	return db.RetryOnce(ctx, func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(&PostgresRepository{db: tx})
		})
	})
}

func (r *PostgresRepository) GetMembership(ctx context.Context, babyID, userID string) (*membershipdomain.Membership, error) {
	var member membershipdomain.Membership
	if err := r.db.WithContext(ctx).Where("baby_id = ? AND user_id = ?", babyID, userID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, membershipdomain.ErrMembershipNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *PostgresRepository) AddMembership(ctx context.Context, member *membershipdomain.Membership) error {
	err := r.db.WithContext(ctx).Create(member).Error
	if db.IsUniqueViolation(err) {
		return membershipdomain.ErrAlreadyMember
	}
	return err
}

func (r *PostgresRepository) DeleteMembership(ctx context.Context, babyID, userID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("baby_id = ? AND user_id = ?", babyID, userID).
		Delete(&membershipdomain.Membership{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) ListMembers(ctx context.Context, babyID string) ([]membershipdomain.Member, error) {
	type memberRow struct {
		UserID   string    `gorm:"column:user_id"`
		Name     string    `gorm:"column:name"`
		Email    string    `gorm:"column:email"`
		Role     string    `gorm:"column:role"`
		JoinedAt time.Time `gorm:"column:joined_at"`
	}

	var rows []memberRow
	if err := r.db.WithContext(ctx).
		Table("memberships").
		Select("memberships.user_id, users.name, users.email, memberships.role, memberships.joined_at").
		Joins("join users on users.id = memberships.user_id").
		Where("memberships.baby_id = ?", babyID).
		Order("memberships.joined_at asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	members := make([]membershipdomain.Member, 0, len(rows))
	for _, row := range rows {
		members = append(members, membershipdomain.Member{
			UserID:   row.UserID,
			Name:     row.Name,
			Email:    row.Email,
			Role:     membershipdomain.Role(row.Role),
			JoinedAt: row.JoinedAt,
		})
	}
	return members, nil
}

func (r *PostgresRepository) CreateBaby(ctx context.Context, baby *membershipdomain.Baby) error {
	return r.db.WithContext(ctx).Create(baby).Error
}

func (r *PostgresRepository) GetBaby(ctx context.Context, babyID string) (*membershipdomain.Baby, error) {
	var baby membershipdomain.Baby
	if err := r.db.WithContext(ctx).Where("id = ?", babyID).First(&baby).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, membershipdomain.ErrBabyNotFound
		}
		return nil, err
	}
	return &baby, nil
}

func (r *PostgresRepository) UpdateBaby(ctx context.Context, baby *membershipdomain.Baby) error {
	result := r.db.WithContext(ctx).
		Model(baby).
		Select("name", "birth_date", "gender", "updated_at").
		Updates(baby)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return membershipdomain.ErrBabyNotFound
	}
	return nil
}

func (r *PostgresRepository) ListBabiesForUser(ctx context.Context, userID string) ([]membershipdomain.BabySummary, error) {
	type babyRow struct {
		membershipdomain.Baby
		Role        string `gorm:"column:role"`
		ParentCount int64  `gorm:"column:parent_count"`
	}

	var rows []babyRow
	if err := r.db.WithContext(ctx).
		Table("babies").
		Select("babies.*, memberships.role, (select count(*) from memberships m where m.baby_id = babies.id) as parent_count").
		Joins("join memberships on memberships.baby_id = babies.id").
		Where("memberships.user_id = ?", userID).
		Order("babies.created_at desc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []membershipdomain.BabySummary{}, nil
	}

	babyIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		babyIDs = append(babyIDs, row.ID)
	}
	latest, err := r.latestEntries(ctx, babyIDs)
	if err != nil {
		return nil, err
	}

	summaries := make([]membershipdomain.BabySummary, 0, len(rows))
	for _, row := range rows {
		summary := membershipdomain.BabySummary{
			Baby:        row.Baby,
			Role:        membershipdomain.Role(row.Role),
			ParentCount: row.ParentCount,
		}
		if entry, ok := latest[row.ID]; ok {
			grams := entry.WeightGrams
			measuredAt := entry.MeasuredAt
			summary.LatestWeightGrams = &grams
			summary.LatestWeightDate = &measuredAt
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// latestEntries returns the most recent measurement per baby.
func (r *PostgresRepository) latestEntries(ctx context.Context, babyIDs []string) (map[string]weightsdomain.Entry, error) {
	var entries []weightsdomain.Entry
	if err := r.db.WithContext(ctx).
		Where("baby_id in ?", babyIDs).
		Where(`not exists (
			select 1 from weight_entries newer
			where newer.baby_id = weight_entries.baby_id
			and (newer.measured_at > weight_entries.measured_at
				or (newer.measured_at = weight_entries.measured_at and newer.created_at > weight_entries.created_at)
				or (newer.measured_at = weight_entries.measured_at and newer.created_at = weight_entries.created_at and newer.id > weight_entries.id))
		)`).
		Find(&entries).Error; err != nil {
		return nil, err
	}

	latest := make(map[string]weightsdomain.Entry, len(entries))
	for _, entry := range entries {
		latest[entry.BabyID] = entry
	}
	return latest, nil
}

func (r *PostgresRepository) DeleteBabyCascade(ctx context.Context, babyID string) error {
	conn := r.db.WithContext(ctx)
	if err := conn.Where("baby_id = ?", babyID).Delete(&weightsdomain.Entry{}).Error; err != nil {
		return err
	}
	if err := conn.Where("baby_id = ?", babyID).Delete(&membershipdomain.Membership{}).Error; err != nil {
		return err
	}
	if err := conn.Where("baby_id = ?", babyID).Delete(&invitesdomain.Invite{}).Error; err != nil {
		return err
	}
	result := conn.Where("id = ?", babyID).Delete(&membershipdomain.Baby{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return membershipdomain.ErrBabyNotFound
	}
	return nil
}
