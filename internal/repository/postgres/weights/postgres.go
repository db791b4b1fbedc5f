package weights

import (
	"context"
	"errors"

	"baby-tracker-go/internal/db"
	weightsdomain "baby-tracker-go/internal/domain/weights"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(weightsdomain.Repository) error) error {
	return db.RetryOnce(ctx, func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(&PostgresRepository{db: tx})
		})
	})
}

func (r *PostgresRepository) ListEntries(ctx context.Context, babyID string) ([]weightsdomain.EntryRecord, error) {
	var records []weightsdomain.EntryRecord
	if err := r.db.WithContext(ctx).
		Table("weight_entries").
		Select("weight_entries.*, coalesce(users.name, '') as recorded_by_name, babies.birth_date as birth_date").
		Joins("join babies on babies.id = weight_entries.baby_id").
		Joins("left join users on users.id = weight_entries.created_by").
		Where("weight_entries.baby_id = ?", babyID).
		Order("weight_entries.measured_at asc").
		Order("weight_entries.created_at asc").
		Order("weight_entries.id asc").
		Scan(&records).Error; err != nil {
		return nil, err
	}
	if records == nil {
		records = []weightsdomain.EntryRecord{}
	}
	return records, nil
}

func (r *PostgresRepository) GetEntry(ctx context.Context, babyID, entryID string) (*weightsdomain.Entry, error) {
	var entry weightsdomain.Entry
	err := r.db.WithContext(ctx).
		Where("id = ? AND baby_id = ?", entryID, babyID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, weightsdomain.ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *PostgresRepository) CreateEntry(ctx context.Context, entry *weightsdomain.Entry) error {
	return db.RetryOnce(ctx, func() error {
		return r.db.WithContext(ctx).Create(entry).Error
	})
}

func (r *PostgresRepository) UpdateEntry(ctx context.Context, entry *weightsdomain.Entry) error {
	result := r.db.WithContext(ctx).
		Model(entry).
		Where("baby_id = ?", entry.BabyID).
		Select("weight_grams", "measured_at", "notes", "updated_at").
		Updates(entry)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return weightsdomain.ErrEntryNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteEntry(ctx context.Context, babyID, entryID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND baby_id = ?", entryID, babyID).
		Delete(&weightsdomain.Entry{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
