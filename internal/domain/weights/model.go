package weights

import "time"

const (
	MinWeightGrams = 100
	MaxWeightGrams = 50000
)

// Entry is a single weight measurement of a baby.
type Entry struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	BabyID      string    `gorm:"type:uuid;index;not null"`
	WeightGrams int       `gorm:"not null"`
	MeasuredAt  time.Time `gorm:"type:date;not null"`
	Notes       *string   `gorm:"type:text"`
	CreatedBy   string    `gorm:"type:uuid;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Entry) TableName() string {
	return "weight_entries"
}

// EntryRecord is an entry joined with the data needed to present it.
type EntryRecord struct {
	Entry
	RecordedByName string
	BirthDate      time.Time
}

// EntryView is an entry placed on the baby's growth timeline.
type EntryView struct {
	Entry
	RecordedByName string
	AgeDays        int
	DeltaGrams     *int
}

type CreateEntryInput struct {
	UserID      string
	BabyID      string
	WeightGrams int    `json:"weight_grams"`
	MeasuredAt  string `json:"measured_at"`
	Notes       string `json:"notes"`
}

// UpdateEntryInput is a partial update: nil fields keep their stored value.
type UpdateEntryInput struct {
	UserID      string
	BabyID      string
	EntryID     string
	WeightGrams *int    `json:"weight_grams"`
	MeasuredAt  *string `json:"measured_at"`
	Notes       *string `json:"notes"`
}
