package membership

import "time"

type Role string

const (
	RoleOwner  Role = "owner"
	RoleParent Role = "parent"
)

const (
	GenderFemale = "female"
	GenderMale   = "male"
)

type Baby struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	BirthDate time.Time `gorm:"type:date;not null"`
	Gender    *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Baby) TableName() string {
	return "babies"
}

// Membership links one user to one baby. The pair is the primary key, so a
// second row for the same pair cannot exist.
type Membership struct {
	BabyID   string    `gorm:"type:uuid;primaryKey"`
	UserID   string    `gorm:"type:uuid;primaryKey;index"`
	Role     Role      `gorm:"type:varchar(16);not null"`
	JoinedAt time.Time `gorm:"autoCreateTime"`
}

func (Membership) TableName() string {
	return "memberships"
}

// Access is the outcome of an authorization check. A denied Access carries no
// role and is reported to callers exactly like a missing baby.
type Access struct {
	Allowed bool
	Role    Role
}

type BabySummary struct {
	Baby
	Role              Role
	ParentCount       int64
	LatestWeightGrams *int
	LatestWeightDate  *time.Time
}

type Member struct {
	UserID   string
	Name     string
	Email    string
	Role     Role
	JoinedAt time.Time
}

type BabyDetail struct {
	Baby
	Role    Role
	Members []Member
}

type CreateBabyInput struct {
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
	Gender    string `json:"gender"`
}

// UpdateBabyInput is a partial update: nil fields keep their stored value.
type UpdateBabyInput struct {
	Name      *string `json:"name"`
	BirthDate *string `json:"birth_date"`
	Gender    *string `json:"gender"`
}
