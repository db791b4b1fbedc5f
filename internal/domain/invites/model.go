package invites

import "time"

type Invite struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	BabyID    string    `gorm:"type:uuid;index;not null"`
	Token     string    `gorm:"uniqueIndex;not null"`
	CreatedBy string    `gorm:"type:uuid;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	ExpiresAt time.Time `gorm:"not null"`
	UsedAt    *time.Time
	UsedBy    *string `gorm:"type:uuid"`
}

func (Invite) TableName() string {
	return "invites"
}

type Status string

const (
	StatusIssued   Status = "issued"
	StatusConsumed Status = "consumed"
	StatusExpired  Status = "expired"
)

// Status derives the lifecycle state at now. Consumption wins over expiry and
// an invite is expired from the instant now reaches ExpiresAt.
func (i Invite) Status(now time.Time) Status {
	if i.UsedAt != nil {
		return StatusConsumed
	}
	if !now.Before(i.ExpiresAt) {
		return StatusExpired
	}
	return StatusIssued
}

// Preview is what an anonymous visitor may learn about an invite.
type Preview struct {
	BabyName      string
	BabyBirthDate time.Time
	InviterName   string
	ExpiresAt     time.Time
}

type Acceptance struct {
	BabyID   string
	BabyName string
}
