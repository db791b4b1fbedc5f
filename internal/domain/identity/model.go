package identity

import "time"

const minPasswordLength = 6

// bcrypt rejects passwords longer than this.
const maxPasswordBytes = 72

type User struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"not null;uniqueIndex"`
	Name         string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}

// Principal is the authenticated caller as carried by a bearer token.
type Principal struct {
	ID    string
	Email string
	Name  string
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	User      User
}

type SignupInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
