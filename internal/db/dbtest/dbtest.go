// Package dbtest opens throwaway in-process SQLite databases carrying the
// application schema, for repository tests.
package dbtest

import (
	"testing"

	"baby-tracker-go/internal/domain/identity"
	"baby-tracker-go/internal/domain/invites"
	"baby-tracker-go/internal/domain/membership"
	"baby-tracker-go/internal/domain/weights"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Open(t testing.TB) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := conn.AutoMigrate(
		&identity.User{},
		&membership.Baby{},
		&membership.Membership{},
		&weights.Entry{},
		&invites.Invite{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return conn
}

// SeedUser inserts a user with a placeholder password hash.
func SeedUser(t testing.TB, conn *gorm.DB, id, email, name string) identity.User {
	t.Helper()
	user := identity.User{ID: id, Email: email, Name: name, PasswordHash: "x"}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}
