// Package testutil provides an in-memory database for repository and service tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"reserve-backend/domain"
	"reserve-backend/entities"
)

// NewDB opens a private in-memory SQLite database with every table migrated.
// A single connection keeps concurrent writers serialized the way row locks would.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(entities.Models()...))
	return db
}

// CreateUser inserts a verified, active user with the given role.
func CreateUser(t *testing.T, db *gorm.DB, role, name string, mutate ...func(*entities.User)) *entities.User {
	t.Helper()

	u := &entities.User{
		ID:                 uuid.New(),
		Name:               name,
		Email:              fmt.Sprintf("%s-%s@reserve.test", name, uuid.NewString()[:8]),
		Password:           "x",
		Role:               role,
		Phone:              "9876543210",
		AccountStatus:      domain.AccountActive,
		VerificationStatus: domain.VerificationVerified,
	}
	for _, m := range mutate {
		m(u)
	}
	require.NoError(t, db.Create(u).Error)
	return u
}
