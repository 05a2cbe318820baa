package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/satmoko/studio-backend/internal/models"
	"github.com/satmoko/studio-backend/internal/repository"
	"github.com/satmoko/studio-backend/pkg/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	return db
}

func seedMember(t *testing.T, members *repository.MemberRepository, email string, credits int64) {
	t.Helper()
	require.NoError(t, members.Create(&models.Member{
		FullName: "Test Member",
		Email:    email,
		Password: "irrelevant",
		Status:   models.MemberStatusPending,
		Credits:  credits,
	}))
}
