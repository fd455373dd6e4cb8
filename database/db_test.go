package database

import (
	"fmt"
	"testing"

	"github.com/anjiri1684/english_assistant/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the package-level DB at a fresh in-memory sqlite
// database for the duration of one test.
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Conversation{}))

	prev := DB
	DB = db
	t.Cleanup(func() { DB = prev })
}

func newTestUser(t *testing.T, username, email string) *models.User {
	t.Helper()

	user := &models.User{
		FullName: "Test User",
		Dob:      "1995-04-12",
		Gender:   "female",
		Username: username,
		Email:    email,
	}
	require.NoError(t, user.SetPassword("password123"))
	return user
}
