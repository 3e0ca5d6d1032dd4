// File: internal/user/repository_test.go
package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"streamhub_backend/internal/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))
	return db
}

func seedUser(t *testing.T, repo Repository, id, email string) *User {
	t.Helper()
	u := &User{ID: id, Email: email, Name: "Test User", Role: common.RoleMember, IsActive: true}
	write, err := repo.Create(context.Background(), u)
	require.NoError(t, err)
	require.EqualValues(t, 1, write.RowsAffected)
	return u
}

func TestUserRepository_GetByID_AbsentIsNilNil(t *testing.T) {
	repo := NewGORMRepository(setupTestDB(t))

	u, err := repo.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	repo := NewGORMRepository(setupTestDB(t))
	seedUser(t, repo, "u1", "U1@Example.com")

	byID, err := repo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "u1@example.com", byID.Email, "email is normalized on insert")

	byEmail, err := repo.GetByEmail(context.Background(), "  U1@EXAMPLE.COM ")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, "u1", byEmail.ID)
}

func TestUserRepository_Create_PersistsInactiveFlag(t *testing.T) {
	repo := NewGORMRepository(setupTestDB(t))

	u := &User{ID: "u1", Email: "u1@example.com", Name: "Disabled User", Role: common.RoleMember, IsActive: false}
	write, err := repo.Create(context.Background(), u)
	require.NoError(t, err)
	require.EqualValues(t, 1, write.RowsAffected)

	got, err := repo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.IsActive, "caller supplied is_active=false; create must persist it")
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	repo := NewGORMRepository(setupTestDB(t))
	seedUser(t, repo, "u1", "dup@example.com")

	_, err := repo.Create(context.Background(), &User{ID: "u2", Email: "dup@example.com", Name: "Other"})
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", apiErr.Code)
}

func TestUserRepository_Update_PartialFieldsOnly(t *testing.T) {
	repo := NewGORMRepository(setupTestDB(t))
	seedUser(t, repo, "u1", "u1@example.com")

	newName := "Renamed"
	write, err := repo.Update(context.Background(), "u1", UpdateUserRequest{Name: &newName})
	require.NoError(t, err)
	assert.EqualValues(t, 1, write.RowsAffected)

	u, err := repo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", u.Name)
	assert.Equal(t, common.RoleMember, u.Role, "unset fields stay untouched")
	assert.True(t, u.IsActive)
}

func TestUserRepository_Update_EmptyRequestRejected(t *testing.T) {
	repo := NewGORMRepository(setupTestDB(t))
	seedUser(t, repo, "u1", "u1@example.com")

	_, err := repo.Update(context.Background(), "u1", UpdateUserRequest{})
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "BAD_REQUEST", apiErr.Code)
}

func TestUserRepository_Update_MissingRowAffectsNone(t *testing.T) {
	repo := NewGORMRepository(setupTestDB(t))

	active := false
	write, err := repo.Update(context.Background(), "ghost", UpdateUserRequest{IsActive: &active})
	require.NoError(t, err)
	assert.EqualValues(t, 0, write.RowsAffected)
}

func TestUserRepository_UpdateLastLogin(t *testing.T) {
	repo := NewGORMRepository(setupTestDB(t))
	seedUser(t, repo, "u1", "u1@example.com")

	before := time.Now().UTC().Add(-time.Second)
	write, err := repo.UpdateLastLogin(context.Background(), "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, write.RowsAffected)

	u, err := repo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, u.LastLogin)
	assert.True(t, u.LastLogin.After(before))
}
