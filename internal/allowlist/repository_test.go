// File: internal/allowlist/repository_test.go
package allowlist

import (
	"context"
	"fmt"
	"testing"
	"time"

	"streamhub_backend/internal/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
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
	require.NoError(t, db.AutoMigrate(&ApprovedEmail{}))
	return db
}

func TestAllowlistRepository_GetByEmail_AbsentIsNilNil(t *testing.T) {
	repo := NewGORMRepository(setupTestDB(t))

	entry, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestAllowlistRepository_CreateAndLookupNormalizesEmail(t *testing.T) {
	repo := NewGORMRepository(setupTestDB(t))

	_, err := repo.Create(context.Background(), &ApprovedEmail{Email: " Friend@Example.COM "})
	require.NoError(t, err)

	entry, err := repo.GetByEmail(context.Background(), "friend@example.com")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "friend@example.com", entry.Email)
	assert.False(t, entry.ApprovedAt.IsZero())
}

func TestAllowlistRepository_DuplicateConflicts(t *testing.T) {
	repo := NewGORMRepository(setupTestDB(t))

	_, err := repo.Create(context.Background(), &ApprovedEmail{Email: "dup@example.com"})
	require.NoError(t, err)

	_, err = repo.Create(context.Background(), &ApprovedEmail{Email: "DUP@example.com"})
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", apiErr.Code)
}

func TestAllowlistRepository_List_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMRepository(db)

	old := &ApprovedEmail{Email: "old@example.com", ApprovedAt: time.Now().UTC().Add(-time.Hour)}
	require.NoError(t, db.Create(old).Error)
	recent := &ApprovedEmail{Email: "recent@example.com", ApprovedAt: time.Now().UTC()}
	require.NoError(t, db.Create(recent).Error)

	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "recent@example.com", entries[0].Email)
	assert.Equal(t, "old@example.com", entries[1].Email)
}

func TestAllowlistRepository_List_EmptyIsEmptySlice(t *testing.T) {
	repo := NewGORMRepository(setupTestDB(t))

	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestAllowlistService_IsApproved(t *testing.T) {
	repo := NewGORMRepository(setupTestDB(t))
	svc := NewService(repo, zap.NewNop())

	notes := "community friend"
	_, err := svc.Add(context.Background(), AddApprovedEmailRequest{Email: "yes@example.com", Notes: &notes}, "admin-1")
	require.NoError(t, err)

	ok, err := svc.IsApproved(context.Background(), "YES@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsApproved(context.Background(), "no@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}
