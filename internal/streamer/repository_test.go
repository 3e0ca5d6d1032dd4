// File: internal/streamer/repository_test.go
package streamer

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"streamhub_backend/internal/common"
	"streamhub_backend/internal/user"

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
	require.NoError(t, db.AutoMigrate(&user.User{}, &Profile{}, &Status{}))
	return db
}

func seedOwner(t *testing.T, db *gorm.DB, id string, active bool) {
	t.Helper()
	u := &user.User{ID: id, Email: id + "@example.com", Name: "Owner " + id, Role: common.RoleMember, IsActive: active}
	require.NoError(t, db.Create(u).Error)
}

func seedProfile(t *testing.T, repo Repository, userID, displayName string) *Profile {
	t.Helper()
	p := &Profile{UserID: userID, DisplayName: displayName, JoinPhase: common.JoinPhase01}
	_, err := repo.Create(context.Background(), p)
	require.NoError(t, err)
	return p
}

func TestStreamerRepository_GetByID_AbsentIsNilNil(t *testing.T) {
	repo := NewGORMRepository(setupTestDB(t))

	p, err := repo.GetByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestStreamerRepository_OneProfilePerUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMRepository(db)
	seedOwner(t, db, "u1", true)
	seedProfile(t, repo, "u1", "First")

	_, err := repo.Create(context.Background(), &Profile{UserID: "u1", DisplayName: "Second"})
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", apiErr.Code)
}

func TestStreamerRepository_ListWithUsers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMRepository(db)
	seedOwner(t, db, "active1", true)
	seedOwner(t, db, "active2", true)
	seedOwner(t, db, "inactive", false)

	first := seedProfile(t, repo, "active1", "Alpha")
	time.Sleep(5 * time.Millisecond)
	second := seedProfile(t, repo, "active2", "Beta")
	seedProfile(t, repo, "inactive", "Hidden")

	rows, err := repo.ListWithUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2, "profiles of inactive users are excluded")

	assert.Equal(t, second.ID, rows[0].ID, "newest profile first")
	assert.Equal(t, first.ID, rows[1].ID)
	assert.Equal(t, "Owner active2", rows[0].UserName)
	assert.Equal(t, "active2@example.com", rows[0].UserEmail)
}

func TestStreamerRepository_ListWithUsers_EmptyIsEmptySlice(t *testing.T) {
	repo := NewGORMRepository(setupTestDB(t))

	rows, err := repo.ListWithUsers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestStreamerRepository_Update_EmptyRequestRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMRepository(db)
	seedOwner(t, db, "u1", true)
	p := seedProfile(t, repo, "u1", "Name")

	_, err := repo.Update(context.Background(), p.ID, UpdateProfileRequest{})
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "BAD_REQUEST", apiErr.Code)
}

func TestStreamerRepository_Update_Partial(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMRepository(db)
	seedOwner(t, db, "u1", true)
	p := seedProfile(t, repo, "u1", "Name")

	phase := common.JoinPhase03
	write, err := repo.Update(context.Background(), p.ID, UpdateProfileRequest{JoinPhase: &phase})
	require.NoError(t, err)
	assert.EqualValues(t, 1, write.RowsAffected)

	updated, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, common.JoinPhase03, updated.JoinPhase)
	assert.Equal(t, "Name", updated.DisplayName)
}

func TestStreamerRepository_UpsertStatus_InsertThenUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMRepository(db)
	seedOwner(t, db, "u1", true)
	p := seedProfile(t, repo, "u1", "Streamer")

	// First write inserts a row with defaults plus the supplied fields.
	live := true
	platform := "twitch"
	_, err := repo.UpsertStatus(context.Background(), p.ID, UpdateStreamStatusRequest{IsLive: &live, Platform: &platform})
	require.NoError(t, err)

	status, err := repo.GetStatus(context.Background(), p.ID)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.True(t, status.IsLive)
	require.NotNil(t, status.Platform)
	assert.Equal(t, "twitch", *status.Platform)
	assert.Nil(t, status.Title)
	firstUpdated := status.LastUpdated

	time.Sleep(5 * time.Millisecond)

	// Second write updates exactly the supplied fields on the same row.
	title := "Speedrun"
	viewers := 42
	_, err = repo.UpsertStatus(context.Background(), p.ID, UpdateStreamStatusRequest{Title: &title, ViewerCount: &viewers})
	require.NoError(t, err)

	status, err = repo.GetStatus(context.Background(), p.ID)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.True(t, status.IsLive, "fields outside the request are untouched")
	require.NotNil(t, status.Title)
	assert.Equal(t, "Speedrun", *status.Title)
	require.NotNil(t, status.ViewerCount)
	assert.Equal(t, 42, *status.ViewerCount)
	assert.True(t, status.LastUpdated.After(firstUpdated), "last_updated is stamped on every write")

	var count int64
	require.NoError(t, db.Model(&Status{}).Where("streamer_id = ?", p.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestStreamerRepository_UpsertStatus_EmptyRequestRefreshesTimestamp(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMRepository(db)
	seedOwner(t, db, "u1", true)
	p := seedProfile(t, repo, "u1", "Streamer")

	_, err := repo.UpsertStatus(context.Background(), p.ID, UpdateStreamStatusRequest{})
	require.NoError(t, err)

	status, err := repo.GetStatus(context.Background(), p.ID)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.False(t, status.IsLive, "defaults apply on first write")
	assert.False(t, status.LastUpdated.IsZero())
}

func TestStreamerRepository_UpsertStatus_ConcurrentFirstWritesLeaveOneRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMRepository(db)
	seedOwner(t, db, "u1", true)
	p := seedProfile(t, repo, "u1", "Streamer")

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			live := n%2 == 0
			_, err := repo.UpsertStatus(context.Background(), p.ID, UpdateStreamStatusRequest{IsLive: &live})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&Status{}).Where("streamer_id = ?", p.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestStreamerRepository_SweepStaleStatuses(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMRepository(db)
	seedOwner(t, db, "u1", true)
	seedOwner(t, db, "u2", true)
	stale := seedProfile(t, repo, "u1", "Stale")
	fresh := seedProfile(t, repo, "u2", "Fresh")

	old := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, db.Create(&Status{StreamerID: stale.ID, IsLive: true, LastUpdated: old}).Error)
	require.NoError(t, db.Create(&Status{StreamerID: fresh.ID, IsLive: true, LastUpdated: time.Now().UTC()}).Error)

	write, err := repo.SweepStaleStatuses(context.Background(), time.Now().UTC().Add(-30*time.Minute))
	require.NoError(t, err)
	assert.EqualValues(t, 1, write.RowsAffected)

	staleStatus, err := repo.GetStatus(context.Background(), stale.ID)
	require.NoError(t, err)
	assert.False(t, staleStatus.IsLive)

	freshStatus, err := repo.GetStatus(context.Background(), fresh.ID)
	require.NoError(t, err)
	assert.True(t, freshStatus.IsLive)
}
