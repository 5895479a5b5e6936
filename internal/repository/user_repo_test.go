package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/qa_board_server/internal/testutil"
)

func TestUserRepository_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	_ = NewUserRepository(db)

	email := "test@example.com"
	user := testutil.TestUser(t, db, testutil.WithEmail(email))

	assert.NotZero(t, user.ID)
	assert.Equal(t, email, *user.Email)
	assert.Equal(t, "en", user.PreferredLanguage)
}

func TestUserRepository_GetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)

	created := testutil.TestUser(t, db)

	found, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, created.Username, found.Username)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)

	_, err := repo.GetByID(99999)
	assert.Error(t, err)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)

	email := "unique@example.com"
	testutil.TestUser(t, db, testutil.WithEmail(email))

	found, err := repo.GetByEmail(email)
	require.NoError(t, err)
	assert.Equal(t, email, *found.Email)
}

func TestUserRepository_GetByPhone(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)

	testutil.TestUser(t, db, testutil.WithPhone("13800138000"))

	found, err := repo.GetByPhone("13800138000")
	require.NoError(t, err)
	assert.Equal(t, "13800138000", *found.Phone)
}

func TestUserRepository_UpdateLanguage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)

	user := testutil.TestUser(t, db)

	err := repo.UpdateLanguage(user.ID, "fr")
	require.NoError(t, err)

	found, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "fr", found.PreferredLanguage)
}

func TestUserRepository_ConsumePasswordReset(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)

	user := testutil.TestUser(t, db, testutil.WithResetState(0, time.Now()))

	// 限额 1：第一次成功，第二次失败
	ok, err := repo.ConsumePasswordReset(user.ID, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ConsumePasswordReset(user.ID, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	found, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, found.PasswordResetCount)
}

func TestUserRepository_RolloverResetWindow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)

	now := time.Now()
	stale := now.Add(-25 * time.Hour)
	user := testutil.TestUser(t, db, testutil.WithResetState(1, stale))

	// 窗口已过期，条件更新应生效
	cutoff := now.Add(-24 * time.Hour)
	rolled, err := repo.RolloverResetWindow(user.ID, now, cutoff)
	require.NoError(t, err)
	assert.True(t, rolled)

	found, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, found.PasswordResetCount)

	// 窗口未过期，条件更新不生效
	rolled, err = repo.RolloverResetWindow(user.ID, now, cutoff)
	require.NoError(t, err)
	assert.False(t, rolled)
}

func TestUserRepository_RolloverResetWindow_NullTimestamp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)

	// 从未重置过的用户视为窗口已过期
	user := testutil.TestUser(t, db)

	now := time.Now()
	rolled, err := repo.RolloverResetWindow(user.ID, now, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.True(t, rolled)
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)

	email := "exists@example.com"
	testutil.TestUser(t, db, testutil.WithEmail(email))

	exists, err := repo.ExistsByEmail(email)
	require.NoError(t, err)
	assert.True(t, exists)

	notExists, err := repo.ExistsByEmail("notexists@example.com")
	require.NoError(t, err)
	assert.False(t, notExists)
}

func TestUserRepository_ExistsByUsername(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)

	testutil.TestUser(t, db, testutil.WithUsername("taken"))

	exists, err := repo.ExistsByUsername("taken")
	require.NoError(t, err)
	assert.True(t, exists)

	notExists, err := repo.ExistsByUsername("free")
	require.NoError(t, err)
	assert.False(t, notExists)
}
