package repository

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/qa_board_server/internal/model"
	"github.com/qs3c/qa_board_server/internal/testutil"
)

func TestTransferRepository_Execute(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewTransferRepository(db)
	sender := testutil.TestUser(t, db, testutil.WithUsername("sender"), testutil.WithEmail("sender@example.com"), testutil.WithPoints(10))
	recipient := testutil.TestUser(t, db, testutil.WithUsername("recipient"), testutil.WithEmail("recipient@example.com"), testutil.WithPoints(0))

	err := repo.Execute(sender.ID, recipient.ID, 10, 10)
	require.NoError(t, err)

	var from, to model.User
	require.NoError(t, db.First(&from, sender.ID).Error)
	require.NoError(t, db.First(&to, recipient.ID).Error)
	assert.Equal(t, 0, from.Points)
	assert.Equal(t, 10, to.Points)

	var count int64
	require.NoError(t, db.Model(&model.PointsTransfer{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	transfers, err := repo.ListByUser(sender.ID)
	require.NoError(t, err)
	require.Len(t, transfers, 1)
	assert.Equal(t, sender.ID, transfers[0].FromUserID)
	assert.Equal(t, recipient.ID, transfers[0].ToUserID)
	assert.Equal(t, 10, transfers[0].Amount)
}

func TestTransferRepository_Execute_BalanceChanged(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewTransferRepository(db)
	sender := testutil.TestUser(t, db, testutil.WithUsername("sender"), testutil.WithEmail("sender@example.com"), testutil.WithPoints(5))
	recipient := testutil.TestUser(t, db, testutil.WithUsername("recipient"), testutil.WithEmail("recipient@example.com"))

	err := repo.Execute(sender.ID, recipient.ID, 10, 10)
	assert.ErrorIs(t, err, ErrBalanceChanged)

	// 失败的转账不能留下任何痕迹
	var from model.User
	require.NoError(t, db.First(&from, sender.ID).Error)
	assert.Equal(t, 5, from.Points)

	var count int64
	require.NoError(t, db.Model(&model.PointsTransfer{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestTransferRepository_Execute_Concurrent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewTransferRepository(db)
	sender := testutil.TestUser(t, db, testutil.WithUsername("sender"), testutil.WithEmail("sender@example.com"), testutil.WithPoints(15))
	recipient := testutil.TestUser(t, db, testutil.WithUsername("recipient"), testutil.WithEmail("recipient@example.com"), testutil.WithPoints(0))

	// 余额 15 同时发起两笔 10 的转账, 最多一笔成功
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Execute(sender.ID, recipient.ID, 10, 10)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrBalanceChanged)
		}
	}
	assert.Equal(t, 1, succeeded)

	var from, to model.User
	require.NoError(t, db.First(&from, sender.ID).Error)
	require.NoError(t, db.First(&to, recipient.ID).Error)
	assert.Equal(t, 5, from.Points)
	assert.Equal(t, 10, to.Points)
}

func TestTransferRepository_CountByUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewTransferRepository(db)
	sender := testutil.TestUser(t, db, testutil.WithUsername("sender"), testutil.WithEmail("sender@example.com"), testutil.WithPoints(100))
	recipient := testutil.TestUser(t, db, testutil.WithUsername("recipient"), testutil.WithEmail("recipient@example.com"))

	require.NoError(t, repo.Execute(sender.ID, recipient.ID, 10, 10))
	require.NoError(t, repo.Execute(sender.ID, recipient.ID, 20, 20))

	count, err := repo.CountByUser(sender.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountByUser(recipient.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
