package cron

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/qa_board_server/config"
	"github.com/qs3c/qa_board_server/internal/pkg/queue"
	"github.com/qs3c/qa_board_server/internal/repository"
	"github.com/qs3c/qa_board_server/internal/service"
	"github.com/qs3c/qa_board_server/internal/testutil"
)

func setupCronService(t *testing.T) (*Service, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := &config.Config{
		Verification: config.VerificationConfig{
			CodeLength:    6,
			ExpireMinutes: 10,
		},
	}

	userRepo := repository.NewUserRepository(db)
	verification := service.NewVerificationService(userRepo, queue.NewQueue(client, "test_mail_queue"), cfg)
	historyRepo := repository.NewLoginHistoryRepository(db)
	cronService := NewService(verification, historyRepo, 90)

	cleanup := func() {
		client.Close()
		mr.Close()
		testutil.CleanupTestDB(t, db)
	}
	return cronService, db, cleanup
}

func TestService_StartStop(t *testing.T) {
	svc, _, cleanup := setupCronService(t)
	defer cleanup()

	svc.Start()
	time.Sleep(50 * time.Millisecond)
	svc.Stop()
}

func TestService_PurgeHistory(t *testing.T) {
	svc, db, cleanup := setupCronService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	testutil.TestLoginHistory(t, db, user.ID, time.Now().AddDate(0, 0, -100))
	testutil.TestLoginHistory(t, db, user.ID, time.Now())

	svc.purgeHistory()

	remaining, err := svc.historyRepo.ListByUser(user.ID, 10)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}
