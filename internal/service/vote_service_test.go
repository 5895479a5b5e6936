package service

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/qa_board_server/internal/pkg/pubsub"
	"github.com/qs3c/qa_board_server/internal/pkg/ws"
	"github.com/qs3c/qa_board_server/internal/repository"
	"github.com/qs3c/qa_board_server/internal/testutil"
)

func setupVoteService(t *testing.T) (*VoteService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	service := NewVoteService(
		repository.NewAnswerRepository(db),
		repository.NewQuestionRepository(db),
		pubsub.NewPublisher(client),
		ws.NewHub(),
	)

	cleanup := func() {
		client.Close()
		mr.Close()
		testutil.CleanupTestDB(t, db)
	}
	return service, db, cleanup
}

func TestVoteService_Upvote(t *testing.T) {
	service, db, cleanup := setupVoteService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	question := testutil.TestQuestion(t, db, user.ID)
	answer := testutil.TestAnswer(t, db, user.ID, question.ID)

	count, err := service.Upvote(context.Background(), answer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// 同一用户重复点赞不去重
	count, err = service.Upvote(context.Background(), answer.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestVoteService_Upvote_AnswerNotFound(t *testing.T) {
	service, _, cleanup := setupVoteService(t)
	defer cleanup()

	_, err := service.Upvote(context.Background(), 99999)
	assert.ErrorIs(t, err, ErrAnswerNotFound)
}

func TestVoteService_Upvote_Concurrent(t *testing.T) {
	service, db, cleanup := setupVoteService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	question := testutil.TestQuestion(t, db, user.ID)
	answer := testutil.TestAnswer(t, db, user.ID, question.ID)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Upvote(context.Background(), answer.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	updated, err := repository.NewAnswerRepository(db).GetByID(answer.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Upvotes)
}
