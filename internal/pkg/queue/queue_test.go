package queue

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return client, cleanup
}

func TestNewQueue(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	q := NewQueue(client, "test_queue")

	assert.NotNil(t, q)
	assert.Equal(t, "test_queue", q.queueName)
	assert.Equal(t, client, q.client)
}

func TestQueue_Push(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	q := NewQueue(client, "test_queue")
	ctx := context.Background()

	t.Run("push single message", func(t *testing.T) {
		msg := &MailMessage{
			Type:   MailVerificationCode,
			To:     "user@example.com",
			UserID: 10,
			Code:   "123456",
		}

		err := q.Push(ctx, msg)
		require.NoError(t, err)

		length, err := q.Length(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), length)
	})

	t.Run("push multiple messages", func(t *testing.T) {
		client.Del(ctx, "test_queue2")

		q2 := NewQueue(client, "test_queue2")

		for i := 0; i < 5; i++ {
			msg := &MailMessage{
				Type:   MailVerificationCode,
				UserID: int64(i),
			}
			err := q2.Push(ctx, msg)
			require.NoError(t, err)
		}

		length, err := q2.Length(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(5), length)
	})
}

func TestQueue_Pop(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("pop from queue with messages", func(t *testing.T) {
		q := NewQueue(client, "test_pop_queue")

		msg := &MailMessage{
			Type:     MailGeneratedPassword,
			To:       "reset@example.com",
			UserID:   20,
			Password: "AbCdefghijkl",
		}

		err := q.Push(ctx, msg)
		require.NoError(t, err)

		result, err := q.Pop(ctx, time.Second)
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.Equal(t, MailGeneratedPassword, result.Type)
		assert.Equal(t, "reset@example.com", result.To)
		assert.Equal(t, int64(20), result.UserID)
		assert.Equal(t, "AbCdefghijkl", result.Password)
	})

	t.Run("pop FIFO order", func(t *testing.T) {
		q := NewQueue(client, "test_fifo_queue")

		for i := 1; i <= 3; i++ {
			msg := &MailMessage{UserID: int64(i)}
			err := q.Push(ctx, msg)
			require.NoError(t, err)
		}

		for i := 1; i <= 3; i++ {
			result, err := q.Pop(ctx, time.Second)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, int64(i), result.UserID)
		}
	})

	t.Run("pop from empty queue times out", func(t *testing.T) {
		q := NewQueue(client, "test_empty_queue")

		result, err := q.Pop(ctx, 10*time.Millisecond)

		// miniredis doesn't support BRPop timeout properly, so check for nil or error
		if err == nil {
			assert.Nil(t, result)
		}
	})
}

func TestQueue_Length(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("length of empty queue", func(t *testing.T) {
		q := NewQueue(client, "test_length_empty")

		length, err := q.Length(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), length)
	})

	t.Run("length after push and pop", func(t *testing.T) {
		q := NewQueue(client, "test_length_ops")

		for i := 0; i < 3; i++ {
			msg := &MailMessage{UserID: int64(i)}
			err := q.Push(ctx, msg)
			require.NoError(t, err)
		}

		length, err := q.Length(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), length)

		_, err = q.Pop(ctx, time.Second)
		require.NoError(t, err)

		length, err = q.Length(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), length)
	})
}
