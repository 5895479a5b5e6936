package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// 邮件类型
const (
	MailVerificationCode  = "verification_code"
	MailGeneratedPassword = "generated_password"
)

type Queue struct {
	client    *redis.Client
	queueName string
}

// MailMessage 待投递的邮件任务
type MailMessage struct {
	Type     string `json:"type"`
	To       string `json:"to"`
	UserID   int64  `json:"user_id"`
	Code     string `json:"code,omitempty"`
	Password string `json:"password,omitempty"`
}

func NewQueue(client *redis.Client, queueName string) *Queue {
	return &Queue{
		client:    client,
		queueName: queueName,
	}
}

// Push 将邮件任务加入队列
func (q *Queue) Push(ctx context.Context, msg *MailMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	return q.client.LPush(ctx, q.queueName, data).Err()
}

// Pop 从队列获取邮件任务（阻塞）
func (q *Queue) Pop(ctx context.Context, timeout time.Duration) (*MailMessage, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // 超时，无任务
		}
		return nil, fmt.Errorf("failed to pop from queue: %w", err)
	}

	if len(result) < 2 {
		return nil, nil
	}

	var msg MailMessage
	if err := json.Unmarshal([]byte(result[1]), &msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message: %w", err)
	}

	return &msg, nil
}

// Length 获取队列长度
func (q *Queue) Length(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.queueName).Result()
}
