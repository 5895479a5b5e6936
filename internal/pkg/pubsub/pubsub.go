package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const (
	ChannelBoardChanges = "board_changes"
)

// 变更的数据表
const (
	TableQuestions = "questions"
	TableAnswers   = "answers"
)

// 变更操作类型
const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// ChangeEvent 行级变更事件。至少一次投递，可能重复或乱序，
// 订阅方只把事件当触发信号，内容一律从数据库重新拉取。
type ChangeEvent struct {
	Table string `json:"table"`
	Op    string `json:"op"`
	RowID int64  `json:"row_id"`
}

// Publisher Redis 发布者
type Publisher struct {
	client *redis.Client
}

// NewPublisher 创建发布者
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// PublishChange 发布变更事件
func (p *Publisher) PublishChange(ctx context.Context, event *ChangeEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal change event: %w", err)
	}

	return p.client.Publish(ctx, ChannelBoardChanges, data).Err()
}

// Subscriber Redis 订阅者
type Subscriber struct {
	client *redis.Client
}

// NewSubscriber 创建订阅者
func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe 订阅变更事件，阻塞直到 ctx 取消
func (s *Subscriber) Subscribe(ctx context.Context, handler func(*ChangeEvent)) error {
	pubsub := s.client.Subscribe(ctx, ChannelBoardChanges)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var event ChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue // 忽略解析错误
			}

			handler(&event)
		}
	}
}
