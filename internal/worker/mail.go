package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/qs3c/qa_board_server/internal/pkg/queue"
)

// Sender 邮件发送端，生产环境为 SMTP 实现
type Sender interface {
	SendVerificationCode(to, code string) error
	SendGeneratedPassword(to, password string) error
}

// MailProcessor 消费邮件队列并逐条投递。
// 投递失败只记日志丢弃，不回队重试，验证码过期后重发比重复投递便宜。
type MailProcessor struct {
	mailQueue *queue.Queue
	sender    Sender
}

func NewMailProcessor(mailQueue *queue.Queue, sender Sender) *MailProcessor {
	return &MailProcessor{
		mailQueue: mailQueue,
		sender:    sender,
	}
}

// Run 阻塞消费队列直到 ctx 取消
func (p *MailProcessor) Run(ctx context.Context) error {
	log.Println("邮件处理器启动")
	for {
		select {
		case <-ctx.Done():
			log.Println("邮件处理器退出")
			return ctx.Err()
		default:
		}

		msg, err := p.mailQueue.Pop(ctx, 5*time.Second)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("读取邮件队列失败: %v", err)
			time.Sleep(time.Second)
			continue
		}
		if msg == nil {
			continue // 超时，无任务
		}

		if err := p.Process(msg); err != nil {
			log.Printf("邮件投递失败 type=%s to=%s: %v", msg.Type, msg.To, err)
		}
	}
}

// Process 按消息类型投递单封邮件
func (p *MailProcessor) Process(msg *queue.MailMessage) error {
	switch msg.Type {
	case queue.MailVerificationCode:
		return p.sender.SendVerificationCode(msg.To, msg.Code)
	case queue.MailGeneratedPassword:
		return p.sender.SendGeneratedPassword(msg.To, msg.Password)
	default:
		return fmt.Errorf("未知邮件类型: %s", msg.Type)
	}
}
