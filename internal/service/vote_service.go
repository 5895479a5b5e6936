package service

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/qs3c/qa_board_server/internal/pkg/pubsub"
	"github.com/qs3c/qa_board_server/internal/pkg/ws"
	"github.com/qs3c/qa_board_server/internal/repository"
)

var ErrAnswerNotFound = errors.New("回答不存在")

// VoteService 回答点赞。计数自增是单条原子 UPDATE，并发点赞不丢计数。
// 同一用户可以重复点赞，不做去重。
type VoteService struct {
	answerRepo   *repository.AnswerRepository
	questionRepo *repository.QuestionRepository
	publisher    *pubsub.Publisher
	hub          *ws.Hub
}

func NewVoteService(answerRepo *repository.AnswerRepository, questionRepo *repository.QuestionRepository, publisher *pubsub.Publisher, hub *ws.Hub) *VoteService {
	return &VoteService{
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
		publisher:    publisher,
		hub:          hub,
	}
}

// Upvote 给回答点赞，返回点赞后的计数。
// 成功后发布变更事件驱动快照刷新，并通知提问者；
// 通知和事件都是尽力而为，失败只记日志不影响结果。
func (s *VoteService) Upvote(ctx context.Context, answerID int64) (int, error) {
	count, err := s.answerRepo.IncrementUpvotes(answerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrAnswerNotFound
		}
		return 0, err
	}

	if err := s.publisher.PublishChange(ctx, &pubsub.ChangeEvent{
		Table: pubsub.TableAnswers,
		Op:    pubsub.OpUpdate,
		RowID: answerID,
	}); err != nil {
		log.Printf("发布点赞变更事件失败: %v", err)
	}

	s.notifyQuestionAuthor(answerID)

	return count, nil
}

func (s *VoteService) notifyQuestionAuthor(answerID int64) {
	answer, err := s.answerRepo.GetByID(answerID)
	if err != nil {
		log.Printf("查询回答失败，跳过点赞通知: %v", err)
		return
	}

	question, err := s.questionRepo.GetByID(answer.QuestionID)
	if err != nil {
		log.Printf("查询问题失败，跳过点赞通知: %v", err)
		return
	}

	s.hub.Notify(question.UserID, "Answer Upvoted", question.Title)
}
