package service

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/qa_board_server/config"
	"github.com/qs3c/qa_board_server/internal/model"
	"github.com/qs3c/qa_board_server/internal/model/dto"
	"github.com/qs3c/qa_board_server/internal/pkg/oss"
	"github.com/qs3c/qa_board_server/internal/pkg/pubsub"
	"github.com/qs3c/qa_board_server/internal/pkg/ws"
	"github.com/qs3c/qa_board_server/internal/repository"
)

var (
	ErrQuestionNotFound    = errors.New("问题不存在")
	ErrVideoTooLarge       = errors.New("视频大小超过限制")
	ErrVideoTypeNotAllowed = errors.New("不支持的视频格式")
)

// VideoUpload 待上传的视频文件
type VideoUpload struct {
	Reader io.Reader
	Size   int64
	Ext    string
}

// QuestionService 提问与回答。携带视频的提问要依次通过
// 上传时段检查和一次性验证许可，之后才上传对象存储。
type QuestionService struct {
	questionRepo *repository.QuestionRepository
	answerRepo   *repository.AnswerRepository
	policy       *PolicyService
	verification *VerificationService
	ossClient    *oss.Client
	publisher    *pubsub.Publisher
	hub          *ws.Hub
	cfg          *config.Config
}

func NewQuestionService(
	questionRepo *repository.QuestionRepository,
	answerRepo *repository.AnswerRepository,
	policy *PolicyService,
	verification *VerificationService,
	ossClient *oss.Client,
	publisher *pubsub.Publisher,
	hub *ws.Hub,
	cfg *config.Config,
) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		policy:       policy,
		verification: verification,
		ossClient:    ossClient,
		publisher:    publisher,
		hub:          hub,
		cfg:          cfg,
	}
}

// Create 发布问题。视频可选；带视频时先过时段策略，再消费验证许可，
// 最后上传对象存储。任一环节失败整个提问失败，不产生半成品。
func (s *QuestionService) Create(ctx context.Context, userID int64, req *dto.CreateQuestionRequest, video *VideoUpload) (*dto.CreateQuestionResponse, error) {
	var videoURL string

	if video != nil {
		if err := s.policy.CheckUploadAllowed(time.Now()); err != nil {
			return nil, err
		}
		if err := s.validateVideo(video); err != nil {
			return nil, err
		}
		if err := s.verification.ConsumePermit(userID, req.ChallengeID); err != nil {
			return nil, err
		}

		key, err := s.ossClient.UploadVideo(userID, video.Reader, video.Ext)
		if err != nil {
			return nil, err
		}
		videoURL = s.ossClient.GetURL(key)
	}

	question := &model.Question{
		UserID:   userID,
		Title:    req.Title,
		Content:  req.Content,
		VideoURL: videoURL,
	}
	if err := s.questionRepo.Create(question); err != nil {
		return nil, err
	}

	s.publishChange(ctx, pubsub.TableQuestions, pubsub.OpInsert, question.ID)

	return &dto.CreateQuestionResponse{
		QuestionID: question.ID,
		VideoURL:   videoURL,
	}, nil
}

// CreateAnswer 回答问题并通知提问者
func (s *QuestionService) CreateAnswer(ctx context.Context, userID, questionID int64, content string) (*model.Answer, error) {
	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	answer := &model.Answer{
		QuestionID: questionID,
		UserID:     userID,
		Content:    content,
	}
	if err := s.answerRepo.Create(answer); err != nil {
		return nil, err
	}

	s.publishChange(ctx, pubsub.TableAnswers, pubsub.OpInsert, answer.ID)

	if question.UserID != userID {
		s.hub.Notify(question.UserID, "New Answer", question.Title)
	}

	return answer, nil
}

func (s *QuestionService) validateVideo(video *VideoUpload) error {
	if video.Size > s.cfg.Upload.MaxSize {
		return ErrVideoTooLarge
	}

	ext := strings.ToLower(video.Ext)
	for _, allowed := range s.cfg.Upload.AllowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	return ErrVideoTypeNotAllowed
}

func (s *QuestionService) publishChange(ctx context.Context, table, op string, rowID int64) {
	err := s.publisher.PublishChange(ctx, &pubsub.ChangeEvent{
		Table: table,
		Op:    op,
		RowID: rowID,
	})
	if err != nil {
		log.Printf("发布变更事件失败 table=%s op=%s id=%d: %v", table, op, rowID, err)
	}
}
