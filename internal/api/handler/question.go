package handler

import (
	"errors"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/qa_board_server/internal/api/middleware"
	"github.com/qs3c/qa_board_server/internal/model/dto"
	"github.com/qs3c/qa_board_server/internal/pkg/response"
	"github.com/qs3c/qa_board_server/internal/reconciler"
	"github.com/qs3c/qa_board_server/internal/service"
)

type QuestionHandler struct {
	questionService *service.QuestionService
	voteService     *service.VoteService
	reconciler      *reconciler.Reconciler
}

func NewQuestionHandler(questionService *service.QuestionService, voteService *service.VoteService, r *reconciler.Reconciler) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		voteService:     voteService,
		reconciler:      r,
	}
}

// List 问答板列表，直接读内存快照
// GET /api/v1/questions
func (h *QuestionHandler) List(c *gin.Context) {
	response.Success(c, h.reconciler.Snapshot())
}

// Create 发布问题（multipart，视频可选）
// POST /api/v1/questions
func (h *QuestionHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "请先登录")
		return
	}

	var req dto.CreateQuestionRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	var video *service.VideoUpload
	fileHeader, err := c.FormFile("video")
	if err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			response.ServerError(c, "")
			return
		}
		defer file.Close()

		video = &service.VideoUpload{
			Reader: file,
			Size:   fileHeader.Size,
			Ext:    filepath.Ext(fileHeader.Filename),
		}
	}

	resp, err := h.questionService.Create(c.Request.Context(), userID, &req, video)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUploadWindowClosed):
			response.WindowClosedError(c, err.Error())
		case errors.Is(err, service.ErrVideoTooLarge),
			errors.Is(err, service.ErrVideoTypeNotAllowed):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrVerificationRequired):
			response.VerifyError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "发布成功", resp)
}

// CreateAnswer 回答问题
// POST /api/v1/questions/:id/answers
func (h *QuestionHandler) CreateAnswer(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "请先登录")
		return
	}

	questionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的问题 ID")
		return
	}

	var req dto.CreateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	answer, err := h.questionService.CreateAnswer(c.Request.Context(), userID, questionID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuestionNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "回答成功", answer)
}

// Upvote 给回答点赞
// POST /api/v1/answers/:id/upvote
func (h *QuestionHandler) Upvote(c *gin.Context) {
	if _, ok := middleware.GetUserID(c); !ok {
		response.AuthError(c, "请先登录")
		return
	}

	answerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的回答 ID")
		return
	}

	count, err := h.voteService.Upvote(c.Request.Context(), answerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAnswerNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, &dto.UpvoteResponse{Upvotes: count})
}
