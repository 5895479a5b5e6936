package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/qa_board_server/internal/api/middleware"
	"github.com/qs3c/qa_board_server/internal/model/dto"
	"github.com/qs3c/qa_board_server/internal/pkg/otp"
	"github.com/qs3c/qa_board_server/internal/pkg/response"
	"github.com/qs3c/qa_board_server/internal/service"
)

type VerificationHandler struct {
	verificationService *service.VerificationService
}

func NewVerificationHandler(verificationService *service.VerificationService) *VerificationHandler {
	return &VerificationHandler{
		verificationService: verificationService,
	}
}

// Issue 开启验证流程，验证码发到注册邮箱
// POST /api/v1/verification/issue
func (h *VerificationHandler) Issue(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "请先登录")
		return
	}

	challengeID, expiresAt, err := h.verificationService.Issue(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoEmailBound) {
			response.ParamError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, &dto.IssueChallengeResponse{
		ChallengeID: challengeID,
		ExpiresAt:   expiresAt.Format(time.RFC3339),
	})
}

// Verify 校验验证码
// POST /api/v1/verification/verify
func (h *VerificationHandler) Verify(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "请先登录")
		return
	}

	var req dto.VerifyChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	err := h.verificationService.Verify(userID, req.ChallengeID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChallengeNotFound),
			errors.Is(err, otp.ErrChallengeExpired),
			errors.Is(err, otp.ErrCodeMismatch),
			errors.Is(err, otp.ErrChallengeState):
			response.VerifyError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, &dto.VerifyChallengeResponse{Verified: true})
}
