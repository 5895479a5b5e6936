package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/qa_board_server/internal/api/middleware"
	"github.com/qs3c/qa_board_server/internal/model/dto"
	"github.com/qs3c/qa_board_server/internal/pkg/response"
	"github.com/qs3c/qa_board_server/internal/service"
)

type UserHandler struct {
	userService   *service.UserService
	pointsService *service.PointsService
}

func NewUserHandler(userService *service.UserService, pointsService *service.PointsService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		pointsService: pointsService,
	}
}

// GetProfile 获取个人中心信息
// GET /api/v1/user/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "请先登录")
		return
	}

	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, profile)
}

// UpdateLanguage 修改界面语言
// PUT /api/v1/user/language
func (h *UserHandler) UpdateLanguage(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "请先登录")
		return
	}

	var req dto.UpdateLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	if err := h.userService.UpdateLanguage(userID, req.Language); err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedLanguage):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "语言已更新", nil)
}

// Transfer 积分转赠
// POST /api/v1/user/points/transfer
func (h *UserHandler) Transfer(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "请先登录")
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	remaining, err := h.pointsService.Transfer(userID, req.RecipientEmail, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAmountNotPositive),
			errors.Is(err, service.ErrSelfTransfer),
			errors.Is(err, service.ErrRecipientNotFound),
			errors.Is(err, service.ErrInsufficientStanding),
			errors.Is(err, service.ErrInsufficientAmount):
			response.LedgerError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "转赠成功", &dto.TransferResponse{RemainingPoints: remaining})
}

// LoginHistory 查询最近登录历史
// GET /api/v1/user/login-history
func (h *UserHandler) LoginHistory(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "请先登录")
		return
	}

	items, err := h.userService.ListLoginHistory(userID, 20)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, items)
}
