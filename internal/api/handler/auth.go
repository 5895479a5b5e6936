package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/qa_board_server/internal/model/dto"
	"github.com/qs3c/qa_board_server/internal/pkg/oauth"
	"github.com/qs3c/qa_board_server/internal/pkg/response"
	"github.com/qs3c/qa_board_server/internal/service"
)

type AuthHandler struct {
	authService  *service.AuthService
	resetService *service.PasswordResetService
	stateStore   *oauth.StateStore
}

func NewAuthHandler(authService *service.AuthService, resetService *service.PasswordResetService, stateStore *oauth.StateStore) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		resetService: resetService,
		stateStore:   stateStore,
	}
}

// Register 用户注册
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailExists):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrUsernameExists):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "注册成功", resp)
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.authService.Login(&req, c.GetHeader("User-Agent"), c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.AuthError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "登录成功", resp)
}

// ForgotPassword 找回密码，生成新密码发到注册邮箱
// POST /api/v1/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	err := h.resetService.RequestReset(c.Request.Context(), req.Email, req.Phone)
	if err != nil {
		var rateErr *service.RateLimitedError
		switch {
		case errors.Is(err, service.ErrResetUserNotFound):
			response.ParamError(c, err.Error())
		case errors.As(err, &rateErr):
			response.RateLimitedError(c, rateErr.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, &dto.ForgotPasswordResponse{Delivered: true})
}

// GithubAuth 跳转 GitHub 授权页
// GET /api/v1/auth/github
func (h *AuthHandler) GithubAuth(c *gin.Context) {
	state, err := h.stateStore.GenerateState(c.Request.Context(), c.Query("redirect_uri"))
	if err != nil {
		response.ServerError(c, "")
		return
	}

	c.Redirect(302, h.authService.GetGithubAuthURL(state))
}

// GithubCallback GitHub OAuth 回调
// GET /api/v1/auth/github/callback
func (h *AuthHandler) GithubCallback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		response.ParamError(c, "缺少 state 或 code")
		return
	}

	if _, err := h.stateStore.ValidateState(c.Request.Context(), state); err != nil {
		response.AuthError(c, "state 无效或已过期")
		return
	}

	resp, err := h.authService.GithubCallback(c.Request.Context(), code, c.GetHeader("User-Agent"), c.ClientIP())
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "登录成功", resp)
}
