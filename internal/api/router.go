package api

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/qa_board_server/config"
	"github.com/qs3c/qa_board_server/internal/api/handler"
	"github.com/qs3c/qa_board_server/internal/api/middleware"
	"github.com/qs3c/qa_board_server/internal/service"
)

type Router struct {
	authHandler         *handler.AuthHandler
	userHandler         *handler.UserHandler
	questionHandler     *handler.QuestionHandler
	verificationHandler *handler.VerificationHandler
	websocketHandler    *handler.WebSocketHandler
	policyService       *service.PolicyService
	cfg                 *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	questionHandler *handler.QuestionHandler,
	verificationHandler *handler.VerificationHandler,
	websocketHandler *handler.WebSocketHandler,
	policyService *service.PolicyService,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:         authHandler,
		userHandler:         userHandler,
		questionHandler:     questionHandler,
		verificationHandler: verificationHandler,
		websocketHandler:    websocketHandler,
		policyService:       policyService,
		cfg:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))
	engine.Use(middleware.MobileWindow(r.policyService))

	api := engine.Group("/api/v1")
	{
		// WebSocket
		api.GET("/ws", r.websocketHandler.Handle)

		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.POST("/forgot-password", r.authHandler.ForgotPassword)
			auth.GET("/github", r.authHandler.GithubAuth)
			auth.GET("/github/callback", r.authHandler.GithubCallback)
		}

		// 公开接口 - 问答板列表
		api.GET("/questions", r.questionHandler.List)

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			// 用户
			user := authenticated.Group("/user")
			{
				user.GET("/profile", r.userHandler.GetProfile)
				user.PUT("/language", r.userHandler.UpdateLanguage)
				user.GET("/login-history", r.userHandler.LoginHistory)
				user.POST("/points/transfer", r.userHandler.Transfer)
			}

			// 问答
			authenticated.POST("/questions", r.questionHandler.Create)
			authenticated.POST("/questions/:id/answers", r.questionHandler.CreateAnswer)
			authenticated.POST("/answers/:id/upvote", r.questionHandler.Upvote)

			// 上传前验证
			verification := authenticated.Group("/verification")
			{
				verification.POST("/issue", r.verificationHandler.Issue)
				verification.POST("/verify", r.verificationHandler.Verify)
			}
		}
	}

	return engine
}
