package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/qa_board_server/config"
	"github.com/qs3c/qa_board_server/internal/model/dto"
	"github.com/qs3c/qa_board_server/internal/pkg/response"
	"github.com/qs3c/qa_board_server/internal/repository"
	"github.com/qs3c/qa_board_server/internal/service"
	"github.com/qs3c/qa_board_server/internal/testutil"
)

func setupUserHandler(t *testing.T) (*UserHandler, *testContext, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	historyRepo := repository.NewLoginHistoryRepository(db)

	cfg := &config.Config{
		Points: config.PointsConfig{MinStandingBalance: 10},
	}

	userService := service.NewUserService(userRepo, historyRepo)
	pointsService := service.NewPointsService(userRepo, repository.NewTransferRepository(db), cfg)
	h := NewUserHandler(userService, pointsService)

	ctx := &testContext{DB: db}
	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}
	return h, ctx, cleanup
}

func TestUserHandler_GetProfile_Success(t *testing.T) {
	h, ctx, cleanup := setupUserHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB, testutil.WithUsername("profileuser"), testutil.WithPoints(7))

	router := gin.New()
	router.Use(mockAuth(user.ID))
	router.GET("/profile", h.GetProfile)

	req := httptest.NewRequest("GET", "/profile", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "profileuser", data["username"])
	assert.Equal(t, float64(7), data["points"])
}

func TestUserHandler_GetProfile_Unauthorized(t *testing.T) {
	h, _, cleanup := setupUserHandler(t)
	defer cleanup()

	router := gin.New()
	router.GET("/profile", h.GetProfile)

	req := httptest.NewRequest("GET", "/profile", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeAuthFailed, resp.Code)
}

func TestUserHandler_UpdateLanguage(t *testing.T) {
	h, ctx, cleanup := setupUserHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)

	router := gin.New()
	router.Use(mockAuth(user.ID))
	router.PUT("/language", h.UpdateLanguage)

	w := performRequest(router, "PUT", "/language", dto.UpdateLanguageRequest{Language: "hi"})
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	w = performRequest(router, "PUT", "/language", dto.UpdateLanguageRequest{Language: "jp"})
	resp = parseResponse(t, w)
	assert.Equal(t, response.CodeParamError, resp.Code)
}

func TestUserHandler_Transfer(t *testing.T) {
	h, ctx, cleanup := setupUserHandler(t)
	defer cleanup()

	sender := testutil.TestUser(t, ctx.DB, testutil.WithUsername("sender"), testutil.WithEmail("sender@example.com"), testutil.WithPoints(10))
	testutil.TestUser(t, ctx.DB, testutil.WithUsername("recipient"), testutil.WithEmail("recipient@example.com"))

	router := gin.New()
	router.Use(mockAuth(sender.ID))
	router.POST("/transfer", h.Transfer)

	w := performRequest(router, "POST", "/transfer", dto.TransferRequest{
		RecipientEmail: "recipient@example.com",
		Amount:         10,
	})
	resp := parseResponse(t, w)
	require.Equal(t, response.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(0), data["remaining_points"])
}

func TestUserHandler_Transfer_Rejected(t *testing.T) {
	h, ctx, cleanup := setupUserHandler(t)
	defer cleanup()

	sender := testutil.TestUser(t, ctx.DB, testutil.WithUsername("sender"), testutil.WithEmail("sender@example.com"), testutil.WithPoints(5))
	testutil.TestUser(t, ctx.DB, testutil.WithUsername("recipient"), testutil.WithEmail("recipient@example.com"))

	router := gin.New()
	router.Use(mockAuth(sender.ID))
	router.POST("/transfer", h.Transfer)

	// 低于转赠门槛
	w := performRequest(router, "POST", "/transfer", dto.TransferRequest{
		RecipientEmail: "recipient@example.com",
		Amount:         1,
	})
	resp := parseResponse(t, w)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeLedgerRejected, resp.Code)
}

func TestUserHandler_LoginHistory(t *testing.T) {
	h, ctx, cleanup := setupUserHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)

	router := gin.New()
	router.Use(mockAuth(user.ID))
	router.GET("/login-history", h.LoginHistory)

	req := httptest.NewRequest("GET", "/login-history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)
}
