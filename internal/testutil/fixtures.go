package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/qa_board_server/internal/model"
)

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	email := fmt.Sprintf("test_%d@example.com", time.Now().UnixNano())
	passwordHash := "$2a$10$abcdefghijklmnopqrstuvwxyz123456" // bcrypt hash placeholder
	user := &model.User{
		Username:          fmt.Sprintf("testuser_%d", time.Now().UnixNano()%1000000),
		Email:             &email,
		PasswordHash:      &passwordHash,
		Points:            0,
		PreferredLanguage: "en",
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithUsername 设置用户名
func WithUsername(username string) func(*model.User) {
	return func(u *model.User) {
		u.Username = username
	}
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = &email
	}
}

// WithoutEmail 清空邮箱（GitHub 登录创建的账号）
func WithoutEmail() func(*model.User) {
	return func(u *model.User) {
		u.Email = nil
	}
}

// WithPhone 设置手机号
func WithPhone(phone string) func(*model.User) {
	return func(u *model.User) {
		u.Phone = &phone
	}
}

// WithPoints 设置积分余额
func WithPoints(points int) func(*model.User) {
	return func(u *model.User) {
		u.Points = points
	}
}

// WithLanguage 设置界面语言
func WithLanguage(language string) func(*model.User) {
	return func(u *model.User) {
		u.PreferredLanguage = language
	}
}

// WithResetState 设置限流状态
func WithResetState(count int, lastReset time.Time) func(*model.User) {
	return func(u *model.User) {
		u.PasswordResetCount = count
		u.PasswordResetAt = &lastReset
	}
}

// TestQuestion 创建测试问题
func TestQuestion(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Question)) *model.Question {
	t.Helper()

	question := &model.Question{
		UserID:  userID,
		Title:   fmt.Sprintf("Test Question %d", time.Now().UnixNano()%1000000),
		Content: "How does this work?",
	}

	for _, opt := range opts {
		opt(question)
	}

	if err := db.Create(question).Error; err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}

	return question
}

// WithTitle 设置问题标题
func WithTitle(title string) func(*model.Question) {
	return func(q *model.Question) {
		q.Title = title
	}
}

// WithVideoURL 设置视频地址
func WithVideoURL(url string) func(*model.Question) {
	return func(q *model.Question) {
		q.VideoURL = url
	}
}

// WithQuestionCreatedAt 设置创建时间（排序用例）
func WithQuestionCreatedAt(at time.Time) func(*model.Question) {
	return func(q *model.Question) {
		q.CreatedAt = at
	}
}

// TestAnswer 创建测试回答
func TestAnswer(t *testing.T, db *gorm.DB, userID, questionID int64, opts ...func(*model.Answer)) *model.Answer {
	t.Helper()

	answer := &model.Answer{
		QuestionID: questionID,
		UserID:     userID,
		Content:    "Here is how it works.",
	}

	for _, opt := range opts {
		opt(answer)
	}

	if err := db.Create(answer).Error; err != nil {
		t.Fatalf("Failed to create test answer: %v", err)
	}

	return answer
}

// WithUpvotes 设置点赞数
func WithUpvotes(upvotes int) func(*model.Answer) {
	return func(a *model.Answer) {
		a.Upvotes = upvotes
	}
}

// WithAnswerCreatedAt 设置创建时间（排序用例）
func WithAnswerCreatedAt(at time.Time) func(*model.Answer) {
	return func(a *model.Answer) {
		a.CreatedAt = at
	}
}

// TestLoginHistory 创建测试登录记录
func TestLoginHistory(t *testing.T, db *gorm.DB, userID int64, at time.Time) *model.LoginHistory {
	t.Helper()

	entry := &model.LoginHistory{
		UserID:     userID,
		DeviceType: "desktop",
		Browser:    "Chrome",
		OS:         "Linux",
		IPAddress:  "127.0.0.1",
		CreatedAt:  at,
	}

	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("Failed to create test login history: %v", err)
	}

	return entry
}
