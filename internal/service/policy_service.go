package service

import (
	"errors"
	"time"

	"github.com/qs3c/qa_board_server/config"
	"github.com/qs3c/qa_board_server/internal/pkg/timewindow"
)

var (
	ErrUploadWindowClosed = errors.New("当前时段不允许上传")
	ErrMobileWindowClosed = errors.New("当前时段不允许移动端访问")
)

// PolicyService 根据服务器本地时间判定各类时段策略
type PolicyService struct {
	uploadWindow timewindow.Window
	mobileWindow timewindow.Window
}

func NewPolicyService(cfg *config.Config) *PolicyService {
	return &PolicyService{
		uploadWindow: timewindow.New(cfg.Policy.UploadStartHour, cfg.Policy.UploadEndHour),
		mobileWindow: timewindow.New(cfg.Policy.MobileStartHour, cfg.Policy.MobileEndHour),
	}
}

// CheckUploadAllowed 检查提问（含视频上传）是否处于开放时段
func (s *PolicyService) CheckUploadAllowed(now time.Time) error {
	if !s.uploadWindow.Contains(now) {
		return ErrUploadWindowClosed
	}
	return nil
}

// CheckMobileAllowed 检查移动端访问是否处于开放时段
func (s *PolicyService) CheckMobileAllowed(now time.Time) error {
	if !s.mobileWindow.Contains(now) {
		return ErrMobileWindowClosed
	}
	return nil
}

// UploadWindow 返回上传时段配置，供前端展示
func (s *PolicyService) UploadWindow() (startHour, endHour int) {
	return s.uploadWindow.StartHour, s.uploadWindow.EndHour
}
