package service

import (
	"errors"
	"time"

	"github.com/qs3c/qa_board_server/internal/model"
	"github.com/qs3c/qa_board_server/internal/model/dto"
	"github.com/qs3c/qa_board_server/internal/repository"
)

var ErrUnsupportedLanguage = errors.New("不支持的语言")

type UserService struct {
	userRepo    *repository.UserRepository
	historyRepo *repository.LoginHistoryRepository
}

func NewUserService(userRepo *repository.UserRepository, historyRepo *repository.LoginHistoryRepository) *UserService {
	return &UserService{
		userRepo:    userRepo,
		historyRepo: historyRepo,
	}
}

// GetProfile 获取个人中心信息
func (s *UserService) GetProfile(userID int64) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	profile := &dto.ProfileResponse{
		ID:                user.ID,
		Username:          user.Username,
		Points:            user.Points,
		PreferredLanguage: user.PreferredLanguage,
		CreatedAt:         user.CreatedAt.Format(time.RFC3339),
	}
	if user.Email != nil {
		profile.Email = *user.Email
	}
	return profile, nil
}

// UpdateLanguage 修改界面语言，只接受白名单内的语言代码
func (s *UserService) UpdateLanguage(userID int64, language string) error {
	if !model.IsSupportedLanguage(language) {
		return ErrUnsupportedLanguage
	}
	return s.userRepo.UpdateLanguage(userID, language)
}

// ListLoginHistory 查询最近的登录历史
func (s *UserService) ListLoginHistory(userID int64, limit int) ([]*dto.LoginHistoryItem, error) {
	records, err := s.historyRepo.ListByUser(userID, limit)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.LoginHistoryItem, 0, len(records))
	for _, r := range records {
		items = append(items, &dto.LoginHistoryItem{
			DeviceType: r.DeviceType,
			Browser:    r.Browser,
			OS:         r.OS,
			IPAddress:  r.IPAddress,
			LoginTime:  r.CreatedAt.Format(time.RFC3339),
		})
	}
	return items, nil
}
