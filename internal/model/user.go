package model

import (
	"time"
)

// SupportedLanguages 界面语言白名单
var SupportedLanguages = []string{"en", "es", "hi", "pt", "zh", "fr"}

// IsSupportedLanguage 校验语言代码是否在白名单内
func IsSupportedLanguage(code string) bool {
	for _, l := range SupportedLanguages {
		if l == code {
			return true
		}
	}
	return false
}

type User struct {
	ID                 int64      `gorm:"primaryKey" json:"id"`
	Username           string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email              *string    `gorm:"size:100;uniqueIndex" json:"email,omitempty"`
	Phone              *string    `gorm:"size:30;uniqueIndex" json:"-"`
	PasswordHash       *string    `gorm:"size:255" json:"-"`
	GithubID           *string    `gorm:"column:github_id;size:50;uniqueIndex" json:"-"`
	Points             int        `gorm:"not null;default:0" json:"points"`
	PreferredLanguage  string     `gorm:"size:10;default:en" json:"preferred_language"`
	PasswordResetCount int        `gorm:"default:0" json:"-"`
	PasswordResetAt    *time.Time `json:"-"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
