package model

import (
	"time"
)

// LoginHistory 登录历史，每次成功登录追加一条
type LoginHistory struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	UserID     int64     `gorm:"not null;index" json:"user_id"`
	DeviceType string    `gorm:"size:20" json:"device_type"`
	Browser    string    `gorm:"size:50" json:"browser"`
	OS         string    `gorm:"column:os;size:50" json:"os"`
	IPAddress  string    `gorm:"size:50" json:"ip_address"`
	CreatedAt  time.Time `gorm:"index" json:"login_time"`
}

func (LoginHistory) TableName() string {
	return "login_history"
}
