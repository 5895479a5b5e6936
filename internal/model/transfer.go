package model

import (
	"time"
)

// PointsTransfer 积分转赠流水，只追加不修改
type PointsTransfer struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	FromUserID int64     `gorm:"not null;index" json:"from_user_id"`
	ToUserID   int64     `gorm:"not null;index" json:"to_user_id"`
	Amount     int       `gorm:"not null" json:"amount"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (PointsTransfer) TableName() string {
	return "points_transfers"
}
