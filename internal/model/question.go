package model

import (
	"time"
)

type Question struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	VideoURL  string    `gorm:"size:500" json:"video_url,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// 关联
	User    *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Answers []*Answer `gorm:"foreignKey:QuestionID" json:"answers,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}
