package dto

// CreateQuestionRequest 提问请求（multipart，视频可选）
type CreateQuestionRequest struct {
	Title       string `form:"title" binding:"required,max=200"`
	Content     string `form:"content" binding:"required"`
	ChallengeID string `form:"challenge_id"` // 携带视频时必填，指向已验证的挑战
}

// CreateQuestionResponse 提问响应
type CreateQuestionResponse struct {
	QuestionID int64  `json:"question_id"`
	VideoURL   string `json:"video_url,omitempty"`
}

// CreateAnswerRequest 回答请求
type CreateAnswerRequest struct {
	Content string `json:"content" binding:"required"`
}

// AnswerView 回答视图（含作者展示字段）
type AnswerView struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	Upvotes   int    `json:"upvotes"`
	Author    string `json:"author"`
	CreatedAt string `json:"created_at"`
}

// QuestionView 问题视图，快照中的基本单元
type QuestionView struct {
	ID        int64         `json:"id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	VideoURL  string        `json:"video_url,omitempty"`
	Author    string        `json:"author"`
	CreatedAt string        `json:"created_at"`
	Answers   []*AnswerView `json:"answers"`
}

// UpvoteResponse 点赞响应，计数仅为即时参考值
type UpvoteResponse struct {
	Upvotes int `json:"upvotes"`
}
