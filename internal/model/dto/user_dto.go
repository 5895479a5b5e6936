package dto

// ProfileResponse 个人中心响应
type ProfileResponse struct {
	ID                int64  `json:"id"`
	Username          string `json:"username"`
	Email             string `json:"email,omitempty"`
	Points            int    `json:"points"`
	PreferredLanguage string `json:"preferred_language"`
	CreatedAt         string `json:"created_at"`
}

// UpdateLanguageRequest 修改界面语言请求
type UpdateLanguageRequest struct {
	Language string `json:"language" binding:"required"`
}

// TransferRequest 积分转赠请求
type TransferRequest struct {
	RecipientEmail string `json:"recipient_email" binding:"required,email"`
	Amount         int    `json:"amount" binding:"required"`
}

// TransferResponse 积分转赠响应
type TransferResponse struct {
	RemainingPoints int `json:"remaining_points"`
}

// LoginHistoryItem 登录历史条目
type LoginHistoryItem struct {
	DeviceType string `json:"device_type"`
	Browser    string `json:"browser"`
	OS         string `json:"os"`
	IPAddress  string `json:"ip_address"`
	LoginTime  string `json:"login_time"`
}
