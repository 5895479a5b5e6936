package dto

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=32"`
}

// RegisterResponse 注册响应
type RegisterResponse struct {
	UserID int64 `json:"user_id"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}

// ForgotPasswordRequest 找回密码请求，邮箱或手机号二选一
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone" binding:"omitempty,max=30"`
}

// ForgotPasswordResponse 找回密码响应
type ForgotPasswordResponse struct {
	Delivered bool `json:"delivered"`
}

// UserInfo 用户信息（返回给前端）
type UserInfo struct {
	ID                int64  `json:"id"`
	Username          string `json:"username"`
	Email             string `json:"email,omitempty"`
	Points            int    `json:"points"`
	PreferredLanguage string `json:"preferred_language"`
	CreatedAt         string `json:"created_at,omitempty"`
}
