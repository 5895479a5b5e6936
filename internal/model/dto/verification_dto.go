package dto

// IssueChallengeResponse 下发验证码响应
type IssueChallengeResponse struct {
	ChallengeID string `json:"challenge_id"`
	ExpiresAt   string `json:"expires_at"`
}

// VerifyChallengeRequest 校验验证码请求
type VerifyChallengeRequest struct {
	ChallengeID string `json:"challenge_id" binding:"required"`
	Code        string `json:"code" binding:"required"`
}

// VerifyChallengeResponse 校验验证码响应
type VerifyChallengeResponse struct {
	Verified bool `json:"verified"`
}
