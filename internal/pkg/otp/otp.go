package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"
)

var (
	ErrChallengeState   = errors.New("验证流程状态错误")
	ErrChallengeExpired = errors.New("验证码已过期")
	ErrCodeMismatch     = errors.New("验证码错误")
	ErrPermitConsumed   = errors.New("验证结果已被使用")
)

// State 挑战状态
type State int

const (
	StateIdle State = iota
	StateIssued
	StateVerified
	StateExpired
)

// Challenge 单次敏感操作的一次性验证码挑战。
// 每个上传流程持有独立实例，不跨请求共享；流程结束即丢弃。
type Challenge struct {
	state    State
	code     string
	issuedAt time.Time
	expiry   time.Duration
	consumed bool
}

func NewChallenge(expiry time.Duration) *Challenge {
	return &Challenge{state: StateIdle, expiry: expiry}
}

// GenerateCode 生成指定位数的随机数字验证码
func GenerateCode(length int) (string, error) {
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate code: %w", err)
		}
		code[i] = byte('0' + n.Int64())
	}
	return string(code), nil
}

// Issue 下发新验证码。重复下发会替换旧码，旧码立即失效。
func (c *Challenge) Issue(now time.Time, length int) (string, error) {
	code, err := GenerateCode(length)
	if err != nil {
		return "", err
	}
	c.code = code
	c.issuedAt = now
	c.state = StateIssued
	c.consumed = false
	return code, nil
}

// Verify 校验候选码。只在 Issued 状态合法；
// 超时转入 Expired 必须重新下发，输错保持 Issued 可重试。
func (c *Challenge) Verify(candidate string, now time.Time) error {
	if c.state != StateIssued {
		return ErrChallengeState
	}
	if now.Sub(c.issuedAt) >= c.expiry {
		c.state = StateExpired
		return ErrChallengeExpired
	}
	if candidate != c.code {
		return ErrCodeMismatch
	}
	c.state = StateVerified
	return nil
}

// Consume 消费验证结果，放行一次受保护操作。只能成功一次。
func (c *Challenge) Consume() error {
	if c.state != StateVerified {
		return ErrChallengeState
	}
	if c.consumed {
		return ErrPermitConsumed
	}
	c.consumed = true
	return nil
}

// State 当前状态
func (c *Challenge) State() State {
	return c.state
}

// ExpiresAt 过期时刻，未下发时为零值
func (c *Challenge) ExpiresAt() time.Time {
	if c.state == StateIdle {
		return time.Time{}
	}
	return c.issuedAt.Add(c.expiry)
}
