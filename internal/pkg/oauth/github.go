package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

const defaultAPIBaseURL = "https://api.github.com"

// GithubUser 建号用到的 GitHub 账号字段
type GithubUser struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Email string `json:"email"`
}

// GithubOAuth GitHub 授权登录。
// 用户把邮箱设为私密时 Email 可能为空，调用方自行兜底。
type GithubOAuth struct {
	config     *oauth2.Config
	apiBaseURL string
}

func NewGithubOAuth(clientID, clientSecret, redirectURI string) *GithubOAuth {
	return &GithubOAuth{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       []string{"user:email"},
			Endpoint:     github.Endpoint,
		},
		apiBaseURL: defaultAPIBaseURL,
	}
}

// GetAuthURL 拼出带 state 的授权跳转地址
func (g *GithubOAuth) GetAuthURL(state string) string {
	return g.config.AuthCodeURL(state)
}

// Exchange 用授权码换取 access token
func (g *GithubOAuth) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return g.config.Exchange(ctx, code)
}

// GetUser 拉取 GitHub 账号信息。
// 公开邮箱为空时再查一次主邮箱，查不到不算错误，Email 留空。
func (g *GithubOAuth) GetUser(ctx context.Context, token *oauth2.Token) (*GithubUser, error) {
	client := g.config.Client(ctx, token)

	resp, err := client.Get(g.apiBaseURL + "/user")
	if err != nil {
		return nil, fmt.Errorf("failed to get github user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("github api status %d: %s", resp.StatusCode, string(body))
	}

	var user GithubUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode github user: %w", err)
	}

	if user.Email == "" {
		if email, err := g.getPrimaryEmail(client); err == nil {
			user.Email = email
		}
	}

	return &user, nil
}

// getPrimaryEmail 查 user:email scope 下的邮箱列表，优先主邮箱
func (g *GithubOAuth) getPrimaryEmail(client *http.Client) (string, error) {
	resp, err := client.Get(g.apiBaseURL + "/user/emails")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var emails []struct {
		Email   string `json:"email"`
		Primary bool   `json:"primary"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&emails); err != nil {
		return "", err
	}

	for _, e := range emails {
		if e.Primary {
			return e.Email, nil
		}
	}
	if len(emails) > 0 {
		return emails[0].Email, nil
	}
	return "", nil
}
