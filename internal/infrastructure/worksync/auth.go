package worksync

import (
	"context"
	"fmt"
	"net/http"

	"github.com/worksync/session-agent/internal/core/domain"
	"github.com/worksync/session-agent/internal/core/ports"
)

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// Login exchanges credentials for a token. It needs no stored session.
func (c *Client) Login(ctx context.Context, email, password string, remember bool) (*ports.LoginResult, error) {
	var res ports.LoginResult
	err := c.do(ctx, http.MethodPost, "/api/auth/login", "", loginRequest{Email: email, Password: password, RememberMe: remember}, &res)
	if err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, fmt.Errorf("login: backend returned no token")
	}
	return &res, nil
}

// CurrentUser validates token and returns the profile it belongs to.
func (c *Client) CurrentUser(ctx context.Context, token string) (*domain.UserProfile, error) {
	var user domain.UserProfile
	if err := c.do(ctx, http.MethodGet, "/api/auth/user", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
