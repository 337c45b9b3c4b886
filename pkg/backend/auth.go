package backend

import (
	"context"
	"errors"
	"net/http"
)

// LoginResult is the backend's answer to a successful login
type LoginResult struct {
	Token    string
	Roles    []string
	Username string
}

// Register creates a backend user account. Credentials pass through
// untouched; this layer never stores or hashes them.
func (c *Client) Register(ctx context.Context, username, password string) error {
	body := map[string]interface{}{
		"username": username,
		"password": password,
		"enabled":  true,
	}
	return c.doJSON(ctx, http.MethodPost, "/usuarios", "", body, nil)
}

// Login exchanges credentials for a bearer token. The backend spells the
// token field either "access_token" or "token" depending on version; both
// are accepted.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}

	var resp struct {
		AccessToken string   `json:"access_token"`
		Token       string   `json:"token"`
		Roles       []string `json:"roles"`
		Username    string   `json:"username"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/login", "", body, &resp); err != nil {
		return nil, err
	}

	token := resp.AccessToken
	if token == "" {
		token = resp.Token
	}
	if token == "" {
		return nil, errors.New("login response carried no token")
	}

	if resp.Username != "" {
		username = resp.Username
	}
	return &LoginResult{Token: token, Roles: resp.Roles, Username: username}, nil
}
