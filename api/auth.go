package api

import (
	"context"
	"net/http"
)

// credentials is the login/registration request body. The backend's field
// name for the secret is "haslo".
type credentials struct {
	Email  string `json:"email"`
	Secret string `json:"haslo"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token. The token is returned raw;
// decoding and storage are the session's concern.
func (c *Client) Login(ctx context.Context, email, secret string) (string, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", credentials{Email: email, Secret: secret}, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Register creates a new account. It does not log the user in.
func (c *Client) Register(ctx context.Context, email, secret string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register", credentials{Email: email, Secret: secret}, nil)
}
