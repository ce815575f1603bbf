package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"storefront-client/internal/model"
)

// Login handles POST /api/auth/login.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (*model.AuthResult, error) {
	raw, err := c.do(ctx, call{
		method:             http.MethodPost,
		path:               PathLogin,
		body:               creds,
		credentialExchange: true,
	})
	if err != nil {
		return nil, err
	}
	return decodeAuth(raw)
}

// Register handles POST /api/auth/register.
func (c *Client) Register(ctx context.Context, reg model.Registration) (*model.AuthResult, error) {
	raw, err := c.do(ctx, call{
		method:             http.MethodPost,
		path:               PathRegister,
		body:               reg,
		credentialExchange: true,
	})
	if err != nil {
		return nil, err
	}
	return decodeAuth(raw)
}

// decodeAuth accepts {data:{user,token}} as well as a bare {user,token}.
func decodeAuth(raw json.RawMessage) (*model.AuthResult, error) {
	result, err := decodeObject[model.AuthResult](raw, "data")
	if err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, fmt.Errorf("auth response carries no token")
	}
	return result, nil
}
