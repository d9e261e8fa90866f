// Package authapi calls the account endpoints. The auth server itself is not
// part of this client; this package only obtains a credential and hands it to
// the session store.
package authapi

import (
	"context"
	"fmt"
	"net/http"

	"task-manager/client/internal/session"
	"task-manager/client/internal/transport"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username,omitempty"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type Client struct {
	client *transport.Client
	store  session.Store
}

func NewClient(client *transport.Client, store session.Store) *Client {
	return &Client{client: client, store: store}
}

// Register creates an account and signs the new user in by storing the
// returned credential.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (Token, error) {
	var token Token
	if err := c.client.Do(ctx, http.MethodPost, "/auth/register", req, &token); err != nil {
		return Token{}, err
	}
	if err := c.store.SetToken(ctx, token.AccessToken); err != nil {
		return Token{}, fmt.Errorf("registered but failed to store credential: %w", err)
	}
	return token, nil
}

// Login exchanges credentials for a token and stores it.
func (c *Client) Login(ctx context.Context, creds Credentials) (Token, error) {
	var token Token
	if err := c.client.Do(ctx, http.MethodPost, "/auth/login", creds, &token); err != nil {
		return Token{}, err
	}
	if err := c.store.SetToken(ctx, token.AccessToken); err != nil {
		return Token{}, fmt.Errorf("logged in but failed to store credential: %w", err)
	}
	return token, nil
}

// Logout clears the stored credential. Purely local; the server keeps no
// session state for bearer tokens.
func (c *Client) Logout(ctx context.Context) error {
	return c.store.Clear(ctx)
}
