package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// A GoogleAuthority treats access tokens as Google OAuth access tokens
// and resolves them into the Google user they were granted for.
type GoogleAuthority struct {
	config *oauth2.Config
	opts   []option.ClientOption
}

// NewGoogleAuthority constructs a *GoogleAuthority for the OAuth client.
// opts are passed to the Google API client, e.g., to point it elsewhere in tests.
func NewGoogleAuthority(clientID, secret string, opts ...option.ClientOption) (*GoogleAuthority, error) {
	if clientID == "" || secret == "" {
		return nil, fmt.Errorf(`%w: google client config cannot be ""`, ErrNotValid)
	}

	return &GoogleAuthority{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: secret,
			Scopes:       []string{goauth2.UserinfoEmailScope},
			Endpoint:     google.Endpoint,
		},
		opts: opts,
	}, nil
}

// Fetch retrieves the userinfo for token.
func (a *GoogleAuthority) Fetch(ctx context.Context, token string) (Identity, error) {
	ts := a.config.TokenSource(ctx, &oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	service, err := goauth2.NewService(ctx, append([]option.ClientOption{option.WithTokenSource(ts)}, a.opts...)...)
	if err != nil {
		return nil, err
	}

	user, err := service.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && (gerr.Code == http.StatusUnauthorized || gerr.Code == http.StatusForbidden) {
			reason := gerr.Message
			if reason == "" {
				reason = http.StatusText(gerr.Code)
			}

			return nil, Reject(reason)
		}

		return nil, err
	}

	return &Client{
		ID:   user.Id,
		Data: map[string]any{"email": user.Email, "name": user.Name},
	}, nil
}
