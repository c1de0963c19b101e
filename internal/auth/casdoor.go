package auth

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"golang.org/x/oauth2"
)

// CasdoorConfig holds the application registration on a Casdoor server.
type CasdoorConfig struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	Certificate  string
	Organization string
	Application  string
	RedirectURL  string
}

// Configured reports whether enough is set to attempt a sign-in.
func (c CasdoorConfig) Configured() bool {
	return c.Endpoint != "" && c.ClientID != "" && c.ClientSecret != ""
}

// TokenClient is the subset of the Casdoor SDK client used for sign-in.
type TokenClient interface {
	GetOAuthToken(code string, state string) (*oauth2.Token, error)
	ParseJwtToken(token string) (*casdoorsdk.Claims, error)
}

// Casdoor signs users in with the OAuth authorization-code flow.
type Casdoor struct {
	cfg    CasdoorConfig
	client TokenClient
}

// NewCasdoor creates a Casdoor provider backed by the SDK client.
func NewCasdoor(cfg CasdoorConfig) *Casdoor {
	client := casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Certificate,
		cfg.Organization,
		cfg.Application,
	)
	return NewCasdoorWithClient(cfg, client)
}

// NewCasdoorWithClient creates a Casdoor provider with a custom token client.
func NewCasdoorWithClient(cfg CasdoorConfig, client TokenClient) *Casdoor {
	return &Casdoor{cfg: cfg, client: client}
}

// SigninURL returns the authorize URL the user opens in a browser. The
// code it redirects back with is passed to WithCode.
func (c *Casdoor) SigninURL(state string) string {
	q := url.Values{}
	q.Set("client_id", c.cfg.ClientID)
	q.Set("response_type", "code")
	q.Set("redirect_uri", c.cfg.RedirectURL)
	q.Set("scope", "read")
	q.Set("state", state)
	return strings.TrimRight(c.cfg.Endpoint, "/") + "/login/oauth/authorize?" + q.Encode()
}

// WithCode returns an Authenticator that exchanges code for an identity.
func (c *Casdoor) WithCode(code, state string) Authenticator {
	return &codeExchange{provider: c, code: strings.TrimSpace(code), state: state}
}

type codeExchange struct {
	provider *Casdoor
	code     string
	state    string
}

type exchangeResult struct {
	id  Identity
	err error
}

// Authenticate exchanges the code. The SDK calls do not take a context, so
// they run in a goroutine and ctx only bounds how long the caller waits.
func (e *codeExchange) Authenticate(ctx context.Context) (Identity, error) {
	if e.code == "" {
		return Identity{}, failf(nil, "Sign-in code is empty. Paste the code from the sign-in page.")
	}

	done := make(chan exchangeResult, 1)
	go func() {
		id, err := e.exchange()
		done <- exchangeResult{id: id, err: err}
	}()

	select {
	case <-ctx.Done():
		return Identity{}, failf(ctx.Err(), "Sign-in timed out. Please try again.")
	case r := <-done:
		return r.id, r.err
	}
}

func (e *codeExchange) exchange() (Identity, error) {
	token, err := e.provider.client.GetOAuthToken(e.code, e.state)
	if err != nil {
		return Identity{}, failf(err, "Sign-in failed: the code was rejected or has expired.")
	}
	if token == nil || token.AccessToken == "" {
		return Identity{}, failf(errors.New("empty access token"), "Sign-in failed: the server returned no token.")
	}

	claims, err := e.provider.client.ParseJwtToken(token.AccessToken)
	if err != nil {
		return Identity{}, failf(err, "Sign-in failed: the server returned an invalid token.")
	}

	u := claims.User
	if u.Name == "" {
		return Identity{}, failf(errors.New("token has no user name"), "Sign-in failed: your account has no login name.")
	}
	return Identity{
		ID:          u.Id,
		Login:       u.Name,
		DisplayName: u.DisplayName,
		AvatarURL:   u.Avatar,
	}, nil
}
