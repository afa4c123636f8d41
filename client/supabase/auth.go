package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sporadisk/selfcare/format"
	"github.com/sporadisk/selfcare/journal"
	"golang.org/x/oauth2"
)

var ErrNoNickname = errors.New("please choose a nickname")

// tokenResponse is what GoTrue returns for sign-in, sign-up and refresh.
// A sign-up that still awaits email confirmation returns only the user, at
// the top level.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`

	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

func (tr *tokenResponse) token(now time.Time) *oauth2.Token {
	if tr.AccessToken == "" {
		return nil
	}

	tok := &oauth2.Token{
		AccessToken:  tr.AccessToken,
		TokenType:    tr.TokenType,
		RefreshToken: tr.RefreshToken,
	}
	if tr.ExpiresIn > 0 {
		tok.Expiry = now.Add(time.Duration(tr.ExpiresIn) * time.Second)
	}
	return tok
}

func (tr *tokenResponse) user() User {
	if tr.User != nil {
		return *tr.User
	}
	return User{ID: tr.ID, Email: tr.Email}
}

type credentials struct {
	Email    string            `json:"email"`
	Password string            `json:"password"`
	Data     map[string]string `json:"data,omitempty"`
}

// SignIn exchanges email and password for a session and stores it.
func (c *Client) SignIn(ctx context.Context, email, password string) (User, error) {
	tr, err := c.tokenRequest(ctx, "password", credentials{Email: email, Password: password})
	if err != nil {
		return User{}, err
	}

	tok := tr.token(c.now())
	if tok == nil {
		return User{}, errors.New("sign-in returned no session")
	}

	s := &Session{Token: tok, User: tr.user()}
	err = c.saveSession(s)
	if err != nil {
		return User{}, fmt.Errorf("saveSession: %w", err)
	}
	return s.User, nil
}

// SignUp registers a new account and creates its profile with the chosen
// nickname. When the backend signs the user in right away the session is
// stored as well.
func (c *Client) SignUp(ctx context.Context, nickname, email, password string) (User, error) {
	if format.IsBlank(nickname) {
		return User{}, ErrNoNickname
	}

	body := credentials{
		Email:    email,
		Password: password,
		Data:     map[string]string{"nickname": nickname},
	}
	resp, err := c.send(ctx, request{
		method:   http.MethodPost,
		endpoint: c.authEndpoint("signup", nil),
		body:     body,
	})
	if err != nil {
		return User{}, fmt.Errorf("signup: %w", err)
	}

	var tr tokenResponse
	err = resp.Decode(&tr)
	if err != nil {
		return User{}, fmt.Errorf("resp.Decode: %w", err)
	}

	user := tr.user()
	tok := tr.token(c.now())
	if tok != nil {
		err = c.saveSession(&Session{Token: tok, User: user})
		if err != nil {
			return User{}, fmt.Errorf("saveSession: %w", err)
		}
	}

	if user.ID == uuid.Nil {
		return user, nil
	}

	bearer := ""
	if tok != nil {
		bearer = tok.AccessToken
	}
	err = c.insertProfile(ctx, bearer, user.ID, nickname)
	if err != nil {
		return user, fmt.Errorf("insertProfile: %w", err)
	}
	return user, nil
}

// SignOut ends the session on the backend and forgets it locally. The local
// session is removed even when the backend call fails.
func (c *Client) SignOut(ctx context.Context) error {
	c.mu.Lock()
	s := c.session
	c.setSession(nil)
	c.mu.Unlock()

	err := c.removeSessionFile()
	if err != nil {
		return fmt.Errorf("removeSessionFile: %w", err)
	}

	if s == nil || s.Token == nil {
		return nil
	}

	_, err = c.send(ctx, request{
		method:   http.MethodPost,
		endpoint: c.authEndpoint("logout", nil),
		bearer:   s.Token.AccessToken,
	})
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (c *Client) tokenRequest(ctx context.Context, grantType string, body any) (*tokenResponse, error) {
	params := url.Values{"grant_type": {grantType}}
	resp, err := c.send(ctx, request{
		method:   http.MethodPost,
		endpoint: c.authEndpoint("token", params),
		body:     body,
	})
	if err != nil {
		return nil, fmt.Errorf("token(%s): %w", grantType, err)
	}

	var tr tokenResponse
	err = resp.Decode(&tr)
	if err != nil {
		return nil, fmt.Errorf("resp.Decode: %w", err)
	}
	return &tr, nil
}

func (c *Client) saveSession(s *Session) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setSession(s)
	return c.storeSessionToFile(s)
}

// accessToken returns a valid access token, refreshing and storing the
// session when the current one has expired. The refresh runs without c.mu
// so CurrentUser never waits on the network.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	c.mu.Lock()
	session := c.session
	c.mu.Unlock()

	if session == nil || session.Token == nil {
		return "", journal.ErrSignedOut
	}

	src := oauth2.ReuseTokenSource(session.Token, &refresher{ctx: ctx, c: c, current: session.Token})
	tok, err := src.Token()
	if err != nil {
		return "", fmt.Errorf("refresh session: %w", err)
	}
	if tok.AccessToken == session.Token.AccessToken {
		return tok.AccessToken, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// a sign-out or sign-in while refreshing wins over the refreshed pair
	if c.session != session {
		if c.session == nil || c.session.Token == nil {
			return "", journal.ErrSignedOut
		}
		return c.session.Token.AccessToken, nil
	}

	c.session = &Session{Token: tok, User: session.User}
	err = c.storeSessionToFile(c.session)
	if err != nil {
		return "", fmt.Errorf("storeSessionToFile: %w", err)
	}
	return tok.AccessToken, nil
}

// refresher is the oauth2.TokenSource behind a ReuseTokenSource: it trades
// the refresh token for a new pair. It lives for one request and uses that
// request's context.
type refresher struct {
	ctx     context.Context
	c       *Client
	current *oauth2.Token
}

func (r *refresher) Token() (*oauth2.Token, error) {
	if r.current == nil || r.current.RefreshToken == "" {
		return nil, journal.ErrSignedOut
	}

	body := map[string]string{"refresh_token": r.current.RefreshToken}
	tr, err := r.c.tokenRequest(r.ctx, "refresh_token", body)
	if err != nil {
		return nil, err
	}

	tok := tr.token(r.c.now())
	if tok == nil {
		return nil, errors.New("refresh returned no session")
	}
	r.current = tok
	return tok, nil
}
