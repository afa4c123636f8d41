package supabase

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// Session is a signed-in user with the tokens to act on their behalf.
type Session struct {
	Token *oauth2.Token `json:"token"`
	User  User          `json:"user"`
}

// LoadSession restores the session stored by an earlier sign-in. It reports
// false when there is none.
func (c *Client) LoadSession() (bool, error) {
	s, err := c.loadSessionFromFile()
	if err != nil {
		return false, fmt.Errorf("loadSessionFromFile: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.setSession(s)
	return s != nil, nil
}

// CurrentUser returns the signed-in user.
func (c *Client) CurrentUser() (User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return User{}, false
	}
	return c.session.User, true
}

// UserID returns the signed-in user's ID.
func (c *Client) UserID() (uuid.UUID, bool) {
	user, ok := c.CurrentUser()
	return user.ID, ok
}

// setSession must be called with c.mu held.
func (c *Client) setSession(s *Session) {
	c.session = s
}

func parseSession(data []byte) (*Session, error) {
	var s Session
	err := json.Unmarshal(data, &s)
	if err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}
	if s.Token == nil || s.User.ID == uuid.Nil {
		return nil, errors.New("session file holds no signed-in user")
	}
	return &s, nil
}

func (c *Client) loadSessionFromFile() (*Session, error) {
	path := c.SessionPath()

	finfo, err := os.Stat(path)
	if err != nil && os.IsNotExist(err) {
		// Nobody signed in yet
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("os.Stat: %w", err)
	}

	if finfo.IsDir() {
		return nil, fmt.Errorf("session path %s is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	return parseSession(data)
}

// storeSessionToFile replaces the session file in one rename, so a watcher
// never reads half of it.
func (c *Client) storeSessionToFile(s *Session) error {
	err := c.ensureSessionDir()
	if err != nil {
		return fmt.Errorf("ensureSessionDir: %w", err)
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	path := c.SessionPath()
	tmp := path + ".tmp"
	err = os.WriteFile(tmp, data, 0600)
	if err != nil {
		return fmt.Errorf("os.WriteFile: %w", err)
	}

	err = os.Rename(tmp, path)
	if err != nil {
		return fmt.Errorf("os.Rename: %w", err)
	}
	return nil
}

func (c *Client) removeSessionFile() error {
	err := os.Remove(c.SessionPath())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("os.Remove: %w", err)
	}
	return nil
}

func (c *Client) ensureSessionDir() error {
	finfo, err := os.Stat(c.SessionDir)
	if err == nil && !finfo.IsDir() {
		return fmt.Errorf("session storage path %s is not a directory", c.SessionDir)
	}

	if err != nil && os.IsNotExist(err) {
		err = os.MkdirAll(c.SessionDir, 0700)
		if err != nil {
			return fmt.Errorf("os.MkdirAll(%s): %w", c.SessionDir, err)
		}
		return nil
	}

	if err != nil {
		return fmt.Errorf("os.Stat: %w", err)
	}
	return nil
}
