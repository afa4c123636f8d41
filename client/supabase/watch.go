package supabase

import (
	"context"
	"fmt"
	"log"

	"github.com/sporadisk/selfcare/filewatcher"
)

type AuthEvent string

const (
	SignedIn  AuthEvent = "SIGNED_IN"
	SignedOut AuthEvent = "SIGNED_OUT"
)

// WatchSession follows the session file, so a sign-in or sign-out made by
// another process is picked up here. fn sees every change after the client
// has adopted it.
func (c *Client) WatchSession(ctx context.Context, fn func(AuthEvent, User)) (*filewatcher.Watcher, error) {
	err := c.ensureSessionDir()
	if err != nil {
		return nil, fmt.Errorf("ensureSessionDir: %w", err)
	}

	w := &filewatcher.Watcher{
		Path: c.SessionPath(),
		OnChange: func(change filewatcher.Change) {
			event, user, ok := c.adopt(change)
			if ok && fn != nil {
				fn(event, user)
			}
		},
	}

	err = w.Start(ctx)
	if err != nil {
		return nil, fmt.Errorf("watcher.Start: %w", err)
	}
	return w, nil
}

func (c *Client) adopt(change filewatcher.Change) (AuthEvent, User, bool) {
	if change.Op == filewatcher.Removed {
		c.mu.Lock()
		c.setSession(nil)
		c.mu.Unlock()
		return SignedOut, User{}, true
	}

	s, err := parseSession(change.Data)
	if err != nil {
		log.Printf("[session] parseSession: %s", err.Error())
		return "", User{}, false
	}

	c.mu.Lock()
	c.setSession(s)
	c.mu.Unlock()
	return SignedIn, s.User, true
}
