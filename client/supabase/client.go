// Package supabase talks to the hosted backend: GoTrue for identity and
// PostgREST for the diary, timeline and profile tables.
package supabase

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sporadisk/selfcare/client"
)

const sessionFile = "session.json"

var (
	ErrNoEndpoint = errors.New("no backend url configured")
	ErrNoAnonKey  = errors.New("no backend anon key configured")
)

type Client struct {
	// Configuration
	Endpoint   string
	AnonKey    string
	SessionDir string

	// State
	HttpClient *client.HttpClient
	mu         sync.Mutex
	refreshMu  sync.Mutex // serializes token refreshes; taken before mu
	session    *Session
	now        func() time.Time
}

func (c *Client) Init() error {
	if c.Endpoint == "" {
		return ErrNoEndpoint
	}
	if c.AnonKey == "" {
		return ErrNoAnonKey
	}
	c.Endpoint = strings.TrimRight(c.Endpoint, "/")

	if c.HttpClient == nil {
		c.HttpClient = client.NewHttpClient(10 * time.Second)
	}
	if c.now == nil {
		c.now = time.Now
	}

	if c.SessionDir == "" {
		homedir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("os.UserHomeDir: %w", err)
		}
		c.SessionDir = filepath.Join(homedir, ".selfcare")
	}
	return nil
}

// SessionPath is where the signed-in session is kept between runs.
func (c *Client) SessionPath() string {
	return filepath.Join(c.SessionDir, sessionFile)
}
