// Package terminal renders lists and notices for a text terminal.
package terminal

import (
	"fmt"
	"io"
	"os"
	"time"
)

type Client struct {
	// Color enables ANSI colors for mood glyphs and notices.
	Color    bool
	Location *time.Location
	Out      io.Writer
}

func (c *Client) Init() error {
	if c.Location == nil {
		c.Location = time.Local
	}
	if c.Out == nil {
		c.Out = os.Stdout
	}
	return nil
}

func (c *Client) print(s string) {
	_, err := fmt.Fprint(c.Out, s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "terminal output: %s\n", err.Error())
	}
}

func (c *Client) paint(color int, s string) string {
	if !c.Color || color == 0 {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", color, s)
}
