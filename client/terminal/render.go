package terminal

import (
	"fmt"
	"strings"

	"github.com/sporadisk/selfcare/format"
	"github.com/sporadisk/selfcare/journal"
	"github.com/sporadisk/selfcare/record"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	noEntriesMsg = "No records yet. Start by writing about your day!\n"
	noEventsMsg  = "No events recorded yet. Add important moments of your life!\n"

	successColor = 34
	failureColor = 196
	badgeColor   = 244
)

func (c *Client) OutputEntries(entries []record.DiaryEntry) {
	c.print(c.Entries(entries))
}

// Entries renders diary entries as cards: mood glyph and badge, timestamp,
// then the text.
func (c *Client) Entries(entries []record.DiaryEntry) string {
	if len(entries) == 0 {
		return noEntriesMsg
	}

	// An anglo-centric approach to title-casing, as in the rest of the UI.
	caser := cases.Title(language.English)

	var sb strings.Builder
	for i, entry := range entries {
		if i > 0 {
			sb.WriteString("\n")
		}

		style := record.MoodStyleOf(entry.Mood)
		badge := "[" + caser.String(string(entry.Mood)) + "]"
		fmt.Fprintf(&sb, "%s %s  %s\n",
			c.paint(style.Color, style.Glyph),
			c.paint(badgeColor, badge),
			format.ListDateTime(entry.CreatedAt.In(c.Location)),
		)
		sb.WriteString(indent(entry.Text))
	}
	return sb.String()
}

func (c *Client) OutputTimeline(events []record.TimelineEvent) {
	c.print(c.Timeline(events))
}

// Timeline renders events with their category, title, description and the
// day they were recorded.
func (c *Client) Timeline(events []record.TimelineEvent) string {
	if len(events) == 0 {
		return noEventsMsg
	}

	var sb strings.Builder
	for i, event := range events {
		if i > 0 {
			sb.WriteString("\n")
		}

		fmt.Fprintf(&sb, "%s %s\n", c.paint(badgeColor, "["+record.CategoryLabel(event.Category)+"]"), event.Title)
		sb.WriteString(indent(event.Description))
		sb.WriteString("  Recorded on " + format.LongDate(event.CreatedAt.In(c.Location)) + "\n")
	}
	return sb.String()
}

func (c *Client) OutputNotice(n journal.Notice) {
	c.print(c.Notice(n))
}

func (c *Client) Notice(n journal.Notice) string {
	color := successColor
	if n.Kind == journal.Failure {
		color = failureColor
	}

	s := c.paint(color, n.Title)
	if n.Description != "" {
		s += " - " + n.Description
	}
	return s + "\n"
}

// Greeting is the header line shown to a signed-in user.
func (c *Client) Greeting(nickname, email string) string {
	name := nickname
	if format.IsBlank(name) {
		name = email
	}
	return "Hello, " + name + "!\n"
}

func indent(text string) string {
	text = strings.TrimRight(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var sb strings.Builder
	for _, line := range strings.Split(text, "\n") {
		sb.WriteString("  " + line + "\n")
	}
	return sb.String()
}
