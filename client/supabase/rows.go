package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/sporadisk/selfcare/record"
)

const (
	entriesTable  = "daily_entries"
	timelineTable = "timeline_events"
	profilesTable = "profiles"

	returnMinimal = "return=minimal"
)

type entryRow struct {
	UserID uuid.UUID   `json:"user_id"`
	Text   string      `json:"text"`
	Mood   record.Mood `json:"mood"`
}

type eventRow struct {
	UserID      uuid.UUID       `json:"user_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    record.Category `json:"category"`
}

type profileRow struct {
	UserID   uuid.UUID `json:"user_id"`
	Nickname string    `json:"nickname"`
}

func ownRows(userID uuid.UUID) url.Values {
	return url.Values{
		"select":  {"*"},
		"user_id": {"eq." + userID.String()},
		"order":   {"created_at.desc"},
	}
}

// RecentEntries returns the user's latest diary entries, newest first.
func (c *Client) RecentEntries(ctx context.Context, userID uuid.UUID, limit int) ([]record.DiaryEntry, error) {
	params := ownRows(userID)
	params.Set("limit", strconv.Itoa(limit))

	var entries []record.DiaryEntry
	err := c.selectRows(ctx, entriesTable, params, &entries)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) InsertEntry(ctx context.Context, userID uuid.UUID, text string, mood record.Mood) error {
	return c.insertRow(ctx, entriesTable, entryRow{UserID: userID, Text: text, Mood: mood})
}

// Timeline returns all of the user's timeline events, newest first.
func (c *Client) Timeline(ctx context.Context, userID uuid.UUID) ([]record.TimelineEvent, error) {
	var events []record.TimelineEvent
	err := c.selectRows(ctx, timelineTable, ownRows(userID), &events)
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) InsertEvent(ctx context.Context, userID uuid.UUID, title, description string, category record.Category) error {
	row := eventRow{
		UserID:      userID,
		Title:       title,
		Description: description,
		Category:    category,
	}
	return c.insertRow(ctx, timelineTable, row)
}

// Nickname returns the signed-in user's nickname, or "" when they have no
// profile.
func (c *Client) Nickname(ctx context.Context) (string, error) {
	userID, ok := c.UserID()
	if !ok {
		return "", nil
	}

	params := url.Values{
		"select":  {"nickname"},
		"user_id": {"eq." + userID.String()},
		"limit":   {"1"},
	}

	var profiles []profileRow
	err := c.selectRows(ctx, profilesTable, params, &profiles)
	if err != nil {
		return "", err
	}
	if len(profiles) == 0 {
		return "", nil
	}
	return profiles[0].Nickname, nil
}

// insertProfile runs right after sign-up, with the new session's token when
// there is one and as the anonymous role otherwise.
func (c *Client) insertProfile(ctx context.Context, bearer string, userID uuid.UUID, nickname string) error {
	_, err := c.send(ctx, request{
		method:   http.MethodPost,
		endpoint: c.restEndpoint(profilesTable, nil),
		body:     profileRow{UserID: userID, Nickname: nickname},
		bearer:   bearer,
		prefer:   returnMinimal,
	})
	if err != nil {
		return fmt.Errorf("insert %s: %w", profilesTable, err)
	}
	return nil
}

func (c *Client) selectRows(ctx context.Context, table string, params url.Values, out any) error {
	resp, err := c.sendAuthed(ctx, request{
		method:   http.MethodGet,
		endpoint: c.restEndpoint(table, params),
	})
	if err != nil {
		return fmt.Errorf("select %s: %w", table, err)
	}

	err = resp.Decode(out)
	if err != nil {
		return fmt.Errorf("resp.Decode: %w", err)
	}
	return nil
}

func (c *Client) insertRow(ctx context.Context, table string, row any) error {
	_, err := c.sendAuthed(ctx, request{
		method:   http.MethodPost,
		endpoint: c.restEndpoint(table, nil),
		body:     row,
		prefer:   returnMinimal,
	})
	if err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}
