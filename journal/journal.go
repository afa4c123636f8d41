// Package journal holds the write and list flows of the diary and the
// timeline: required-field checks, inserts, refresh notifications and the
// guard in front of the PDF export.
package journal

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sporadisk/selfcare/format"
	"github.com/sporadisk/selfcare/record"
)

var (
	ErrMissingFields   = errors.New("please fill in all fields")
	ErrNothingToExport = errors.New("nothing to export")
	ErrSignedOut       = errors.New("not signed in")
)

// RecentEntriesLimit is how many diary entries a list fetches.
const RecentEntriesLimit = 10

// Store is the backend holding the user's rows. Lists come back newest
// first.
type Store interface {
	RecentEntries(ctx context.Context, userID uuid.UUID, limit int) ([]record.DiaryEntry, error)
	InsertEntry(ctx context.Context, userID uuid.UUID, text string, mood record.Mood) error
	Timeline(ctx context.Context, userID uuid.UUID) ([]record.TimelineEvent, error)
	InsertEvent(ctx context.Context, userID uuid.UUID, title, description string, category record.Category) error
}

// Identity reports the signed-in user, if any.
type Identity interface {
	UserID() (uuid.UUID, bool)
}

type Journal struct {
	Store    Store
	Bus      *Bus
	Identity Identity
}

// WriteEntry saves a diary entry for the current user and tells entry lists
// to refresh.
func (j *Journal) WriteEntry(ctx context.Context, text string, mood record.Mood) error {
	if format.IsBlank(text) || mood == "" {
		return ErrMissingFields
	}

	userID, err := j.user()
	if err != nil {
		return err
	}

	err = j.Store.InsertEntry(ctx, userID, text, mood)
	if err != nil {
		return fmt.Errorf("Store.InsertEntry: %w", err)
	}

	j.publish(TopicEntries)
	return nil
}

// AddEvent saves a timeline event for the current user and tells timeline
// lists to refresh.
func (j *Journal) AddEvent(ctx context.Context, title, description string, category record.Category) error {
	if format.IsBlank(title) || format.IsBlank(description) || category == "" {
		return ErrMissingFields
	}

	userID, err := j.user()
	if err != nil {
		return err
	}

	err = j.Store.InsertEvent(ctx, userID, title, description, category)
	if err != nil {
		return fmt.Errorf("Store.InsertEvent: %w", err)
	}

	j.publish(TopicTimeline)
	return nil
}

// RecentEntries fetches the current user's latest diary entries.
func (j *Journal) RecentEntries(ctx context.Context) ([]record.DiaryEntry, error) {
	userID, err := j.user()
	if err != nil {
		return nil, err
	}

	entries, err := j.Store.RecentEntries(ctx, userID, RecentEntriesLimit)
	if err != nil {
		return nil, fmt.Errorf("Store.RecentEntries: %w", err)
	}
	return entries, nil
}

// Timeline fetches all of the current user's timeline events.
func (j *Journal) Timeline(ctx context.Context) ([]record.TimelineEvent, error) {
	userID, err := j.user()
	if err != nil {
		return nil, err
	}

	events, err := j.Store.Timeline(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("Store.Timeline: %w", err)
	}
	return events, nil
}

func (j *Journal) user() (uuid.UUID, error) {
	if j.Identity == nil {
		return uuid.Nil, ErrSignedOut
	}

	id, ok := j.Identity.UserID()
	if !ok {
		return uuid.Nil, ErrSignedOut
	}
	return id, nil
}

func (j *Journal) publish(topic Topic) {
	if j.Bus != nil {
		j.Bus.Publish(topic)
	}
}
