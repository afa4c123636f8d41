// Package record holds the journal entities exchanged with the backend and
// the fixed mood and category vocabularies attached to them.
package record

import (
	"time"

	"github.com/google/uuid"
)

// DiaryEntry is a daily mood entry.
type DiaryEntry struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Mood      Mood      `json:"mood"`
	CreatedAt time.Time `json:"created_at"`
}

// TimelineEvent is a milestone on the user's life timeline.
type TimelineEvent struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

type Mood string

const (
	MoodHappy     Mood = "happy"
	MoodSad       Mood = "sad"
	MoodAnxious   Mood = "anxious"
	MoodCalm      Mood = "calm"
	MoodIrritated Mood = "irritated"
	MoodExcited   Mood = "excited"
	MoodTired     Mood = "tired"
	MoodGrateful  Mood = "grateful"
)

type Category string

const (
	CategoryChildhood     Category = "childhood"
	CategoryAdolescence   Category = "adolescence"
	CategoryAdultLife     Category = "adult_life"
	CategoryRelationships Category = "relationships"
	CategoryCareer        Category = "career"
	CategoryHealth        Category = "health"
	CategoryOther         Category = "other"
)
