package record

import (
	"fmt"

	"github.com/sporadisk/selfcare/format"
	"github.com/sporadisk/selfcare/parameter"
)

// MoodStyle is how a mood is drawn in lists: a glyph and an ANSI 256-color
// code. Color 0 means "no color".
type MoodStyle struct {
	Glyph string
	Color int
}

// the tables below are only read after package initialization

var moodOrder = []Mood{
	MoodHappy, MoodSad, MoodAnxious, MoodCalm,
	MoodIrritated, MoodExcited, MoodTired, MoodGrateful,
}

var moodStyles = map[Mood]MoodStyle{
	MoodHappy:     {Glyph: "☺", Color: 220},
	MoodSad:       {Glyph: "☹", Color: 33},
	MoodAnxious:   {Glyph: "⚡", Color: 208},
	MoodCalm:      {Glyph: "≈", Color: 34},
	MoodIrritated: {Glyph: "♨", Color: 196},
	MoodExcited:   {Glyph: "✦", Color: 205},
	MoodTired:     {Glyph: "☾", Color: 63},
	MoodGrateful:  {Glyph: "✧", Color: 135},
}

var categoryOrder = []Category{
	CategoryChildhood, CategoryAdolescence, CategoryAdultLife,
	CategoryRelationships, CategoryCareer, CategoryHealth, CategoryOther,
}

var categoryLabels = map[Category]string{
	CategoryChildhood:     "Childhood",
	CategoryAdolescence:   "Adolescence",
	CategoryAdultLife:     "Adult Life",
	CategoryRelationships: "Relationships",
	CategoryCareer:        "Career",
	CategoryHealth:        "Health",
	CategoryOther:         "Other",
}

// Moods returns the known moods in form order.
func Moods() []Mood {
	return append([]Mood(nil), moodOrder...)
}

// Categories returns the known categories in form order.
func Categories() []Category {
	return append([]Category(nil), categoryOrder...)
}

// MoodLabel is the mood with its first letter capitalized. Unknown moods are
// labeled the same way.
func MoodLabel(m Mood) string {
	return format.Capitalize(string(m))
}

// MoodStyleOf never fails: unknown moods get the happy glyph without color.
func MoodStyleOf(m Mood) MoodStyle {
	style, ok := moodStyles[m]
	if !ok {
		return MoodStyle{Glyph: moodStyles[MoodHappy].Glyph}
	}
	return style
}

// CategoryLabel falls back to the raw value for unknown categories.
func CategoryLabel(c Category) string {
	label, ok := categoryLabels[c]
	if !ok {
		return string(c)
	}
	return label
}

func ParseMood(s string) (Mood, error) {
	options := make([]string, len(moodOrder))
	for i, m := range moodOrder {
		options[i] = string(m)
	}

	m, err := parameter.Validate(s, options)
	if err != nil {
		return "", fmt.Errorf("parameter.Validate: %w", err)
	}
	return Mood(m), nil
}

func ParseCategory(s string) (Category, error) {
	options := make([]string, len(categoryOrder))
	for i, c := range categoryOrder {
		options[i] = string(c)
	}

	c, err := parameter.Validate(s, options)
	if err != nil {
		return "", fmt.Errorf("parameter.Validate: %w", err)
	}
	return Category(c), nil
}
