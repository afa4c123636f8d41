package record

import (
	"encoding/json"
	"testing"
	"time"
)

func TestMoodLabel(t *testing.T) {
	tests := map[Mood]string{
		MoodHappy:     "Happy",
		MoodIrritated: "Irritated",
		"melancholic": "Melancholic",
		"":            "",
	}

	for mood, want := range tests {
		if got := MoodLabel(mood); got != want {
			t.Errorf("MoodLabel(%q): expected %q, got %q", mood, want, got)
		}
	}
}

func TestMoodStyleFallback(t *testing.T) {
	known := MoodStyleOf(MoodSad)
	if known.Color == 0 || known.Glyph == "" {
		t.Errorf("expected a complete style for %q, got %#v", MoodSad, known)
	}

	unknown := MoodStyleOf("melancholic")
	if unknown.Glyph != MoodStyleOf(MoodHappy).Glyph {
		t.Errorf("expected the happy glyph as fallback, got %q", unknown.Glyph)
	}
	if unknown.Color != 0 {
		t.Errorf("expected no color for unknown moods, got %d", unknown.Color)
	}
}

func TestCategoryLabel(t *testing.T) {
	tests := map[Category]string{
		CategoryAdultLife: "Adult Life",
		CategoryHealth:    "Health",
		"travel":          "travel",
	}

	for cat, want := range tests {
		if got := CategoryLabel(cat); got != want {
			t.Errorf("CategoryLabel(%q): expected %q, got %q", cat, want, got)
		}
	}
}

func TestEveryOptionIsLabeled(t *testing.T) {
	if len(Moods()) != 8 {
		t.Errorf("expected 8 moods, got %d", len(Moods()))
	}
	for _, m := range Moods() {
		if _, ok := moodStyles[m]; !ok {
			t.Errorf("mood %q has no style", m)
		}
	}

	if len(Categories()) != 7 {
		t.Errorf("expected 7 categories, got %d", len(Categories()))
	}
	for _, c := range Categories() {
		if _, ok := categoryLabels[c]; !ok {
			t.Errorf("category %q has no label", c)
		}
	}
}

func TestOptionListsAreCopies(t *testing.T) {
	moods := Moods()
	moods[0] = "mutated"
	if Moods()[0] != MoodHappy {
		t.Errorf("mutating the returned slice changed the mood table")
	}
}

func TestParse(t *testing.T) {
	m, err := ParseMood(" Grateful ")
	if err != nil {
		t.Fatalf("ParseMood: %s", err.Error())
	}
	if m != MoodGrateful {
		t.Errorf("expected %q, got %q", MoodGrateful, m)
	}

	if _, err := ParseMood("bored"); err == nil {
		t.Errorf("expected an error for an unknown mood")
	}

	c, err := ParseCategory("ADULT_LIFE")
	if err != nil {
		t.Fatalf("ParseCategory: %s", err.Error())
	}
	if c != CategoryAdultLife {
		t.Errorf("expected %q, got %q", CategoryAdultLife, c)
	}
}

func TestDecodeBackendRow(t *testing.T) {
	row := `{"id":"7c0f0c7e-2f51-4a44-9f0e-6c2b9a1d3e10","user_id":"u","text":"Hoje foi um bom dia","mood":"happy","created_at":"2024-03-01T10:30:00.123456+00:00"}`

	var entry DiaryEntry
	err := json.Unmarshal([]byte(row), &entry)
	if err != nil {
		t.Fatalf("json.Unmarshal: %s", err.Error())
	}

	if entry.ID.String() != "7c0f0c7e-2f51-4a44-9f0e-6c2b9a1d3e10" {
		t.Errorf("wrong id: %s", entry.ID)
	}
	if entry.Mood != MoodHappy {
		t.Errorf("wrong mood: %q", entry.Mood)
	}

	want := time.Date(2024, time.March, 1, 10, 30, 0, 123456000, time.UTC)
	if !entry.CreatedAt.Equal(want) {
		t.Errorf("wrong created_at: %s", entry.CreatedAt)
	}
}
