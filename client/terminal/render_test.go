package terminal

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sporadisk/selfcare/journal"
	"github.com/sporadisk/selfcare/record"
)

var created = time.Date(2024, time.March, 1, 10, 30, 0, 0, time.UTC)

func newTestClient(color bool) *Client {
	c := &Client{Color: color, Location: time.UTC, Out: &bytes.Buffer{}}
	c.Init()
	return c
}

func TestEntries(t *testing.T) {
	c := newTestClient(false)

	out := c.Entries([]record.DiaryEntry{
		{Text: "Hoje foi um bom dia", Mood: record.MoodHappy, CreatedAt: created},
		{Text: "line one\nline two", Mood: "melancholic", CreatedAt: created.Add(-24 * time.Hour)},
	})

	expected := "☺ [Happy]  01 March at 10:30\n" +
		"  Hoje foi um bom dia\n" +
		"\n" +
		"☺ [Melancholic]  29 February at 10:30\n" +
		"  line one\n" +
		"  line two\n"
	if out != expected {
		t.Errorf("unexpected output:\n%s\nexpected:\n%s", out, expected)
	}
}

func TestEntriesColor(t *testing.T) {
	c := newTestClient(true)

	out := c.Entries([]record.DiaryEntry{{Text: "x", Mood: record.MoodSad, CreatedAt: created}})
	if !strings.HasPrefix(out, "\x1b[38;5;33m☹\x1b[0m") {
		t.Errorf("expected a colored glyph, got %q", out)
	}

	out = c.Entries([]record.DiaryEntry{{Text: "x", Mood: "unknown", CreatedAt: created}})
	if !strings.HasPrefix(out, "☺ ") {
		t.Errorf("unknown moods should get the default glyph without color, got %q", out)
	}
}

func TestEmptyLists(t *testing.T) {
	c := newTestClient(false)

	if out := c.Entries(nil); out != noEntriesMsg {
		t.Errorf("unexpected empty diary: %q", out)
	}
	if out := c.Timeline(nil); out != noEventsMsg {
		t.Errorf("unexpected empty timeline: %q", out)
	}
}

func TestTimeline(t *testing.T) {
	c := newTestClient(false)

	out := c.Timeline([]record.TimelineEvent{
		{Title: "First job", Description: "Bakery downtown", Category: record.CategoryAdultLife, CreatedAt: created},
		{Title: "Lisbon", Description: "Trip", Category: "travel", CreatedAt: created},
	})

	expected := "[Adult Life] First job\n" +
		"  Bakery downtown\n" +
		"  Recorded on 01 March 2024\n" +
		"\n" +
		"[travel] Lisbon\n" +
		"  Trip\n" +
		"  Recorded on 01 March 2024\n"
	if out != expected {
		t.Errorf("unexpected output:\n%s\nexpected:\n%s", out, expected)
	}
}

func TestLocation(t *testing.T) {
	c := newTestClient(false)
	c.Location = time.FixedZone("BRT", -3*60*60)

	out := c.Entries([]record.DiaryEntry{{Text: "x", Mood: record.MoodCalm, CreatedAt: created}})
	if !strings.Contains(out, "01 March at 07:30") {
		t.Errorf("expected local time, got %q", out)
	}
}

func TestNotice(t *testing.T) {
	c := newTestClient(false)

	if out := c.Notice(journal.NoticeNoEntries); out != "No records - There are no records to export.\n" {
		t.Errorf("unexpected notice: %q", out)
	}

	buf := &bytes.Buffer{}
	c.Out = buf
	c.OutputNotice(journal.NoticeEntrySaved)
	if buf.String() != "Entry saved!\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}

	c = newTestClient(true)
	if out := c.Notice(journal.NoticeNoEvents); !strings.HasPrefix(out, "\x1b[38;5;196mNo events") {
		t.Errorf("failures should be red, got %q", out)
	}
}

func TestGreeting(t *testing.T) {
	c := newTestClient(false)

	if got := c.Greeting("Ana", "ana@example.com"); got != "Hello, Ana!\n" {
		t.Errorf("unexpected greeting: %q", got)
	}
	if got := c.Greeting("", "ana@example.com"); got != "Hello, ana@example.com!\n" {
		t.Errorf("unexpected fallback greeting: %q", got)
	}
}
