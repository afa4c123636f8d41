// Package pdfexport renders diary entries and timeline events to paginated
// PDF documents and hands them to a Saver.
package pdfexport

import (
	"errors"
	"fmt"
	"time"

	"github.com/sporadisk/selfcare/format"
	"github.com/sporadisk/selfcare/record"
)

const (
	DiaryTitle    = "Self-Care Diary"
	TimelineTitle = "Timeline"

	DiaryBaseName    = "diary-selfcare"
	TimelineBaseName = "timeline"
)

var diaryColumns = []column{
	{header: "Date/Time", width: 35},
	{header: "Mood", width: 30},
	{header: "Entry"},
}

var timelineColumns = []column{
	{header: "Date", width: 30},
	{header: "Category", width: 35},
	{header: "Title", width: 40},
	{header: "Description"},
}

var ErrNoSaver = errors.New("no saver configured")

// Exporter builds documents and saves them. Location is the viewer's time
// zone (default time.Local) and Now the wall clock (default time.Now).
type Exporter struct {
	Saver    Saver
	Location *time.Location
	Now      func() time.Time
}

// Diary exports entries in the order given. An empty slice still produces a
// one-page document with the banner and the table header.
func (e *Exporter) Diary(entries []record.DiaryEntry) error {
	now := e.now()
	doc := buildDiary(entries, now)
	return e.save(doc, FileName(DiaryBaseName, now))
}

// Timeline exports events in the order given.
func (e *Exporter) Timeline(events []record.TimelineEvent) error {
	now := e.now()
	doc := buildTimeline(events, now)
	return e.save(doc, FileName(TimelineBaseName, now))
}

// FileName is the download name for a document exported at now.
func FileName(baseName string, now time.Time) string {
	return baseName + "-" + format.FileDate(now) + ".pdf"
}

func (e *Exporter) save(doc *document, filename string) error {
	if e.Saver == nil {
		return ErrNoSaver
	}

	data, err := doc.bytes()
	if err != nil {
		return fmt.Errorf("doc.bytes: %w", err)
	}

	err = e.Saver.Save(filename, data)
	if err != nil {
		return fmt.Errorf("Saver.Save(%s): %w", filename, err)
	}
	return nil
}

func (e *Exporter) now() time.Time {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}

	loc := e.Location
	if loc == nil {
		loc = time.Local
	}
	return now().In(loc)
}

func buildDiary(entries []record.DiaryEntry, now time.Time) *document {
	rows := make([][]string, len(entries))
	for i, entry := range entries {
		rows[i] = []string{
			format.DateTime(entry.CreatedAt.In(now.Location())),
			record.MoodLabel(entry.Mood),
			entry.Text,
		}
	}

	doc := newDocument(DiaryTitle, now)
	doc.layoutTable(newTable(diaryColumns, rows))
	return doc
}

func buildTimeline(events []record.TimelineEvent, now time.Time) *document {
	rows := make([][]string, len(events))
	for i, event := range events {
		rows[i] = []string{
			format.Date(event.CreatedAt.In(now.Location())),
			record.CategoryLabel(event.Category),
			event.Title,
			event.Description,
		}
	}

	doc := newDocument(TimelineTitle, now)
	doc.layoutTable(newTable(timelineColumns, rows))
	return doc
}
