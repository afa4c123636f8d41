package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sporadisk/selfcare/client/terminal"
	"github.com/sporadisk/selfcare/journal"
	"github.com/sporadisk/selfcare/parameter"
	"github.com/sporadisk/selfcare/record"
)

func TestCommandNames(t *testing.T) {
	for _, name := range []string{"login", "Export", " serve "} {
		_, err := parameter.Validate(name, commands)
		if err != nil {
			t.Errorf("Validate(%q): %s", name, err)
		}
	}

	_, err := parameter.Validate("publish", commands)
	if err == nil {
		t.Errorf("expected an error for an unknown command")
	}
}

func TestMoodOptionsParse(t *testing.T) {
	options := moodOptions()
	if len(options) != len(record.Moods()) {
		t.Fatalf("expected %d options, got %d", len(record.Moods()), len(options))
	}

	for _, o := range options {
		_, err := record.ParseMood(o)
		if err != nil {
			t.Errorf("ParseMood(%q): %s", o, err)
		}
	}
}

func TestCategoryOptionsParse(t *testing.T) {
	for _, o := range categoryOptions() {
		_, err := record.ParseCategory(o)
		if err != nil {
			t.Errorf("ParseCategory(%q): %s", o, err)
		}
	}
}

func TestBlankChoiceReportsMissingFields(t *testing.T) {
	var out bytes.Buffer
	a := &app{
		journal:  &journal.Journal{},
		terminal: &terminal.Client{Out: &out},
	}
	ctx := context.Background()

	// a blank answer to a choice leaves the zero value
	var mood record.Mood
	err := a.report(a.journal.WriteEntry(ctx, "a good day", mood), journal.NoticeEntrySaved, "Could not save entry")
	if err != nil {
		t.Errorf("missing fields should not fail the command, got %s", err.Error())
	}

	var category record.Category
	err = a.report(a.journal.AddEvent(ctx, "First job", "Bakery", category), journal.NoticeEventAdded, "Could not add event")
	if err != nil {
		t.Errorf("missing fields should not fail the command, got %s", err.Error())
	}

	if got := strings.Count(out.String(), "Please fill in all fields"); got != 2 {
		t.Errorf("expected 2 missing-field notices, got %d in %q", got, out.String())
	}

	err = a.report(errors.New("backend down"), journal.NoticeEntrySaved, "Could not save entry")
	if err == nil {
		t.Errorf("backend errors should fail the command")
	}
}
