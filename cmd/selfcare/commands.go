package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/sporadisk/selfcare/client/supabase"
	"github.com/sporadisk/selfcare/console"
	"github.com/sporadisk/selfcare/inspect"
	"github.com/sporadisk/selfcare/journal"
	"github.com/sporadisk/selfcare/pdfexport"
	"github.com/sporadisk/selfcare/record"
	"github.com/sporadisk/selfcare/server"
)

func (a *app) signUp(ctx context.Context) error {
	p, err := a.prompt()
	if err != nil {
		return err
	}

	nickname, err := p.Line("Nickname")
	if err != nil {
		return err
	}
	email, err := p.Line("Email")
	if err != nil {
		return err
	}
	password, err := p.Password("Password")
	if err != nil {
		return err
	}

	_, err = a.backend.SignUp(ctx, nickname, email, password)
	if errors.Is(err, supabase.ErrNoNickname) {
		a.terminal.OutputNotice(journal.Notice{Kind: journal.Failure, Title: "Please choose a nickname"})
		return nil
	}
	if err != nil {
		return fmt.Errorf("SignUp: %w", err)
	}

	a.terminal.OutputNotice(journal.NoticeSignedUp)
	return nil
}

func (a *app) logIn(ctx context.Context) error {
	p, err := a.prompt()
	if err != nil {
		return err
	}

	email, err := p.Line("Email")
	if err != nil {
		return err
	}
	password, err := p.Password("Password")
	if err != nil {
		return err
	}

	user, err := a.backend.SignIn(ctx, email, password)
	if err != nil {
		return fmt.Errorf("SignIn: %w", err)
	}

	a.terminal.OutputNotice(journal.NoticeSignedIn)
	return a.greet(ctx, user)
}

func (a *app) logOut(ctx context.Context) error {
	err := a.backend.SignOut(ctx)
	if err != nil {
		return fmt.Errorf("SignOut: %w", err)
	}

	a.terminal.OutputNotice(journal.NoticeSignedOut)
	return nil
}

func (a *app) whoAmI(ctx context.Context) error {
	user, ok := a.backend.CurrentUser()
	if !ok {
		fmt.Println("Not signed in.")
		return nil
	}
	return a.greet(ctx, user)
}

func (a *app) greet(ctx context.Context, user supabase.User) error {
	nickname, err := a.backend.Nickname(ctx)
	if err != nil {
		return fmt.Errorf("Nickname: %w", err)
	}

	fmt.Print(a.terminal.Greeting(nickname, user.Email))
	return nil
}

func (a *app) write(ctx context.Context) error {
	p, err := a.prompt()
	if err != nil {
		return err
	}

	text, err := p.Text("What would you like to share about your day?")
	if err != nil {
		return err
	}
	mood, err := console.Choice(p, "Mood", moodOptions(), record.ParseMood)
	if err != nil {
		return err
	}

	err = a.journal.WriteEntry(ctx, text, mood)
	return a.report(err, journal.NoticeEntrySaved, "Could not save entry")
}

func (a *app) addEvent(ctx context.Context) error {
	p, err := a.prompt()
	if err != nil {
		return err
	}

	title, err := p.Line("Title")
	if err != nil {
		return err
	}
	description, err := p.Text("Description")
	if err != nil {
		return err
	}
	category, err := console.Choice(p, "Category", categoryOptions(), record.ParseCategory)
	if err != nil {
		return err
	}

	err = a.journal.AddEvent(ctx, title, description, category)
	return a.report(err, journal.NoticeEventAdded, "Could not add event")
}

// report prints the outcome of a form. Only unexpected errors are returned.
func (a *app) report(err error, success journal.Notice, fallback string) error {
	if err == nil {
		a.terminal.OutputNotice(success)
		return nil
	}

	a.terminal.OutputNotice(journal.FailureNotice(err, fallback))
	if errors.Is(err, journal.ErrMissingFields) {
		return nil
	}
	return err
}

func (a *app) listEntries(ctx context.Context) error {
	list := journal.NewEntriesList(a.journal)
	list.OnChange(a.terminal.OutputEntries)

	err := list.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("list.Refresh: %w", err)
	}
	return nil
}

func (a *app) listTimeline(ctx context.Context) error {
	list := journal.NewTimelineList(a.journal)
	list.OnChange(a.terminal.OutputTimeline)

	err := list.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("list.Refresh: %w", err)
	}
	return nil
}

func (a *app) export(ctx context.Context, kind string) error {
	var err error
	var empty, done journal.Notice

	switch kind {
	case "diary":
		empty, done = journal.NoticeNoEntries, journal.NoticeDiaryExported
		list := journal.NewEntriesList(a.journal)
		err = list.Refresh(ctx)
		if err == nil {
			err = list.Export(a.exporter)
		}
	case "timeline":
		empty, done = journal.NoticeNoEvents, journal.NoticeTimelineExported
		list := journal.NewTimelineList(a.journal)
		err = list.Refresh(ctx)
		if err == nil {
			err = list.Export(a.exporter)
		}
	}

	if errors.Is(err, journal.ErrNothingToExport) {
		a.terminal.OutputNotice(empty)
		return nil
	}
	if errors.Is(err, pdfexport.ErrKeptExisting) {
		fmt.Println("Kept the existing file.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", kind, err)
	}

	a.terminal.OutputNotice(done)
	return describeFile(a.saver.Last())
}

func (a *app) serve(ctx context.Context) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	w, err := a.backend.WatchSession(ctx, func(event supabase.AuthEvent, user supabase.User) {
		logger.Info("auth state changed", "event", event, "email", user.Email)
	})
	if err != nil {
		return fmt.Errorf("WatchSession: %w", err)
	}
	defer w.Close()

	srv := server.New(logger, a.journal, a.backend, *a.exporter)
	return srv.ListenAndServe(ctx, a.conf.Server.Listen)
}

func inspectFile(path string) error {
	doc, err := inspect.ReadFile(path)
	if err != nil {
		return fmt.Errorf("inspect.ReadFile: %w", err)
	}

	fmt.Printf("%s: %d page(s)\n", path, doc.PageCount())
	for _, page := range doc.Pages {
		fmt.Printf("\n- Page %d -\n", page.Number)
		for _, s := range page.Text {
			fmt.Println(s)
		}
	}
	return nil
}

func describeFile(path string) error {
	doc, err := inspect.ReadFile(path)
	if err != nil {
		return fmt.Errorf("inspect.ReadFile: %w", err)
	}

	fmt.Printf("Saved %s (%d page(s))\n", path, doc.PageCount())
	return nil
}

func moodOptions() []string {
	moods := record.Moods()
	options := make([]string, len(moods))
	for i, m := range moods {
		options[i] = string(m)
	}
	return options
}

func categoryOptions() []string {
	categories := record.Categories()
	options := make([]string, len(categories))
	for i, c := range categories {
		options[i] = string(c)
	}
	return options
}
