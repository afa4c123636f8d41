package main

import (
	"fmt"
	"os"

	"github.com/sporadisk/selfcare/client/supabase"
	"github.com/sporadisk/selfcare/client/terminal"
	"github.com/sporadisk/selfcare/config"
	"github.com/sporadisk/selfcare/console"
	"github.com/sporadisk/selfcare/journal"
	"github.com/sporadisk/selfcare/pdfexport"
	"golang.org/x/term"
)

type app struct {
	conf     *config.Config
	backend  *supabase.Client
	journal  *journal.Journal
	terminal *terminal.Client
	exporter *pdfexport.Exporter
	saver    *pdfexport.DirSaver
	prompter *console.Prompter
}

func newApp(conf *config.Config, color bool) (*app, error) {
	loc, err := conf.Location()
	if err != nil {
		return nil, fmt.Errorf("conf.Location: %w", err)
	}

	backend := &supabase.Client{
		Endpoint:   conf.Backend.URL,
		AnonKey:    conf.Backend.AnonKey,
		SessionDir: conf.SessionDir,
	}
	err = backend.Init()
	if err != nil {
		return nil, fmt.Errorf("backend.Init: %w", err)
	}

	_, err = backend.LoadSession()
	if err != nil {
		return nil, fmt.Errorf("backend.LoadSession: %w", err)
	}

	tc := &terminal.Client{
		Color:    color && term.IsTerminal(int(os.Stdout.Fd())),
		Location: loc,
	}
	err = tc.Init()
	if err != nil {
		return nil, fmt.Errorf("terminal.Init: %w", err)
	}

	saver := &pdfexport.DirSaver{Dir: conf.Output.Dir}

	a := &app{
		conf:    conf,
		backend: backend,
		journal: &journal.Journal{
			Store:    backend,
			Bus:      &journal.Bus{},
			Identity: backend,
		},
		terminal: tc,
		exporter: &pdfexport.Exporter{Saver: saver, Location: loc},
		saver:    saver,
	}
	saver.Overwrite = a.confirmOverwrite
	return a, nil
}

// prompt opens the interactive prompter on first use.
func (a *app) prompt() (*console.Prompter, error) {
	if a.prompter != nil {
		return a.prompter, nil
	}

	p, err := console.NewPrompter()
	if err != nil {
		return nil, fmt.Errorf("console.NewPrompter: %w", err)
	}
	a.prompter = p
	return p, nil
}

// confirmOverwrite asks before an export replaces an earlier one from the
// same day.
func (a *app) confirmOverwrite(path string) (bool, error) {
	p, err := a.prompt()
	if err != nil {
		return false, err
	}
	return p.Confirm(fmt.Sprintf("%s already exists. Replace it?", path))
}

func (a *app) Close() {
	if a.prompter != nil {
		a.prompter.Close()
	}
}
