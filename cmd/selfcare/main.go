package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/sporadisk/selfcare/config"
	"github.com/sporadisk/selfcare/parameter"
)

const helpMsg = `
Usage: selfcare [flags] <command>

Commands:
  signup               Create an account with a nickname.
  login                Sign in with email and password.
  logout               Sign out.
  whoami               Show who is signed in.
  write                Write today's diary entry.
  event                Add an important moment to your timeline.
  entries              List your most recent diary entries.
  timeline             List your timeline.
  export diary         Export your recent diary entries to PDF.
  export timeline      Export your timeline to PDF.
  inspect <file.pdf>   Show the pages of an exported PDF.
  serve                Serve the HTTP API for the browser UI.

Valid flags:
  --config
    Path to a YAML config file (default .selfcare.yaml).
  --no-color
    Disable colored output.

`

var commands = []string{
	"signup", "login", "logout", "whoami",
	"write", "event", "entries", "timeline",
	"export", "inspect", "serve",
}

var exportKinds = []string{"diary", "timeline"}

func main() {
	validInput, err := run()
	if err != nil {
		if !validInput {
			fmt.Print(helpMsg)
		}

		fmt.Printf("Error: %s\n", err.Error())

		os.Exit(1)
		return
	}
}

func run() (validInput bool, err error) {
	confPath := flag.String("config", "", "Path to config file")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		return false, errors.New("no command given")
	}

	cmd, err := parameter.Validate(args[0], commands)
	if err != nil {
		return false, fmt.Errorf("command: %w", err)
	}

	var arg string
	switch cmd {
	case "export":
		if len(args) < 2 {
			return false, errors.New("export needs a kind: diary or timeline")
		}
		arg, err = parameter.Validate(args[1], exportKinds)
		if err != nil {
			return false, fmt.Errorf("export: %w", err)
		}
	case "inspect":
		if len(args) < 2 {
			return false, errors.New("inspect needs a PDF file")
		}
		arg = args[1]
	}

	if *confPath != "" {
		fmt.Printf("Using config file: %s\n", *confPath)
	}

	conf, err := config.Load(*confPath)
	if err != nil {
		return false, fmt.Errorf("config.Load: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cmd == "inspect" {
		return true, inspectFile(arg)
	}

	app, err := newApp(conf, !*noColor)
	if err != nil {
		return true, fmt.Errorf("newApp: %w", err)
	}
	defer app.Close()

	switch cmd {
	case "signup":
		err = app.signUp(ctx)
	case "login":
		err = app.logIn(ctx)
	case "logout":
		err = app.logOut(ctx)
	case "whoami":
		err = app.whoAmI(ctx)
	case "write":
		err = app.write(ctx)
	case "event":
		err = app.addEvent(ctx)
	case "entries":
		err = app.listEntries(ctx)
	case "timeline":
		err = app.listTimeline(ctx)
	case "export":
		err = app.export(ctx, arg)
	case "serve":
		err = app.serve(ctx)
	}

	return true, err
}
