// Package console reads form input from an interactive terminal.
package console

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

var ErrCancelled = errors.New("cancelled")

const maxAttempts = 3

type Prompter struct {
	rl *readline.Instance
}

func NewPrompter() (*Prompter, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("readline.NewEx: %w", err)
	}
	return &Prompter{rl: rl}, nil
}

func (p *Prompter) Close() error {
	return p.rl.Close()
}

// Line reads one line of input.
func (p *Prompter) Line(prompt string) (string, error) {
	p.rl.SetPrompt(prompt + ": ")
	line, err := p.rl.Readline()
	if err != nil {
		return "", inputErr(err)
	}
	return strings.TrimSpace(line), nil
}

// Text reads lines until an empty one and joins them with newlines.
func (p *Prompter) Text(prompt string) (string, error) {
	fmt.Println(prompt + " (finish with an empty line)")
	p.rl.SetPrompt("  ")

	var lines []string
	for {
		line, err := p.rl.Readline()
		if err != nil {
			return "", inputErr(err)
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

// Choice reads one of options, with tab completion, and parses it. A blank
// answer returns the zero value so the form can report the missing field.
// Invalid answers are asked again a few times.
func Choice[T any](p *Prompter, prompt string, options []string, parse func(string) (T, error)) (T, error) {
	cfg := *p.rl.Config
	cfg.AutoComplete = optionCompleter(options)
	old := p.rl.SetConfig(&cfg)
	defer p.rl.SetConfig(old)

	fmt.Printf("%s: %s\n", prompt, strings.Join(options, ", "))

	return choose(func() (string, error) {
		return p.Line(prompt)
	}, parse)
}

func choose[T any](read func() (string, error), parse func(string) (T, error)) (T, error) {
	var zero T
	var err error
	for i := 0; i < maxAttempts; i++ {
		var answer string
		answer, err = read()
		if err != nil {
			return zero, err
		}
		if strings.TrimSpace(answer) == "" {
			return zero, nil
		}

		var v T
		v, err = parse(answer)
		if err == nil {
			return v, nil
		}
		fmt.Println(err.Error())
	}
	return zero, err
}

// Password reads a secret without echoing it when stdin is a terminal.
func (p *Prompter) Password(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return p.Line(prompt)
	}

	fmt.Print(prompt + ": ")
	b, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("term.ReadPassword: %w", err)
	}
	return string(b), nil
}

func (p *Prompter) Confirm(prompt string) (bool, error) {
	answer, err := p.Line(prompt + " [y/n]")
	if err != nil {
		return false, err
	}
	return isYes(answer), nil
}

func isYes(response string) bool {
	validResponses := []string{"yes", "yep", "y"}
	for _, vr := range validResponses {
		if strings.EqualFold(response, vr) {
			return true
		}
	}

	return false
}

func inputErr(err error) error {
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return ErrCancelled
	}
	return fmt.Errorf("rl.Readline: %w", err)
}
