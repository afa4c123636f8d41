package console

import (
	"strings"

	"github.com/chzyer/readline"
)

// optionCompleter completes the whole line against a fixed set of options.
type optionCompleter []string

var _ readline.AutoCompleter = optionCompleter(nil)

func (oc optionCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	if pos > len(line) {
		pos = len(line)
	}
	typed := strings.ToLower(strings.TrimLeft(string(line[:pos]), " "))

	for _, opt := range oc {
		if strings.HasPrefix(opt, typed) {
			newLine = append(newLine, []rune(opt[len(typed):]))
		}
	}
	return newLine, len([]rune(typed))
}
