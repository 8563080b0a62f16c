package console

import (
	"strings"

	"github.com/chzyer/readline"
)

// Confirm asks a yes/no question and returns true on "y". Empty or
// unrecognized input picks the default answer.
func Confirm(question string, preferYes bool) (bool, error) {
	choices := " [y/N]:"
	if preferYes {
		choices = " [Y/n]:"
	}
	rl, err := readline.New(question + choices)
	if err != nil {
		return false, err
	}
	defer rl.Close()
	response, err := rl.Readline()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(response)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return preferYes, nil
	}
}
