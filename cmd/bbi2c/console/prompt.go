package console

import (
	"strings"

	"github.com/chzyer/readline"
)

const (
	Yes = "y"
	No  = "n"
)

func YesOrNo(question string) (string, error) {
	rl, err := readline.New(question + " [Y/n]:")
	if err != nil {
		return "", err
	}
	response, err := rl.Readline()
	if err != nil {
		return "", err
	}
	// default to yes on no input
	if response == "" {
		return Yes, nil
	}
	if strings.ToLower(response) == No {
		return No, nil
	}
	return Yes, nil
}
