package ask

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Bowery/prompt"
)

// ErrAborted is returned when the user cancels the prompt
var ErrAborted = errors.New("ask: aborted")

// Asker is an interface for asking the user for secrets interactively.
type Asker interface {
	Secret(ctx context.Context, question string) (string, error)
}

// Default returns the default asker implementation using bowery/prompt.
func Default() Asker {
	return &defaultAsker{}
}

// defaultAsker implements the Asker interface using bowery/prompt.
type defaultAsker struct{}

func promptErr(err error) error {
	if err == prompt.ErrEOF || err == prompt.ErrCTRLC {
		return ErrAborted
	}
	return fmt.Errorf("prompt: %w", err)
}

// Secret prompts without echoing the response.
func (a *defaultAsker) Secret(ctx context.Context, question string) (string, error) {
	response, err := prompt.Password(question + " ")
	if err != nil {
		return "", promptErr(err)
	}
	return response, nil
}

// Required asks for a secret until the user gives a non-empty answer
func Required(ctx context.Context, a Asker, question string) (string, error) {
	q := question
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		answer, err := a.Secret(ctx, q)
		if err != nil {
			return "", err
		}
		if answer = strings.TrimSpace(answer); answer != "" {
			return answer, nil
		}
		q = "Api key is required. " + question
	}
}
