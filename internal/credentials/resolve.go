package credentials

import (
	"errors"
	"fmt"
)

// Prompter asks the user for input. Implementations live in the ui package.
type Prompter interface {
	Ask(label string, secret bool) (string, error)
	Confirm(label string) (bool, error)
}

// Source records where resolved credentials came from.
type Source string

const (
	SourceFile   Source = "file"
	SourceEnv    Source = "env"
	SourcePrompt Source = "prompt"
)

// Resolution is the outcome of Resolve. SaveErr is set when the user asked to
// persist prompted credentials and the write failed; Credentials are still usable.
type Resolution struct {
	Credentials Credentials
	Source      Source
	Saved       bool
	SaveErr     error
}

// ErrNoPrompter is returned when credentials must be prompted but no prompter is available.
var ErrNoPrompter = errors.New("credentials missing and no interactive input available")

// Resolve loads credentials from the store, then the environment, and
// finally prompts for them, offering to save prompted values.
func Resolve(store Store, prompter Prompter) (Resolution, error) {
	if store.Exists() {
		creds, err := store.Load()
		if err != nil {
			return Resolution{}, err
		}
		return Resolution{Credentials: creds, Source: SourceFile}, nil
	}

	if creds, ok := FromEnv(); ok {
		return Resolution{Credentials: creds, Source: SourceEnv}, nil
	}

	if prompter == nil {
		return Resolution{}, ErrNoPrompter
	}
	id, err := prompter.Ask("Client ID", false)
	if err != nil {
		return Resolution{}, fmt.Errorf("prompt client id: %w", err)
	}
	secret, err := prompter.Ask("Client secret", true)
	if err != nil {
		return Resolution{}, fmt.Errorf("prompt client secret: %w", err)
	}
	res := Resolution{Credentials: Credentials{ID: id, Secret: secret}, Source: SourcePrompt}

	save, err := prompter.Confirm(fmt.Sprintf("Save credentials to %s?", store.Dir))
	if err != nil {
		return Resolution{}, fmt.Errorf("prompt save: %w", err)
	}
	if !save {
		return res, nil
	}
	if err := store.Save(res.Credentials); err != nil {
		res.SaveErr = err
		return res, nil
	}
	res.Saved = true
	return res, nil
}
