package main

import (
	"errors"
	"fmt"

	"chimbori.dev/logoscrape/core"
	"chimbori.dev/logoscrape/screenshot"
	"chimbori.dev/logoscrape/thumbnail"
	"chimbori.dev/logoscrape/validation"
)

// inputs as given on the command line; empty means not given.
type inputs struct {
	url      string
	selector string
	size     string
}

// missingInputError is returned when a required value was not given,
// and there is no terminal to ask for it.
type missingInputError struct {
	flag string
}

func (e *missingInputError) Error() string {
	return fmt.Sprintf("-%s is required", e.flag)
}

// collectInputs validates every value given as a flag, and asks for the rest.
// prompter is nil when stdin is not a terminal, in which case missing values are an error.
func collectInputs(in inputs, prompter *core.Prompter) (screenshot.Request, thumbnail.Size, error) {
	pageUrl, err := value(in.url, "url", "Enter company page URL:", prompter, func(s string) error {
		_, _, err := validation.ValidateUrl(s)
		return err
	})
	if err != nil {
		return screenshot.Request{}, thumbnail.Size{}, err
	}

	selector, err := value(in.selector, "selector", "Enter CSS selector:", prompter, validation.ValidateSelector)
	if err != nil {
		return screenshot.Request{}, thumbnail.Size{}, err
	}

	size, err := value(in.size, "size", "Enter desired size (format 100x100) of logo:", prompter, func(s string) error {
		_, _, err := validation.ValidateSize(s)
		return err
	})
	if err != nil {
		return screenshot.Request{}, thumbnail.Size{}, err
	}

	req, err := screenshot.NewRequest(pageUrl, selector)
	if err != nil {
		return screenshot.Request{}, thumbnail.Size{}, err
	}
	target, err := thumbnail.ParseSize(size)
	if err != nil {
		return screenshot.Request{}, thumbnail.Size{}, err
	}
	return req, target, nil
}

func value(given, flag, question string, prompter *core.Prompter, validate func(string) error) (string, error) {
	if given != "" {
		return given, validate(given)
	}
	if prompter == nil {
		return "", &missingInputError{flag: flag}
	}
	// Show users the bare message, not the field & value they just typed.
	return prompter.Ask(question, func(s string) error {
		err := validate(s)
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			return errors.New(vErr.Message)
		}
		return err
	})
}
