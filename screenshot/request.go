package screenshot

import (
	"strings"

	"chimbori.dev/logoscrape/validation"
)

// Request identifies the element to capture: the first match for Selector on the page at URL.
type Request struct {
	URL      string
	Selector string
	Host     string // Host of the page, including the port if one was given.
}

// NewRequest validates user input and returns a Request for it.
// Errors are of type *validation.Error, suitable for showing to the user as-is.
func NewRequest(pageUrl, selector string) (Request, error) {
	validatedUrl, host, err := validation.ValidateUrl(pageUrl)
	if err != nil {
		return Request{}, err
	}
	if err := validation.ValidateSelector(selector); err != nil {
		return Request{}, err
	}
	return Request{URL: validatedUrl, Selector: strings.TrimSpace(selector), Host: host}, nil
}

func (r Request) validate() error {
	_, err := NewRequest(r.URL, r.Selector)
	return err
}
