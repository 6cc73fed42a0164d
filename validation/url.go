package validation

import (
	"net/url"
	"strings"
)

const urlMessage = "Invalid URL, it must have format http(s)://..."

// ValidateUrl validates a URL provided by the user, and returns it along with its host
// (including the port, if one was given).
// Unlike a browser address bar, no scheme is assumed: “example.com” is rejected.
func ValidateUrl(userUrl string) (validatedUrl string, host string, err error) {
	userUrl = strings.TrimSpace(userUrl)
	if userUrl == "" {
		return "", "", &Error{Field: "url", Value: userUrl, Message: urlMessage}
	}

	u, err := url.Parse(userUrl)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", "", &Error{Field: "url", Value: userUrl, Message: urlMessage}
	}

	return u.String(), u.Host, nil
}
