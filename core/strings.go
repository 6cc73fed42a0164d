package core

import (
	"net"
	"strings"

	"golang.org/x/net/idna"
)

const logoSuffix = "_logo"

// LogoFilename returns the file name for a host’s logo, e.g. “example.com_logo.png”.
// Internationalized hosts are converted to their ASCII (punycode) form, and a port,
// if present, is kept with “_” as separator, so “bücher.de:8080” becomes
// “xn--bcher-kva.de_8080_logo.png”.
func LogoFilename(host, ext string) string {
	hostname, port, err := net.SplitHostPort(host)
	if err != nil {
		hostname, port = host, ""
	}
	hostname = strings.Trim(hostname, "[]")

	if ascii, err := idna.Lookup.ToASCII(hostname); err == nil {
		hostname = ascii
	} else {
		hostname = strings.ToLower(hostname)
	}

	name := sanitizeFilename(hostname)
	if port != "" {
		name += "_" + sanitizeFilename(port)
	}
	if name == "" {
		name = "unknown"
	}
	return name + logoSuffix + "." + strings.TrimPrefix(ext, ".")
}

// sanitizeFilename replaces every character that is unsafe in a file name on common platforms.
func sanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
