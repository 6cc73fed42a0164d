package core

import "testing"

func TestLogoFilename(t *testing.T) {
	tests := []struct {
		host string
		ext  string
		want string
	}{
		{"example.com", "png", "example.com_logo.png"},
		{"Example.COM", "png", "example.com_logo.png"},
		{"example.com:8080", "png", "example.com_8080_logo.png"},
		{"bücher.de", "webp", "xn--bcher-kva.de_logo.webp"},
		{"bücher.de:8080", "png", "xn--bcher-kva.de_8080_logo.png"},
		{"[::1]:3000", "png", "__1_3000_logo.png"},
		{"localhost", ".png", "localhost_logo.png"},
		{"", "png", "unknown_logo.png"},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			if got := LogoFilename(tt.host, tt.ext); got != tt.want {
				t.Errorf("Expected LogoFilename(%q, %q) to be %q, got %q", tt.host, tt.ext, tt.want, got)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	if got := sanitizeFilename("a/b\\c:d*e?f"); got != "a_b_c_d_e_f" {
		t.Errorf("Expected unsafe characters to be replaced, got %q", got)
	}
}
