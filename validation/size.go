package validation

import (
	"regexp"
	"strconv"
	"strings"
)

var sizeRegex = regexp.MustCompile(`^\d+x\d+$`)

const sizeMessage = "Use format NxM, for example: 640x480"

// ValidateSize parses a size written as “WxH” (e.g. “100x100”). Both dimensions must be positive.
func ValidateSize(size string) (width, height int, err error) {
	if !sizeRegex.MatchString(size) {
		return 0, 0, &Error{Field: "size", Value: size, Message: sizeMessage}
	}

	w, h, _ := strings.Cut(size, "x")
	width, errW := strconv.Atoi(w)
	height, errH := strconv.Atoi(h)
	if errW != nil || errH != nil {
		// Digits only, so this is an overflow.
		return 0, 0, &Error{Field: "size", Value: size, Message: "Size is too large"}
	}
	if width <= 0 || height <= 0 {
		return 0, 0, &Error{Field: "size", Value: size, Message: "Width and height must be greater than zero"}
	}
	return width, height, nil
}
