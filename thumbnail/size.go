package thumbnail

import (
	"fmt"
	"strconv"

	"chimbori.dev/logoscrape/validation"
)

// Size is the exact pixel size of a normalized thumbnail.
type Size struct {
	Width  int
	Height int
}

// NewSize returns a Size, rejecting non-positive dimensions.
func NewSize(width, height int) (Size, error) {
	if width <= 0 || height <= 0 {
		return Size{}, &validation.Error{
			Field:   "size",
			Value:   fmt.Sprintf("%dx%d", width, height),
			Message: "Width and height must be greater than zero",
		}
	}
	return Size{Width: width, Height: height}, nil
}

// ParseSize parses a size written as “WxH”, e.g. “100x100”.
func ParseSize(s string) (Size, error) {
	width, height, err := validation.ValidateSize(s)
	if err != nil {
		return Size{}, err
	}
	return Size{Width: width, Height: height}, nil
}

func (s Size) String() string {
	return strconv.Itoa(s.Width) + "x" + strconv.Itoa(s.Height)
}
