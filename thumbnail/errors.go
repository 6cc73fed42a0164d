package thumbnail

import "errors"

var (
	// ErrDecode is returned when the input bytes are not an image in a supported encoding.
	ErrDecode = errors.New("thumbnail: cannot decode image")

	// ErrDegenerateImage is returned when the decoded image has no pixels along either axis.
	ErrDegenerateImage = errors.New("thumbnail: image has zero width or height")
)
