package errs

import "errors"

var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrEmptyCSV         = errors.New("csv contains no records")
	ErrMissingColumn    = errors.New("missing required column")
	ErrMalformedJob     = errors.New("malformed job message")
	ErrFetchFailed      = errors.New("image fetch failed")
	ErrUnsupportedImage = errors.New("unsupported image format")
)
