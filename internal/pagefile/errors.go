package pagefile

import "errors"

var (
	ErrCorruptFile       = errors.New("pagefile: file size is not a whole number of pages")
	ErrInvalidFileSig    = errors.New("pagefile: invalid file signature")
	ErrInvalidPointer    = errors.New("pagefile: invalid page number")
	ErrWriteSizeMismatch = errors.New("pagefile: data written does not match page size")
)
