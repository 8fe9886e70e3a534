package domain

import "errors"

var (
	ErrEmptyTicketTable    = errors.New("ticket table has no header row")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUnreadableFile      = errors.New("file could not be parsed")
	ErrMissingFile         = errors.New("required file is missing")
)
