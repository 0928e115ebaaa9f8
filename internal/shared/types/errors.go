package types

import "errors"

var (
	ErrNoAccountGroups   = errors.New("no account groups found. Check the spreadsheet or groups file")
	ErrInvalidCatalog    = errors.New("invalid service catalog")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrGroupsFailed      = errors.New("one or more account groups failed")
	ErrQueryFailed       = errors.New("cost query failed")
	ErrChannelJoin       = errors.New("could not join channel")
	ErrUploadFailed      = errors.New("file upload failed")
	ErrNoRecordSource    = errors.New("no cost record source configured")
	ErrNoGroupSource     = errors.New("no account group source configured")
	ErrUnsupportedRender = errors.New("unsupported output format")
)
