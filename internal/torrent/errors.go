package torrent

import "fmt"

// MissingRequiredFieldError reports a required metainfo field that is absent
// or holds the wrong kind of value.
type MissingRequiredFieldError struct {
	Field string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// InvalidFieldError reports a field that is present with the right kind of
// value but fails validation.
type InvalidFieldError struct {
	Field  string
	Reason string
	Err    error
}

func (e *InvalidFieldError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid field %q: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

func (e *InvalidFieldError) Unwrap() error {
	return e.Err
}

// NewTorrentFromFileError wraps any failure to build a Torrent from a path.
// The cause is kept intact for errors.Is and errors.As.
type NewTorrentFromFileError struct {
	Path string
	Err  error
}

func (e *NewTorrentFromFileError) Error() string {
	return fmt.Sprintf("error initializing torrent from file %s: %v", e.Path, e.Err)
}

func (e *NewTorrentFromFileError) Unwrap() error {
	return e.Err
}
