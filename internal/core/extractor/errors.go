package extractor

import (
	"errors"
	"fmt"
)

// ErrEmptyArchive is reported when a gzip stream holds no tar headers.
var ErrEmptyArchive = errors.New("archive holds no entries")

// ErrLinkUnsupported is reported when the file system can neither create a
// symlink nor stand in for it with a copy of its target.
var ErrLinkUnsupported = errors.New("file system cannot represent this link")

// OpenArchiveError is returned when the stream is not gzip-compressed.
type OpenArchiveError struct {
	Err error
}

func (e OpenArchiveError) Error() string {
	return fmt.Sprintf("cannot open gzip archive: %s", e.Err)
}

func (e OpenArchiveError) Unwrap() error { return e.Err }

// ReadEntryError is returned when the tar stream is truncated, corrupt or inconsistent.
type ReadEntryError struct {
	Name string
	Err  error
}

func (e ReadEntryError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("cannot read archive entry: %s", e.Err)
	}
	return fmt.Sprintf("cannot read archive entry %s: %s", e.Name, e.Err)
}

func (e ReadEntryError) Unwrap() error { return e.Err }

// UnsafePathError is returned for an entry, or a link target, outside the destination.
type UnsafePathError struct {
	Name     string
	Linkname string
}

func (e UnsafePathError) Error() string {
	if e.Linkname != "" {
		return fmt.Sprintf("archive entry %s links to %s outside the destination", e.Name, e.Linkname)
	}
	return fmt.Sprintf("archive entry %s resolves outside the destination", e.Name)
}

// MakeDirectoryError is returned when a directory cannot be created.
type MakeDirectoryError struct {
	Directory string
	Err       error
}

func (e MakeDirectoryError) Error() string {
	return fmt.Sprintf("cannot make directory %s: %s", e.Directory, e.Err)
}

func (e MakeDirectoryError) Unwrap() error { return e.Err }

// OpenFileError is returned when a file cannot be opened for writing.
type OpenFileError struct {
	Location string
	Err      error
}

func (e OpenFileError) Error() string {
	return fmt.Sprintf("cannot open file %s: %s", e.Location, e.Err)
}

func (e OpenFileError) Unwrap() error { return e.Err }

// WriteFileError is returned when writing an extracted file fails.
type WriteFileError struct {
	Location string
	Err      error
}

func (e WriteFileError) Error() string {
	return fmt.Sprintf("cannot write file %s: %s", e.Location, e.Err)
}

func (e WriteFileError) Unwrap() error { return e.Err }

// LinkError is returned when a link entry cannot be created.
type LinkError struct {
	Location string
	Linkname string
	Err      error
}

func (e LinkError) Error() string {
	return fmt.Sprintf("cannot link %s to %s: %s", e.Location, e.Linkname, e.Err)
}

func (e LinkError) Unwrap() error { return e.Err }
