package fetcher

import "fmt"

// NetworkError means the archive could not be addressed or transferred:
// an unresolvable locator, an unreachable host, a non-200 status or an interrupted body.
type NetworkError struct {
	URL string
	Err error
}

func (e NetworkError) Error() string {
	return fmt.Sprintf("cannot fetch %s: %s", e.URL, e.Err)
}

func (e NetworkError) Unwrap() error { return e.Err }

// PermissionError means the destination directory, the archive file or an extracted
// entry could not be created or written.
type PermissionError struct {
	Path string
	Err  error
}

func (e PermissionError) Error() string {
	return fmt.Sprintf("cannot write %s: %s", e.Path, e.Err)
}

func (e PermissionError) Unwrap() error { return e.Err }

// FormatError means the transferred file is not a valid gzip-compressed tar archive.
type FormatError struct {
	Path string
	Err  error
}

func (e FormatError) Error() string {
	return fmt.Sprintf("invalid archive %s: %s", e.Path, e.Err)
}

func (e FormatError) Unwrap() error { return e.Err }
