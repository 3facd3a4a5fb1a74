// Package downloader provides functionality to download files from URLs.
package downloader

import (
	"fmt"
	"io"
	"net/http"
)

// Download fetches the content at url with a single GET and streams the body into w.
// It returns the number of bytes written, or an error if the request fails,
// the HTTP status code is not 200 OK, or the body cannot be copied.
// A nil client uses http.DefaultClient.
func Download(client *http.Client, url string, w io.Writer) (int64, error) {
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Get(url)
	if err != nil {
		return 0, fmt.Errorf("failed to perform GET request to %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("failed to read response body from %s: %w", url, err)
	}

	return n, nil
}

// StatusError is returned when the server answers with anything other than 200 OK.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to download from %s: received status code %d", e.URL, e.StatusCode)
}
