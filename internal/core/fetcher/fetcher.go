// Package fetcher downloads a compressed dataset archive and extracts it into a local directory.
package fetcher

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-errors/errors"
	"github.com/op/go-logging"
	"github.com/spf13/afero"

	"github.com/nightconcept/datafetch/internal/core/downloader"
	"github.com/nightconcept/datafetch/internal/core/extractor"
	"github.com/nightconcept/datafetch/internal/core/hasher"
	"github.com/nightconcept/datafetch/internal/core/source"
)

// Fetcher transfers an archive into a destination directory and unpacks it there.
type Fetcher struct {
	FileSystem *afero.Afero
	Client     *http.Client
	Extractor  *extractor.Extractor
	Log        *logging.Logger
}

// Result describes a completed fetch.
type Result struct {
	SourceURL   string
	ArchivePath string
	Destination string
	Entries     []string
	Bytes       int64
	SHA256      string
}

// New returns a Fetcher writing to fileSystem. A nil log falls back to the "fetcher" module logger.
func New(fileSystem afero.Fs, log *logging.Logger) *Fetcher {
	if log == nil {
		log = logging.MustGetLogger("fetcher")
	}
	af := &afero.Afero{Fs: fileSystem}
	return &Fetcher{
		FileSystem: af,
		Extractor:  extractor.NewExtractor(log, af),
		Log:        log,
	}
}

// Fetch ensures destination exists, downloads the archive named by sourceLocator into it
// and extracts every entry there. The downloaded archive is left in destination.
//
// Failures are returned as NetworkError, PermissionError or FormatError wrapped in a
// *errors.Error carrying the stack. Nothing written before a failure is removed.
func (f *Fetcher) Fetch(sourceLocator, destination string) (*Result, error) {
	info, err := source.Resolve(sourceLocator)
	if err != nil {
		return nil, errors.Wrap(NetworkError{sourceLocator, err}, 0)
	}
	f.Log.Infof("url: %s", info.RawURL)

	if err := f.FileSystem.MkdirAll(destination, 0755); err != nil {
		return nil, errors.Wrap(PermissionError{destination, err}, 0)
	}

	archivePath := filepath.Join(destination, info.Filename)
	archiveFile, err := f.FileSystem.OpenFile(archivePath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, errors.Wrap(PermissionError{archivePath, err}, 0)
	}
	defer archiveFile.Close()

	sum := hasher.NewSHA256()
	dst := &writeErrorWriter{w: archiveFile}
	n, err := downloader.Download(f.Client, info.RawURL, io.MultiWriter(dst, sum))
	if err != nil {
		if dst.err != nil {
			return nil, errors.Wrap(PermissionError{archivePath, dst.err}, 0)
		}
		return nil, errors.Wrap(NetworkError{info.RawURL, err}, 0)
	}
	f.Log.Debugf("downloaded %d bytes to %s (%s)", n, archivePath, sum.Sum())

	if _, err := archiveFile.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(PermissionError{archivePath, err}, 0)
	}

	entries, err := f.Extractor.Extract(archiveFile, destination)
	if err != nil {
		switch err.(type) {
		case extractor.OpenArchiveError, extractor.ReadEntryError, extractor.UnsafePathError:
			return nil, errors.Wrap(FormatError{archivePath, err}, 0)
		default:
			return nil, errors.Wrap(PermissionError{destination, err}, 0)
		}
	}
	f.Log.Debugf("extracted %d entries into %s", len(entries), destination)

	return &Result{
		SourceURL:   info.RawURL,
		ArchivePath: archivePath,
		Destination: destination,
		Entries:     entries,
		Bytes:       n,
		SHA256:      sum.Sum(),
	}, nil
}

// Fetch runs a Fetcher on the operating system's filesystem.
func Fetch(sourceLocator, destination string) (*Result, error) {
	return New(afero.NewOsFs(), nil).Fetch(sourceLocator, destination)
}

type writeErrorWriter struct {
	w   io.Writer
	err error
}

func (w *writeErrorWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	if err != nil {
		w.err = err
	}
	return n, err
}
