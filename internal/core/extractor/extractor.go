// Package extractor unpacks gzip-compressed tar archives.
package extractor

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/op/go-logging"
	"github.com/spf13/afero"
)

// Extractor has a file system into which archives are extracted.
type Extractor struct {
	Log        *logging.Logger
	FileSystem *afero.Afero
}

// Entry describes one header of an archive.
type Entry struct {
	Name     string
	Size     int64
	Mode     fs.FileMode
	Type     byte
	Linkname string
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool { return e.Type == tar.TypeDir }

// NewExtractor returns an Extractor writing to fileSystem.
func NewExtractor(log *logging.Logger, fileSystem *afero.Afero) *Extractor {
	if log == nil {
		log = logging.MustGetLogger("extractor")
	}
	return &Extractor{Log: log, FileSystem: fileSystem}
}

// Extract unpacks the gzip-compressed tar stream r into destination, keeping the
// archive's relative paths. Existing files are overwritten. Symlinks are created
// where the file system supports them and copied from their target otherwise;
// hard links are always copies. It returns the archive-relative names of every
// entry it wrote, in archive order, including those written before a failure.
func (e *Extractor) Extract(r io.Reader, destination string) ([]string, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, OpenArchiveError{err}
	}
	defer gz.Close()

	var written []string
	links := linkSet{}
	tr := tar.NewReader(gz)
	for headers := 0; ; headers++ {
		header, err := tr.Next()
		if err == io.EOF {
			if headers == 0 {
				return nil, ReadEntryError{Err: ErrEmptyArchive}
			}
			break
		}
		if errors.Is(err, tar.ErrInsecurePath) && header != nil {
			return written, UnsafePathError{Name: header.Name}
		}
		if err != nil {
			return written, ReadEntryError{Err: err}
		}

		name, ok := cleanEntryName(header.Name)
		if !ok || links.covers(path.Dir(name)) {
			return written, UnsafePathError{Name: header.Name}
		}
		if name == "." {
			continue
		}
		target := filepath.Join(destination, filepath.FromSlash(name))

		switch header.Typeflag {
		case tar.TypeDir:
			if err := e.FileSystem.MkdirAll(target, header.FileInfo().Mode().Perm()|0700); err != nil {
				return written, MakeDirectoryError{target, err}
			}
		case tar.TypeReg:
			if err := e.extractFile(tr, header, name, target); err != nil {
				return written, err
			}
		case tar.TypeSymlink:
			if err := e.extractSymlink(header, name, target, destination, links); err != nil {
				return written, err
			}
			links[name] = true
		case tar.TypeLink:
			if err := e.extractHardLink(header, target, destination); err != nil {
				return written, err
			}
		case tar.TypeXGlobalHeader, tar.TypeXHeader:
			continue
		default:
			e.Log.Debugf("skipping %s: unsupported entry type %q", header.Name, header.Typeflag)
			continue
		}

		e.Log.Debugf("extracted %s", name)
		written = append(written, name)
	}

	if err := drain(gz); err != nil {
		return written, err
	}
	return written, nil
}

func (e *Extractor) extractFile(tr *tar.Reader, header *tar.Header, name, target string) error {
	if err := e.makeParent(target); err != nil {
		return err
	}

	newFile, err := e.FileSystem.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, header.FileInfo().Mode().Perm()|0600)
	if err != nil {
		return OpenFileError{target, err}
	}
	defer newFile.Close()

	src := &readErrorReader{r: tr}
	if _, err := io.Copy(newFile, src); err != nil {
		if src.err != nil {
			return ReadEntryError{name, src.err}
		}
		return WriteFileError{target, err}
	}

	if err := newFile.Close(); err != nil {
		return WriteFileError{target, err}
	}
	return nil
}

func (e *Extractor) extractSymlink(header *tar.Header, name, target, destination string, links linkSet) error {
	resolved, ok := resolveLink(name, header.Linkname, links)
	if !ok {
		return UnsafePathError{Name: header.Name, Linkname: header.Linkname}
	}
	if err := e.makeParent(target); err != nil {
		return err
	}
	if err := e.FileSystem.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return LinkError{target, header.Linkname, err}
	}

	if linker, ok := e.FileSystem.Fs.(afero.Linker); ok {
		if err := linker.SymlinkIfPossible(filepath.FromSlash(header.Linkname), target); err != nil {
			return LinkError{target, header.Linkname, err}
		}
		return nil
	}

	source := filepath.Join(destination, filepath.FromSlash(resolved))
	err := e.copyExtracted(source, target)
	if errors.Is(err, errNotExtracted) {
		return LinkError{target, header.Linkname, ErrLinkUnsupported}
	}
	return err
}

func (e *Extractor) extractHardLink(header *tar.Header, target, destination string) error {
	linked, ok := cleanEntryName(header.Linkname)
	if !ok || linked == "." {
		return UnsafePathError{Name: header.Name, Linkname: header.Linkname}
	}
	if err := e.makeParent(target); err != nil {
		return err
	}

	source := filepath.Join(destination, filepath.FromSlash(linked))
	err := e.copyExtracted(source, target)
	if errors.Is(err, errNotExtracted) {
		return ReadEntryError{header.Name, fmt.Errorf("hard link target %s was not extracted before it", header.Linkname)}
	}
	return err
}

var errNotExtracted = errors.New("not an extracted regular file")

// copyExtracted copies an already extracted regular file to target with the same permissions.
func (e *Extractor) copyExtracted(source, target string) error {
	info, err := e.FileSystem.Stat(source)
	if err != nil || !info.Mode().IsRegular() {
		return errNotExtracted
	}
	if source == target {
		return nil
	}

	in, err := e.FileSystem.Open(source)
	if err != nil {
		return OpenFileError{source, err}
	}
	defer in.Close()

	out, err := e.FileSystem.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm()|0600)
	if err != nil {
		return OpenFileError{target, err}
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return WriteFileError{target, err}
	}
	if err := out.Close(); err != nil {
		return WriteFileError{target, err}
	}
	return nil
}

func (e *Extractor) makeParent(target string) error {
	directory := filepath.Dir(target)
	if err := e.FileSystem.MkdirAll(directory, 0755); err != nil {
		return MakeDirectoryError{directory, err}
	}
	return nil
}

// drain reads the gzip stream past the tar end-of-archive blocks so the
// trailer checksum and length are verified.
func drain(gz io.Reader) error {
	if _, err := io.Copy(io.Discard, gz); err != nil {
		return ReadEntryError{Err: err}
	}
	return nil
}

// List reads every header of the gzip-compressed tar stream r without writing anything.
func List(r io.Reader) ([]Entry, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, OpenArchiveError{err}
	}
	defer gz.Close()

	var entries []Entry
	tr := tar.NewReader(gz)
	for headers := 0; ; headers++ {
		header, err := tr.Next()
		if err == io.EOF {
			if headers == 0 {
				return nil, ReadEntryError{Err: ErrEmptyArchive}
			}
			return entries, drain(gz)
		}
		if err != nil && !(errors.Is(err, tar.ErrInsecurePath) && header != nil) {
			return entries, ReadEntryError{Err: err}
		}
		if header.Typeflag == tar.TypeXGlobalHeader {
			continue
		}
		entries = append(entries, Entry{
			Name:     header.Name,
			Size:     header.Size,
			Mode:     header.FileInfo().Mode(),
			Type:     header.Typeflag,
			Linkname: header.Linkname,
		})
	}
}

// cleanEntryName normalizes an archive name to a slash-separated relative path.
// It reports false for names that are absolute or climb out of the destination.
func cleanEntryName(name string) (string, bool) {
	name = strings.ReplaceAll(name, `\`, "/")
	if path.IsAbs(name) || filepath.IsAbs(name) || filepath.VolumeName(name) != "" {
		return "", false
	}
	cleaned := path.Clean(name)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", false
	}
	return cleaned, true
}

// linkSet holds the archive-relative names of extracted symlinks.
type linkSet map[string]bool

// covers reports whether p or one of its parent directories is an extracted symlink.
func (s linkSet) covers(p string) bool {
	for ; p != "." && p != "/"; p = path.Dir(p) {
		if s[p] {
			return true
		}
	}
	return false
}

// resolveLink walks linkname from the directory holding name and returns the
// archive-relative path it points at. It reports false when the walk leaves
// the destination or steps back out of an extracted symlink, whose real
// location the walk cannot know.
func resolveLink(name, linkname string, links linkSet) (string, bool) {
	linkname = strings.ReplaceAll(linkname, `\`, "/")
	if linkname == "" || path.IsAbs(linkname) || filepath.IsAbs(linkname) || filepath.VolumeName(linkname) != "" {
		return "", false
	}
	current := path.Dir(name)
	for _, elem := range strings.Split(linkname, "/") {
		switch elem {
		case "", ".":
		case "..":
			if current == "." || links.covers(current) {
				return "", false
			}
			current = path.Dir(current)
		default:
			current = path.Join(current, elem)
		}
	}
	return current, true
}

type readErrorReader struct {
	r   io.Reader
	err error
}

func (r *readErrorReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if err != nil && err != io.EOF {
		r.err = err
	}
	return n, err
}
