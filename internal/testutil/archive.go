// Package testutil builds archive fixtures for tests.
package testutil

import (
	"archive/tar"
	"bytes"
	"testing"

	"github.com/klauspost/compress/gzip"
)

// TarEntry is one member of a fixture archive. Body is only written for
// tar.TypeReg entries.
type TarEntry struct {
	Name     string
	Body     string
	Mode     int64
	Typeflag byte
	Linkname string
}

// File is a regular file entry with mode 0644.
func File(name, body string) TarEntry {
	return TarEntry{Name: name, Body: body, Mode: 0644, Typeflag: tar.TypeReg}
}

// Dir is a directory entry with mode 0755.
func Dir(name string) TarEntry {
	return TarEntry{Name: name, Mode: 0755, Typeflag: tar.TypeDir}
}

// Symlink is a symbolic link entry pointing at target.
func Symlink(name, target string) TarEntry {
	return TarEntry{Name: name, Mode: 0777, Typeflag: tar.TypeSymlink, Linkname: target}
}

// HardLink is a hard link entry to the archive member target.
func HardLink(name, target string) TarEntry {
	return TarEntry{Name: name, Mode: 0644, Typeflag: tar.TypeLink, Linkname: target}
}

// TarGz returns a gzip-compressed tar archive holding entries in order.
func TarGz(t testing.TB, entries ...TarEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, e := range entries {
		hdr := &tar.Header{
			Name:     e.Name,
			Mode:     e.Mode,
			Typeflag: e.Typeflag,
			Linkname: e.Linkname,
		}
		if e.Typeflag == tar.TypeReg {
			hdr.Size = int64(len(e.Body))
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("write header %s: %v", e.Name, err)
		}
		if e.Typeflag == tar.TypeReg {
			if _, err := tw.Write([]byte(e.Body)); err != nil {
				t.Fatalf("write body %s: %v", e.Name, err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	return buf.Bytes()
}
