package server

import (
	"io/fs"
	"net/http"
	"strings"
)

// dotFileHidingFS serves a directory but reports any path with a segment
// starting with "." as missing, so .env or .git never leave the host.
type dotFileHidingFS struct {
	http.FileSystem
}

func (d dotFileHidingFS) Open(name string) (http.File, error) {
	if hasDotSegment(name) {
		return nil, fs.ErrNotExist
	}

	f, err := d.FileSystem.Open(name)
	if err != nil {
		return nil, err
	}
	return dotFileHidingFile{f}, nil
}

// dotFileHidingFile drops dotfiles from directory listings.
type dotFileHidingFile struct {
	http.File
}

func (f dotFileHidingFile) Readdir(n int) ([]fs.FileInfo, error) {
	entries, err := f.File.Readdir(n)
	visible := entries[:0]
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), ".") {
			visible = append(visible, e)
		}
	}
	return visible, err
}

func hasDotSegment(name string) bool {
	for _, part := range strings.Split(name, "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

func staticHandler(dir string) http.Handler {
	return http.FileServer(dotFileHidingFS{http.Dir(dir)})
}
