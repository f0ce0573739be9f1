package util

import (
	"errors"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxFileNameBytes caps an upload name as forwarded to the scoring service.
const MaxFileNameBytes = 255

// ErrInvalidFileName is returned for names that are empty or try to escape
// a directory.
var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName reduces a client-supplied upload name to a bare file
// name. Directory parts are dropped, control characters removed and long
// names shortened with their extension kept. Traversal segments are
// rejected outright.
func SanitizeFileName(name string) (string, error) {
	s := strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	for _, seg := range strings.Split(s, "/") {
		if seg == ".." {
			return "", ErrInvalidFileName
		}
	}
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || r == utf8.RuneError {
			return -1
		}
		return r
	}, path.Base(s))
	s = strings.TrimSpace(s)
	if s == "" || s == "." || s == "/" {
		return "", ErrInvalidFileName
	}
	return truncateKeepingExt(s, MaxFileNameBytes), nil
}

func truncateKeepingExt(name string, limit int) string {
	if len(name) <= limit {
		return name
	}
	ext := path.Ext(name)
	if len(ext) >= limit {
		ext = ""
	}
	stem := name[:limit-len(ext)]
	for !utf8.ValidString(stem) {
		stem = stem[:len(stem)-1]
	}
	return stem + ext
}
