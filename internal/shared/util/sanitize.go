package util

import (
	"errors"
	"path"
	"strings"
	"unicode"
)

const maxFileNameBytes = 255

var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName reduces a client-supplied file name to its base name
// without control characters, keeping the extension when shortening.
func SanitizeFileName(name string) (string, error) {
	s := strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	s = strings.TrimSpace(s)
	if s == "" || s == "." || s == ".." {
		return "", ErrInvalidFileName
	}
	if len(s) > maxFileNameBytes {
		ext := path.Ext(s)
		if len(ext) > 16 {
			ext = ""
		}
		s = strings.ToValidUTF8(s[:maxFileNameBytes-len(ext)], "") + ext
	}
	return s, nil
}
