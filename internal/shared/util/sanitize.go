package util

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode"
)

const maxFileNameLen = 120

// SanitizeFileName reduces name to a single safe path component. Directory
// parts are dropped, control characters are replaced and long names are
// shortened while keeping the extension.
func SanitizeFileName(name string) (string, error) {
	s := strings.TrimSpace(name)
	if i := strings.LastIndexAny(s, `/\`); i >= 0 {
		s = s[i+1:]
	}
	if s == "" || s == "." || s == ".." {
		return "", errors.New("invalid file name")
	}

	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || r == ':' {
			return '_'
		}
		return r
	}, s)

	if len(s) > maxFileNameLen {
		ext := filepath.Ext(s)
		if len(ext) > 16 {
			ext = ""
		}
		base := strings.TrimSuffix(s, ext)
		cut := maxFileNameLen - len(ext)
		for cut > 0 && !validCut(base, cut) {
			cut--
		}
		s = base[:cut] + ext
	}
	return s, nil
}

// validCut reports whether base can be cut at byte i without splitting a rune.
func validCut(base string, i int) bool {
	return i >= len(base) || base[i] < 0x80 || base[i] >= 0xC0
}
