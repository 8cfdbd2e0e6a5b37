// Package version names versioned files and finds them on disk.
//
// A versioned file is named "{character}_{scene}_v{N}.{ext}" where N is a
// decimal number without padding. Files that do not follow this pattern are
// not versioned and are ignored by every reader.
package version

import (
	"strconv"
	"strings"
)

const Separator = "_v"

// Key returns name prefix shared by all versions of character scene
func Key(character, scene string) string {
	return character + "_" + scene
}

// Format returns file name of version. ext accepted with or without dot.
func Format(key string, version int, ext string) string {
	return key + Separator + strconv.Itoa(version) + "." + strings.TrimPrefix(ext, ".")
}

// Parse extracts version number from filename belonging to key.
// Any name that is not exactly key_v<digits>.<ext> returns false.
func Parse(filename, key string) (int, bool) {
	prefix := key + Separator
	if !strings.HasPrefix(filename, prefix) {
		return 0, false
	}
	rest := filename[len(prefix):]

	dot := strings.IndexByte(rest, '.')
	if dot <= 0 || dot == len(rest)-1 {
		return 0, false
	}
	digits := rest[:dot]
	if !isDigits(digits) {
		return 0, false
	}

	v, err := strconv.Atoi(digits)
	if err != nil {
		// overflow
		return 0, false
	}
	return v, true
}

// StripSuffix removes one trailing _v<digits> token from base name
func StripSuffix(base string) string {
	i := strings.LastIndex(base, Separator)
	if i < 0 || !isDigits(base[i+len(Separator):]) {
		return base
	}
	return base[:i]
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
