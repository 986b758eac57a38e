package media

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	escapeMarker = '#'

	// absentToken stands for a missing artist, album or song. It can never be
	// produced by Escape because '_' is outside the safe set.
	absentToken = "_"
)

// safePunctuation lists the non-alphanumeric runes kept literally.
const safePunctuation = " !$%&'()+,-;=@[]^{}~"

func isSafe(r rune) bool {
	if r < utf8.RuneSelf {
		return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' ||
			strings.ContainsRune(safePunctuation, r)
	}
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Escape makes s safe for use as a single path component. Unsafe runes and
// invalid UTF-8 bytes become #<lowercase hex of their bytes>#. The empty
// string becomes "##".
func Escape(s string) string {
	if s == "" {
		return string([]byte{escapeMarker, escapeMarker})
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			size = 1
		} else if isSafe(r) {
			b.WriteString(s[i : i+size])
			i += size
			continue
		}
		b.WriteByte(escapeMarker)
		b.WriteString(hex.EncodeToString([]byte(s[i : i+size])))
		b.WriteByte(escapeMarker)
		i += size
	}
	return b.String()
}

// Unescape reverses Escape.
func Unescape(s string) (string, error) {
	if s == "" {
		return "", errors.New("empty component")
	}
	if !strings.ContainsRune(s, escapeMarker) {
		if strings.ContainsRune(s, '/') {
			return "", errors.New("component contains a path separator")
		}
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		switch c {
		case '/':
			return "", errors.New("component contains a path separator")
		case escapeMarker:
			end := strings.IndexByte(s[i+1:], escapeMarker)
			if end < 0 {
				return "", fmt.Errorf("unterminated escape at offset %d", i)
			}
			decoded, err := hex.DecodeString(s[i+1 : i+1+end])
			if err != nil {
				return "", fmt.Errorf("invalid escape at offset %d: %w", i, err)
			}
			b.Write(decoded)
			i += end + 2
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), nil
}

func encodeComponent(s *string) string {
	if s == nil {
		return absentToken
	}
	return Escape(*s)
}

func decodeComponent(s string) (*string, error) {
	if s == absentToken {
		return nil, nil
	}
	v, err := Unescape(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
