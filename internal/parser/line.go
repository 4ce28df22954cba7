package parser

import (
	"strings"
)

// entryParts holds the raw fields of a message-start line. The header
// grammar is:
//
//	[ <date> , <time> ] - <sender>: <body>
//
// where the brackets and the comma are optional, the date is D/M/Y or M/D/Y
// with a 2 or 4 digit year, and the time is H:MM with optional seconds and
// an optional AM/PM suffix.
type entryParts struct {
	dateText string
	timeText string
	sender   string
	body     string
}

// scanEntryLine reports whether a raw line starts a new message and, if so,
// returns its header fields. Anything that does not match the grammar is a
// continuation of the previous message (or noise when there is none).
func scanEntryLine(line string) (entryParts, bool) {
	var parts entryParts

	s := line
	if len(s) > 0 && s[0] == '[' {
		s = s[1:]
	}

	dateText, s, ok := scanDate(s)
	if !ok {
		return parts, false
	}

	if len(s) > 0 && s[0] == ',' {
		s = s[1:]
	}
	s, n := skipSpaces(s)
	if n == 0 {
		return parts, false
	}

	timeText, s, ok := scanTime(s)
	if !ok {
		return parts, false
	}

	if len(s) > 0 && s[0] == ']' {
		s = s[1:]
	}
	s, _ = skipSpaces(s)
	if len(s) == 0 || s[0] != '-' {
		return parts, false
	}
	s, _ = skipSpaces(s[1:])

	// The sender is everything up to the first colon and may not be empty
	// or contain an embedded colon.
	colon := strings.IndexByte(s, ':')
	if colon <= 0 {
		return parts, false
	}

	parts.dateText = dateText
	parts.timeText = timeText
	parts.sender = s[:colon]
	parts.body = strings.TrimLeft(s[colon+1:], " \t")
	return parts, true
}

// scanDate consumes a D/M/Y (or M/D/Y) date token. Day and month are 1 or 2
// digits; the year is 2 or 4 digits.
func scanDate(s string) (string, string, bool) {
	rest := s

	first, rest, ok := scanDigits(rest, 1, 2)
	if !ok {
		return "", s, false
	}
	if len(rest) == 0 || rest[0] != '/' {
		return "", s, false
	}
	second, rest, ok := scanDigits(rest[1:], 1, 2)
	if !ok {
		return "", s, false
	}
	if len(rest) == 0 || rest[0] != '/' {
		return "", s, false
	}
	year, rest, ok := scanDigits(rest[1:], 2, 4)
	if !ok || len(year) == 3 {
		return "", s, false
	}

	token := first + "/" + second + "/" + year
	return token, rest, true
}

// scanTime consumes an H:MM time token with optional :SS seconds and an
// optional, case-insensitive AM/PM suffix. The suffix is kept in the token
// verbatim for display fidelity.
func scanTime(s string) (string, string, bool) {
	rest := s

	hour, rest, ok := scanDigits(rest, 1, 2)
	if !ok {
		return "", s, false
	}
	if len(rest) == 0 || rest[0] != ':' {
		return "", s, false
	}
	minute, rest, ok := scanDigits(rest[1:], 2, 2)
	if !ok {
		return "", s, false
	}

	token := hour + ":" + minute

	if len(rest) > 0 && rest[0] == ':' {
		if second, after, ok := scanDigits(rest[1:], 2, 2); ok {
			token += ":" + second
			rest = after
		}
	}

	if suffix, after, ok := scanMeridiem(rest); ok {
		token += suffix
		rest = after
	}

	return token, rest, true
}

// scanMeridiem consumes optional whitespace followed by AM or PM in any
// case. The whitespace is part of the returned suffix.
func scanMeridiem(s string) (string, string, bool) {
	rest, n := skipSpaces(s)
	if len(rest) < 2 {
		return "", s, false
	}
	c0, c1 := rest[0]|0x20, rest[1]|0x20
	if (c0 != 'a' && c0 != 'p') || c1 != 'm' {
		return "", s, false
	}
	return s[:n] + rest[:2], rest[2:], true
}

func scanDigits(s string, min, max int) (string, string, bool) {
	n := 0
	for n < len(s) && n < max && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n < min {
		return "", s, false
	}
	return s[:n], s[n:], true
}

func skipSpaces(s string) (string, int) {
	n := 0
	for n < len(s) && (s[n] == ' ' || s[n] == '\t') {
		n++
	}
	return s[n:], n
}
