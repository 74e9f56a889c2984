// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textile

import (
	"regexp"
	"strings"
)

var listItemPattern = regexp.MustCompile(`^([#*]+)\s+(.*)$`)

type lineKind int

const (
	linePlain lineKind = iota
	lineBlank
	lineHeading
	lineListItem
)

// line is one classified input line.
type line struct {
	kind lineKind

	// level is the heading level, 1 through 6.
	level int

	// markers holds one entry per list nesting level.
	markers []marker

	// text is the heading title or list item content, untrimmed.
	text string
}

// classify decides what a single input line is. List items take priority
// over everything else; a whitespace-only line is blank.
func classify(raw string) line {
	if m := listItemPattern.FindStringSubmatch(raw); m != nil {
		return line{kind: lineListItem, markers: parseMarkers(m[1]), text: m[2]}
	}
	if strings.TrimSpace(raw) == "" {
		return line{kind: lineBlank}
	}
	if m := headingPattern.FindStringSubmatch(raw); m != nil {
		return line{kind: lineHeading, level: int(m[1][0] - '0'), text: m[2]}
	}
	return line{kind: linePlain}
}
