// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textile

import (
	"fmt"
	"regexp"
	"strings"
)

var headingPattern = regexp.MustCompile(`^h([1-6])\.\s+(.*)$`)

// headingSizes maps a heading level to its font size, 2pt smaller per level.
var headingSizes = map[int]string{
	1: "18pt",
	2: "16pt",
	3: "14pt",
	4: "12pt",
	5: "10pt",
	6: "8pt",
}

const defaultHeadingSize = "12pt"

// renderHeading renders a heading as bold text at the level's size. The
// title is not scanned for inline code.
func renderHeading(level int, title string) string {
	size, ok := headingSizes[level]
	if !ok {
		size = defaultHeadingSize
	}
	return fmt.Sprintf("[SIZE=%s][B]%s[/B][/SIZE]", size, strings.TrimSpace(title))
}
